// Package surface adapts pages to the embedded, scriptable rendering
// surfaces of the reader: it renders the themed page document, keeps one
// handle per mounted page and delivers bridge commands as injected scripts.
package surface

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/pagewise/internal/paginate"
)

// Theme is the session-wide color scheme.
type Theme struct {
	Dark bool `json:"dark"`
}

const (
	themeStyleID   = "pagewise-theme"
	highlightClass = "pw-highlight"
	selectionColor = "#FF5722"
)

// Colors returns the foreground and background colors for the theme.
func (t Theme) Colors() (fg, bg string) {
	if t.Dark {
		return "#fff", "#000"
	}
	return "#000", "#fff"
}

// CSS returns the stylesheet applied to a page body for the theme.
func (t Theme) CSS() string {
	fg, bg := t.Colors()
	var sb strings.Builder
	fmt.Fprintf(&sb, "::selection { background: %s; color: white; }\n", selectionColor)
	sb.WriteString("body { -webkit-user-select: text; user-select: text; -webkit-touch-callout: none; ")
	sb.WriteString("margin: 0; padding: 20px; font-size: 18px; line-height: 1.6; white-space: pre-wrap; ")
	fmt.Fprintf(&sb, "color: %s; background-color: %s; transition: background-color 0s, color 0s; }\n", fg, bg)
	fmt.Fprintf(&sb, ".%s { background: %s; color: white; border-radius: 2px; }\n", highlightClass, selectionColor)
	return sb.String()
}

// RenderDocument builds the HTML document for a page. The page text is
// always emitted as escaped text, never as markup.
func RenderDocument(page paginate.Page, theme Theme) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, html.Attribute{Key: "data-page", Val: fmt.Sprint(page.Index)})
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1.0"},
	))
	style := element(atom.Style, html.Attribute{Key: "id", Val: themeStyleID})
	style.AppendChild(&html.Node{Type: html.TextNode, Data: theme.CSS()})
	head.AppendChild(style)
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(&html.Node{Type: html.TextNode, Data: page.Text})
	root.AppendChild(body)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return "", fmt.Errorf("render page %d: %w", page.Index, err)
	}
	return sb.String(), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
