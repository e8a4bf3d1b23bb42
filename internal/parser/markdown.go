package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/pagewise/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings nest by
// level; every other top-level block contributes body text.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	root := goldmark.New().Parser().Parse(text.NewReader(src))
	out := newOutline()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			out.heading(h.Level, markdownText(h, src))
			continue
		}
		out.paragraph(markdownText(n, src))
	}

	return &document.Document{
		Title:    titleFromFilename(filename),
		Sections: out.sections(),
	}, nil
}

// markdownText returns the readable text under n. Leaf blocks such as code
// fences contribute their raw lines; container blocks put each child block
// on its own line.
func markdownText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeMarkdownText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeMarkdownText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(node.Value)
		return
	}

	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Type() == ast.TypeBlock && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		writeMarkdownText(buf, c, src)
	}
}
