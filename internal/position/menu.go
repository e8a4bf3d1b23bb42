package position

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dgallion1/pagewise/internal/paginate"
)

// HeadingWidth is the display width, in cells, of a menu heading.
const HeadingWidth = 40

// Progress describes how far into the document a page is.
type Progress struct {
	Percent   int `json:"percent"`
	PagesLeft int `json:"pages_left"`
}

// ProgressAt returns the progress of page index out of count pages.
func ProgressAt(index, count int) Progress {
	if count <= 0 {
		return Progress{}
	}
	return Progress{
		Percent:   int(math.Round(float64(index+1) / float64(count) * 100)),
		PagesLeft: count - index - 1,
	}
}

// Progress returns the progress of the current page.
func (s *Synchronizer) Progress() Progress {
	return ProgressAt(s.current, s.cfg.PageCount)
}

// MenuItem is one row of the page-list menu.
type MenuItem struct {
	Index   int    `json:"index"`
	Heading string `json:"heading"`
	Percent int    `json:"percent"`
	Current bool   `json:"current"`
}

// Menu builds the page-list menu for the given pages.
func (s *Synchronizer) Menu(pages []paginate.Page) []MenuItem {
	items := make([]MenuItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, MenuItem{
			Index:   p.Index,
			Heading: Heading(p.Text, HeadingWidth),
			Percent: ProgressAt(p.Index, s.cfg.PageCount).Percent,
			Current: p.Index == s.current,
		})
	}
	return items
}

// Heading derives a one-line heading from page text: the first non-blank
// line with whitespace collapsed, truncated to width display cells.
func Heading(text string, width int) string {
	var line string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			line = l
			break
		}
	}
	return runewidth.Truncate(line, width, "…")
}
