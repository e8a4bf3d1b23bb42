package paginate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultBudget is the number of characters per page used by the reader.
const DefaultBudget = 600

// ErrInvalidArgument is returned when the page budget is not positive.
var ErrInvalidArgument = errors.New("paginate: invalid argument")

// Page is one fixed-budget slice of a document.
type Page struct {
	Index  int    // Position in the page sequence
	Offset int    // Rune offset of the first character within the document
	Text   string // Page content
}

// Len returns the page length in characters.
func (p Page) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// Paginate splits text into consecutive pages of at most budget characters.
// Pages ignore word boundaries: a page may end mid-word. An empty text yields
// no pages.
func Paginate(text string, budget int) ([]Page, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: budget %d must be positive", ErrInvalidArgument, budget)
	}
	if text == "" {
		return nil, nil
	}

	pages := make([]Page, 0, Count(text, budget))
	offset := 0
	start := 0 // byte position of the current page
	runes := 0
	for i := range text {
		if runes == budget {
			pages = append(pages, Page{Index: len(pages), Offset: offset, Text: text[start:i]})
			offset += runes
			start = i
			runes = 0
		}
		runes++
	}
	pages = append(pages, Page{Index: len(pages), Offset: offset, Text: text[start:]})
	return pages, nil
}

// Count returns ceil(L/budget) for a text of L characters, or 0 when budget
// is not positive.
func Count(text string, budget int) int {
	if budget <= 0 {
		return 0
	}
	n := utf8.RuneCountInString(text)
	return (n + budget - 1) / budget
}

// Join reconstructs the document from its pages.
func Join(pages []Page) string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
