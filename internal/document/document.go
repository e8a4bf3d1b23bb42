// Package document holds the parsed form of an uploaded file and flattens
// it into the plain text the reader paginates.
package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Document is the root of a parsed file.
type Document struct {
	Title    string     // From metadata or filename
	Sections []*Section // Top-level sections in reading order
}

// Section is a recursive block of the document.
type Section struct {
	Heading  string     // Empty for untitled blocks
	Text     string     // Body text, paragraphs separated by blank lines
	Page     int        // Source page for paginated formats, 0 otherwise
	Children []*Section // Subsections
}

// Text flattens the document into reading order: each heading on its own
// paragraph followed by its body, paragraphs separated by a blank line. The
// result is normalized with Normalize.
func (d *Document) Text() string {
	var parts []string
	var walk func([]*Section)
	walk = func(sections []*Section) {
		for _, s := range sections {
			if h := strings.TrimSpace(s.Heading); h != "" {
				parts = append(parts, h)
			}
			if t := strings.TrimSpace(s.Text); t != "" {
				parts = append(parts, t)
			}
			walk(s.Children)
		}
	}
	walk(d.Sections)
	return Normalize(strings.Join(parts, "\n\n"))
}

// Normalize converts line endings to \n and composes the text to NFC so a
// character count does not depend on how the source encoded accents.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
