package parser

import (
	"strings"

	"github.com/dgallion1/pagewise/internal/document"
)

// outline nests sections by heading level as blocks arrive in reading order.
// Level 0 is the implicit root; body text before the first heading lands there.
type outline struct {
	root  *document.Section
	stack []outlineEntry
	buf   strings.Builder
}

type outlineEntry struct {
	section *document.Section
	level   int
}

func newOutline() *outline {
	root := &document.Section{}
	return &outline{root: root, stack: []outlineEntry{{section: root}}}
}

func (o *outline) heading(level int, title string) {
	o.flush()
	s := &document.Section{Heading: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].section
	parent.Children = append(parent.Children, s)
	o.stack = append(o.stack, outlineEntry{section: s, level: level})
}

func (o *outline) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if o.buf.Len() > 0 {
		o.buf.WriteString("\n\n")
	}
	o.buf.WriteString(text)
}

func (o *outline) flush() {
	t := strings.TrimSpace(o.buf.String())
	o.buf.Reset()
	if t == "" {
		return
	}
	top := o.stack[len(o.stack)-1].section
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// sections returns the finished outline. Text that precedes the first
// heading becomes its own leading section.
func (o *outline) sections() []*document.Section {
	o.flush()
	out := o.root.Children
	if o.root.Text != "" {
		out = append([]*document.Section{{Text: o.root.Text}}, out...)
	}
	return out
}
