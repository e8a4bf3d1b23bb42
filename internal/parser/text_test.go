package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(doc.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
	}
	for i, w := range want {
		if doc.Sections[i].Text != w {
			t.Errorf("section[%d]: expected %q, got %q", i, w, doc.Sections[i].Text)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(doc.Sections))
	}
}

func TestTextParser_BlankLineVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"multiple blank lines", "Para one.\n\n\n\nPara two."},
		{"whitespace-only line", "Para one.\n   \nPara two."},
		{"crlf", "Para one.\r\n\r\nPara two.\r\n"},
	}
	p := &TextParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.Parse(strings.NewReader(tt.input), "gaps.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := doc.Text(); got != "Para one.\n\nPara two." {
				t.Errorf("expected two paragraphs, got %q", got)
			}
		})
	}
}

func TestTextParser_LongSingleLine(t *testing.T) {
	line := strings.Repeat("word ", 2*1024*1024/5) + "end"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(line), "book.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Text != line {
		t.Errorf("expected the full %d-byte line, got %d bytes", len(line), len(doc.Sections[0].Text))
	}
}

func TestTextParser_CRLFWithoutTrailingNewline(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("one\r\ntwo\r\n\r\nthree"), "crlf.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"one\ntwo", "three"}
	if len(doc.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
	}
	for i, w := range want {
		if doc.Sections[i].Text != w {
			t.Errorf("section[%d]: expected %q, got %q", i, w, doc.Sections[i].Text)
		}
	}
}
