package parser

import (
	"errors"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.txt", "*parser.TextParser"},
		{"a.MD", "*parser.MarkdownParser"},
		{"a.markdown", "*parser.MarkdownParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.html", "*parser.HTMLParser"},
		{"a.pdf", "*parser.PDFParser"},
		{"a.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("ForFile(%q): expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_PDFFallbackOption(t *testing.T) {
	p, err := ForFile("scan.pdf", Options{PDFFallback: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := p.(*PDFParser)
	if !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected PDF parser with fallback enabled, got %#v", p)
	}
}

func TestForFile_Unsupported(t *testing.T) {
	for _, name := range []string{"data.csv", "image.png", "noext"} {
		if _, err := ForFile(name, Options{}); !errors.Is(err, ErrUnsupported) {
			t.Errorf("ForFile(%q): expected ErrUnsupported, got %v", name, err)
		}
		if IsSupported(name) {
			t.Errorf("IsSupported(%q): expected false", name)
		}
	}
}

func TestOutline_Nesting(t *testing.T) {
	o := newOutline()
	o.paragraph("lead")
	o.heading(2, "B")
	o.paragraph("b body")
	o.heading(3, "C")
	o.heading(1, "A")
	o.paragraph("  ")
	o.paragraph("a body")

	secs := o.sections()
	if len(secs) != 3 {
		t.Fatalf("expected lead, B and A at top level, got %d sections", len(secs))
	}
	if secs[0].Text != "lead" || secs[0].Heading != "" {
		t.Errorf("unexpected lead section: %+v", secs[0])
	}
	if secs[1].Heading != "B" || secs[1].Text != "b body" || len(secs[1].Children) != 1 {
		t.Errorf("unexpected B section: %+v", secs[1])
	}
	if secs[2].Heading != "A" || secs[2].Text != "a body" {
		t.Errorf("unexpected A section: %+v", secs[2])
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}
