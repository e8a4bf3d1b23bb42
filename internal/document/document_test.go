package document

import "testing"

func TestDocumentText_ReadingOrder(t *testing.T) {
	doc := &Document{
		Title: "Guide",
		Sections: []*Section{
			{
				Heading: "Intro",
				Text:    "Welcome.",
				Children: []*Section{
					{Heading: "Details", Text: "  More text.  "},
				},
			},
			{Text: "Closing words."},
			{Heading: "   "},
		},
	}
	want := "Intro\n\nWelcome.\n\nDetails\n\nMore text.\n\nClosing words."
	if got := doc.Text(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDocumentText_Empty(t *testing.T) {
	doc := &Document{Title: "nothing"}
	if got := doc.Text(); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"café", "café"},
		{"a\r\nb\rc", "a\nb\nc"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
