package paginate

import (
	"errors"
	"strings"
	"testing"
)

func TestPaginate_ScenarioLengths(t *testing.T) {
	text := strings.Repeat("x", 1450)
	pages, err := Paginate(text, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{600, 600, 250}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(pages))
	}
	for i, w := range want {
		if pages[i].Len() != w {
			t.Errorf("page %d: expected length %d, got %d", i, w, pages[i].Len())
		}
		if pages[i].Index != i {
			t.Errorf("page %d: expected index %d, got %d", i, i, pages[i].Index)
		}
	}
	if pages[2].Offset != 1200 {
		t.Errorf("expected last page offset 1200, got %d", pages[2].Offset)
	}
}

func TestPaginate_ReconstructsDocument(t *testing.T) {
	texts := []string{
		"a",
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit. ",
		strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit. ", 120),
		strings.Repeat("héllo wörld — ", 97),
		strings.Repeat("日本語のテキスト", 31),
	}
	budgets := []int{1, 3, 7, 600, 10000}

	for _, text := range texts {
		for _, b := range budgets {
			pages, err := Paginate(text, b)
			if err != nil {
				t.Fatalf("budget %d: unexpected error: %v", b, err)
			}
			if got := Join(pages); got != text {
				t.Fatalf("budget %d: concatenation does not reconstruct the document", b)
			}
			if len(pages) != Count(text, b) {
				t.Errorf("budget %d: expected %d pages, got %d", b, Count(text, b), len(pages))
			}
			for i, p := range pages[:len(pages)-1] {
				if p.Len() != b {
					t.Errorf("budget %d: page %d has length %d, want %d", b, i, p.Len(), b)
				}
			}
			if last := pages[len(pages)-1].Len(); last < 1 || last > b {
				t.Errorf("budget %d: last page length %d out of range", b, last)
			}
		}
	}
}

func TestPaginate_SplitsMidWord(t *testing.T) {
	pages, err := Paginate("abcdefgh", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"abc", "def", "gh"}
	for i, w := range want {
		if pages[i].Text != w {
			t.Errorf("page %d: expected %q, got %q", i, w, pages[i].Text)
		}
	}
}

func TestPaginate_Deterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 50)
	a, _ := Paginate(text, 97)
	b, _ := Paginate(text, 97)
	if len(a) != len(b) {
		t.Fatalf("page counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("page %d differs between runs", i)
		}
	}
}

func TestPaginate_EmptyDocument(t *testing.T) {
	pages, err := Paginate("", DefaultBudget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(pages))
	}
	if Count("", DefaultBudget) != 0 {
		t.Errorf("expected count 0 for empty document")
	}
}

func TestPaginate_InvalidBudget(t *testing.T) {
	for _, b := range []int{0, -1, -600} {
		_, err := Paginate("text", b)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("budget %d: expected ErrInvalidArgument, got %v", b, err)
		}
	}
}

func TestPaginate_MultibyteOffsets(t *testing.T) {
	pages, err := Paginate("ééééé", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[1].Text != "éé" || pages[1].Offset != 2 {
		t.Errorf("unexpected second page: %+v", pages[1])
	}
	if pages[2].Text != "é" || pages[2].Offset != 4 {
		t.Errorf("unexpected last page: %+v", pages[2])
	}
}
