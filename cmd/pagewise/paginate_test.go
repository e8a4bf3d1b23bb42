package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/pagewise/internal/paginate"
	"github.com/dgallion1/pagewise/internal/parser"
)

func TestPaginateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.md")
	body := "# Title\n\n" + strings.Repeat("x", 95)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	pages, err := paginateFile(path, 50, parser.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "Title\n\n" + 95 x's = 102 characters.
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if !strings.HasPrefix(pages[0].Text, "Title\n\nxxx") {
		t.Errorf("unexpected first page %q", pages[0].Text)
	}
}

func TestPaginateFile_Unsupported(t *testing.T) {
	if _, err := paginateFile("sheet.csv", 50, parser.Options{}); err == nil {
		t.Fatal("expected error for unsupported file")
	}
}

func TestPrintPages(t *testing.T) {
	var buf bytes.Buffer
	err := printPages(&buf, mustPaginate(t, "第一章 開始\n"+strings.Repeat("字", 40), 20), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 3 page rows and a summary, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "第一章 開…") {
		t.Errorf("expected preview truncated to 10 cells, got %q", lines[0])
	}
	if lines[3] != "3 pages" {
		t.Errorf("unexpected summary %q", lines[3])
	}

	buf.Reset()
	if err := printPages(&buf, nil, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "(empty document)\n" {
		t.Errorf("unexpected empty output %q", buf.String())
	}
}

func mustPaginate(t *testing.T, text string, budget int) []paginate.Page {
	t.Helper()
	pages, err := paginate.Paginate(text, budget)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	return pages
}
