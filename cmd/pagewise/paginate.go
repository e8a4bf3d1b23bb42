package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dgallion1/pagewise/internal/paginate"
	"github.com/dgallion1/pagewise/internal/parser"
)

func newPaginateCmd() *cobra.Command {
	var (
		budget     int
		width      int
		jsonOutput bool
		fallback   bool
	)

	cmd := &cobra.Command{
		Use:   "paginate FILE",
		Short: "Split a document into pages and print them",
		Long:  `Parse a .txt, .md, .html, .pdf or .docx file, flatten it to text and print one line per page.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := paginateFile(args[0], budget, parser.Options{PDFFallback: fallback})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(pages)
			}
			return printPages(out, pages, width)
		},
	}

	cmd.Flags().IntVarP(&budget, "budget", "b", paginate.DefaultBudget, "Characters per page")
	cmd.Flags().IntVarP(&width, "width", "w", 60, "Preview width in terminal cells")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print pages as JSON")
	cmd.Flags().BoolVar(&fallback, "pdftotext", true, "Fall back to pdftotext for PDFs the Go reader cannot handle")
	return cmd
}

func paginateFile(path string, budget int, opts parser.Options) ([]paginate.Page, error) {
	p, err := parser.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return paginate.Paginate(doc.Text(), budget)
}

// printPages writes "index  chars  preview" rows. The preview is the page
// text on one line, cut to width display cells so wide scripts line up.
func printPages(w io.Writer, pages []paginate.Page, width int) error {
	if len(pages) == 0 {
		_, err := fmt.Fprintln(w, "(empty document)")
		return err
	}
	digits := len(fmt.Sprint(len(pages)))
	for _, p := range pages {
		preview := strings.Join(strings.Fields(p.Text), " ")
		preview = runewidth.FillRight(runewidth.Truncate(preview, width, "…"), width)
		if _, err := fmt.Fprintf(w, "%*d  %4d  %s\n", digits, p.Index+1, p.Len(), preview); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d pages\n", len(pages))
	return err
}
