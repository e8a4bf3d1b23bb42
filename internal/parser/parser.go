// Package parser turns uploaded files into a document.Document whose
// flattened text can be paginated.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagewise/internal/document"
)

// ErrUnsupported is returned for file types no parser handles.
var ErrUnsupported = errors.New("parser: unsupported file type")

// Parser converts raw file bytes into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// Options tune parser selection.
type Options struct {
	// PDFFallback shells out to pdftotext when the Go PDF reader fails.
	PDFFallback bool
}

var extensions = map[string]func(Options) Parser{
	".txt":      func(Options) Parser { return &TextParser{} },
	".text":     func(Options) Parser { return &TextParser{} },
	".md":       func(Options) Parser { return &MarkdownParser{} },
	".markdown": func(Options) Parser { return &MarkdownParser{} },
	".html":     func(Options) Parser { return &HTMLParser{} },
	".htm":      func(Options) Parser { return &HTMLParser{} },
	".pdf":      func(o Options) Parser { return &PDFParser{FallbackPdftotext: o.PDFFallback} },
	".docx":     func(Options) Parser { return &DOCXParser{} },
}

// ForFile returns the parser for a filename's extension.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mk, ok := extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	return mk(opts), nil
}

// IsSupported reports whether a parser exists for the filename.
func IsSupported(filename string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// titleFromFilename drops the directory and extension.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
