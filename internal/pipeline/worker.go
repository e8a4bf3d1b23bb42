package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pagewise/internal/parser"
	"github.com/dgallion1/pagewise/internal/reader"
)

// SessionOpener opens a reader session for loaded text.
type SessionOpener interface {
	Open(title, text string, budget int) (*reader.Session, error)
}

// Worker processes a single document job.
type Worker struct {
	opener  SessionOpener
	parsers parser.Options
	log     *slog.Logger
}

func NewWorker(opener SessionOpener, parsers parser.Options, log *slog.Logger) *Worker {
	return &Worker{opener: opener, parsers: parsers, log: log}
}

// Process parses the job's file, flattens it to document text and opens a
// session on it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parsers)
	if err != nil {
		w.fail(log, job, "parsing", err)
		return
	}
	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		w.fail(log, job, "parsing", fmt.Errorf("parse: %w", err))
		return
	}
	title := job.Title
	if title == "" {
		title = doc.Title
	}
	text := doc.Text()
	job.SetText(text)

	if err := ctx.Err(); err != nil {
		w.fail(log, job, "parsing", err)
		return
	}

	// Phase 2: Paginate and open the session.
	job.SetStatus(StatusPaginating, "paginating")
	session, err := w.opener.Open(title, text, job.Budget)
	if err != nil {
		w.fail(log, job, "paginating", err)
		return
	}
	if text == "" {
		log.Warn("document has no text; opened with a blank page")
	}

	job.Ready(session.ID(), session.PageCount())
	log.Info("document loaded", "session_id", session.ID(), "pages", session.PageCount())
}

func (w *Worker) fail(log *slog.Logger, job *Job, phase string, err error) {
	log.Error("load failed", "phase", phase, "error", err)
	job.AddError(err.Error())
	job.SetStatus(StatusFailed, phase)
}
