package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dgallion1/pagewise/internal/config"
	"github.com/dgallion1/pagewise/internal/parser"
	"github.com/dgallion1/pagewise/internal/reader"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) *reader.Store {
	t.Helper()
	st := reader.NewStore(reader.Options{Budget: 600, Clock: clockwork.NewFakeClock()}, time.Hour, testLogger())
	t.Cleanup(st.CloseAll)
	return st
}

func TestWorker_LoadsMarkdown(t *testing.T) {
	st := newStore(t)
	w := NewWorker(st, parser.Options{}, testLogger())

	body := "# Chapter\n\n" + strings.Repeat("word ", 200)
	job := NewJob("md", "story.md", "", 0, []byte(body))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusReady {
		t.Fatalf("expected ready, got %q (errors %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", snap.Progress.Pages)
	}

	s, err := st.Get(snap.SessionID)
	if err != nil {
		t.Fatalf("expected session to be open: %v", err)
	}
	if s.Title() != "story" {
		t.Errorf("expected title from filename, got %q", s.Title())
	}
	if !strings.HasPrefix(s.Pages()[0].Text, "Chapter\n\nword word") {
		t.Errorf("unexpected first page: %q", s.Pages()[0].Text[:30])
	}
}

func TestWorker_TitleAndBudgetFromJob(t *testing.T) {
	st := newStore(t)
	w := NewWorker(st, parser.Options{}, testLogger())

	job := NewJob("txt", "notes.txt", "My Notes", 10, []byte(strings.Repeat("z", 25)))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusReady || snap.Progress.Pages != 3 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	s, err := st.Get(snap.SessionID)
	if err != nil {
		t.Fatalf("expected session: %v", err)
	}
	if s.Title() != "My Notes" {
		t.Errorf("expected job title, got %q", s.Title())
	}
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		budget   int
		phase    string
	}{
		{"unsupported type", "sheet.csv", 0, "parsing"},
		{"invalid budget", "a.txt", -1, "paginating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t)
			w := NewWorker(st, parser.Options{}, testLogger())
			job := NewJob("fail", tt.filename, "", tt.budget, []byte("text"))
			w.Process(context.Background(), job)

			snap := job.Snapshot()
			if snap.Status != StatusFailed || snap.Phase != tt.phase {
				t.Errorf("expected failed in %s, got %q/%q", tt.phase, snap.Status, snap.Phase)
			}
			if len(snap.Progress.Errors) != 1 {
				t.Errorf("expected one error, got %v", snap.Progress.Errors)
			}
			if st.Len() != 0 {
				t.Errorf("expected no session to be opened, got %d", st.Len())
			}
		})
	}
}

func TestWorker_CancelledContext(t *testing.T) {
	st := newStore(t)
	w := NewWorker(st, parser.Options{}, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob("cancel", "a.txt", "", 0, []byte("text"))
	w.Process(ctx, job)
	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %q", job.Snapshot().Status)
	}
}

func TestOrchestrator_SubmitAndQueueFull(t *testing.T) {
	st := newStore(t)
	cfg := config.Defaults()
	cfg.WorkerCount = 1
	cfg.MaxQueueSize = 1
	o := NewOrchestrator(cfg, st, testLogger())

	// Not started: the queue holds one job and rejects the next.
	first := NewJob("first", "a.txt", "", 0, []byte("one"))
	if err := o.Submit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := NewJob("second", "b.txt", "", 0, []byte("two"))
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to fail, got %q", second.Snapshot().Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}

	o.Start(context.Background())
	defer o.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for o.GetJob("first").Snapshot().Status != StatusReady {
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish: %+v", o.GetJob("first").Snapshot())
		}
		time.Sleep(5 * time.Millisecond)
	}
	if o.GetJob("missing") != nil {
		t.Error("expected nil for unknown job")
	}
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	o := NewOrchestrator(config.Defaults(), newStore(t), testLogger())
	o.Start(context.Background())
	o.Stop()
	o.Stop()

	job := NewJob("late", "late.txt", "", 0, []byte("late"))
	if err := o.Submit(job); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if o.GetJob("late") != nil {
		t.Error("rejected job must not be stored")
	}
}
