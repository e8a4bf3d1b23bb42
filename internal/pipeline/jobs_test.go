package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("job-1", "book.md", "", 300, []byte("# Hi"))
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if string(job.FileData()) != "# Hi" {
		t.Errorf("expected file data to be kept, got %q", job.FileData())
	}
	if job.CreatedAt.IsZero() || !job.CreatedAt.Equal(job.UpdatedAt) {
		t.Errorf("expected CreatedAt == UpdatedAt, got %v and %v", job.CreatedAt, job.UpdatedAt)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("test-1", "a.txt", "", 0, nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusPaginating, "paginating"},
		{StatusFailed, "paginating"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_SetTextCountsCharacters(t *testing.T) {
	job := NewJob("text", "a.txt", "", 0, nil)
	job.SetText("héllo")

	snap := job.Snapshot()
	if snap.Progress.Characters != 5 {
		t.Errorf("expected 5 characters, got %d", snap.Progress.Characters)
	}
	if snap.ContentHash != ContentHashHex([]byte("héllo")) {
		t.Errorf("unexpected content hash %q", snap.ContentHash)
	}
}

func TestJob_ReadyReleasesFile(t *testing.T) {
	job := NewJob("ready", "a.txt", "", 0, []byte("data"))
	job.Ready("session-1", 4)

	snap := job.Snapshot()
	if snap.Status != StatusReady || snap.SessionID != "session-1" || snap.Progress.Pages != 4 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("parse failed")
	job.AddError("still failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "parse failed" {
		t.Errorf("expected first error %q, got %q", "parse failed", snap.Progress.Errors[0])
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(&Job{ID: "store-1", UpdatedAt: time.Now()})

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)
	store.Put(&Job{ID: "old", UpdatedAt: time.Now().Add(-time.Second)})
	store.Put(&Job{ID: "new", UpdatedAt: time.Now()})

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}
