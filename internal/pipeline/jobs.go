package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a document load job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusPaginating JobStatus = "paginating"
	StatusReady      JobStatus = "ready"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the loading of one uploaded file into a reader session.
type Job struct {
	mu sync.Mutex

	ID        string
	SessionID string

	Status   JobStatus
	Phase    string
	Filename string
	Title    string
	Budget   int

	Progress Progress

	ContentHash string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Internal: not serialized.
	fileData []byte
	errors   []string
}

// Progress reports what the load produced so far.
type Progress struct {
	Characters int      `json:"characters"`
	Pages      int      `json:"pages"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job for an uploaded file.
func NewJob(id, filename, title string, budget int, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     title,
		Budget:    budget,
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetText records the flattened document size and its content hash.
func (j *Job) SetText(text string) {
	hash := ContentHashHex([]byte(text))
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Characters = len([]rune(text))
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// Ready records the opened session and marks the job done. The file bytes
// are released.
func (j *Job) Ready(sessionID string, pages int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.SessionID = sessionID
	j.Progress.Pages = pages
	j.Status = StatusReady
	j.Phase = "done"
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	SessionID   string    `json:"session_id,omitempty"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Budget      int       `json:"budget"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := make([]string, len(j.Progress.Errors))
	copy(errs, j.Progress.Errors)
	return JobSnapshot{
		ID:          j.ID,
		SessionID:   j.SessionID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		Title:       j.Title,
		Budget:      j.Budget,
		ContentHash: j.ContentHash,
		Progress: Progress{
			Characters: j.Progress.Characters,
			Pages:      j.Progress.Pages,
			Errors:     errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
