package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a script ingestion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusProjecting JobStatus = "projecting"
	StatusStoring    JobStatus = "storing"
	StatusFeedback   JobStatus = "feedback"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
	StatusDupSkipped JobStatus = "duplicate_skipped"
)

// Job tracks the state of a single script ingestion.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	ScriptID string `json:"script_id"`
	UserID   string `json:"user_id"`

	Status     JobStatus `json:"status"`
	Phase      string    `json:"phase"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	FormatHint string    `json:"format_hint,omitempty"`
	Force      bool      `json:"-"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	errors   []string
}

// Progress tracks parse results and feedback delivery.
type Progress struct {
	Format          string   `json:"format,omitempty"`
	SceneCount      int      `json:"scene_count"`
	CharacterCount  int      `json:"character_count"`
	WordCount       int      `json:"word_count"`
	EstimatedPages  int      `json:"estimated_pages"`
	FeedbackBatches int      `json:"feedback_batches"`
	BatchesSent     int      `json:"batches_sent"`
	Errors          []string `json:"errors"`
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
		if now.Sub(job.UpdatedAt) > s.ttl {
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

// SetParseResult records the parsed document's aggregate statistics.
func (j *Job) SetParseResult(format string, scenes, characters, words, pages int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Format = format
	j.Progress.SceneCount = scenes
	j.Progress.CharacterCount = characters
	j.Progress.WordCount = words
	j.Progress.EstimatedPages = pages
	j.UpdatedAt = time.Now()
}

// SetFeedbackBatches records total batch count for feedback delivery.
func (j *Job) SetFeedbackBatches(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.FeedbackBatches = n
	j.UpdatedAt = time.Now()
}

// IncrBatchesSent atomically increments the delivered batch counter.
func (j *Job) IncrBatchesSent() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.BatchesSent++
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw document bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	ScriptID string    `json:"script_id"`
	UserID   string    `json:"user_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	progress := j.Progress
	progress.Errors = errs
	return JobSnapshot{
		ID:       j.ID,
		ScriptID: j.ScriptID,
		UserID:   j.UserID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: progress,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
