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

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing document"},
		{StatusProjecting, "deriving views"},
		{StatusStoring, "storing script"},
		{StatusFeedback, "sending feedback"},
		{StatusCompleted, "done"},
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

func TestJob_SetStatusFailed(t *testing.T) {
	job := &Job{
		ID:        "test-fail",
		Status:    StatusParsing,
		UpdatedAt: time.Now(),
	}
	job.SetStatus(StatusFailed, "parse error")
	if job.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, job.Status)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("batch 3 failed")
	job.AddError("batch 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "batch 3 failed" {
		t.Errorf("expected first error %q, got %q", "batch 3 failed", snap.Progress.Errors[0])
	}
}

func TestJob_SetParseResult(t *testing.T) {
	job := &Job{ID: "parse-test", UpdatedAt: time.Now()}
	job.SetParseResult("fountain", 3, 5, 750, 3)

	snap := job.Snapshot()
	if snap.Progress.Format != "fountain" {
		t.Errorf("expected format fountain, got %q", snap.Progress.Format)
	}
	if snap.Progress.SceneCount != 3 || snap.Progress.CharacterCount != 5 {
		t.Errorf("unexpected counts: %+v", snap.Progress)
	}
	if snap.Progress.WordCount != 750 || snap.Progress.EstimatedPages != 3 {
		t.Errorf("unexpected totals: %+v", snap.Progress)
	}
}

func TestJob_BatchCounters(t *testing.T) {
	job := &Job{ID: "batch-test", UpdatedAt: time.Now()}
	job.SetFeedbackBatches(3)
	job.IncrBatchesSent()
	job.IncrBatchesSent()

	snap := job.Snapshot()
	if snap.Progress.FeedbackBatches != 3 {
		t.Errorf("expected 3 batches planned, got %d", snap.Progress.FeedbackBatches)
	}
	if snap.Progress.BatchesSent != 2 {
		t.Errorf("expected 2 batches sent, got %d", snap.Progress.BatchesSent)
	}
}

func TestJob_FileData(t *testing.T) {
	job := &Job{ID: "data-test"}
	data := []byte("INT. HOUSE - DAY")
	job.SetFileData(data)
	got := job.FileData()
	if string(got) != string(data) {
		t.Errorf("expected file data %q, got %q", data, got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestNewJobID_UniqueAndSortable(t *testing.T) {
	a := NewJobID()
	time.Sleep(2 * time.Millisecond)
	b := NewJobID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 26 || len(b) != 26 {
		t.Errorf("expected 26-char ids, got %d and %d", len(a), len(b))
	}
	if !(a < b) {
		t.Errorf("expected lexicographic ordering by creation time: %q !< %q", a, b)
	}
}
