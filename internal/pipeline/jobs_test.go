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
		{StatusReading, "reading"},
		{StatusAggregating, "aggregating"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		job.SetStatus(tr.status, tr.phase)
		snap := job.Snapshot()
		if snap.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, snap.Status)
		}
		if snap.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, snap.Phase)
		}
	}
}

func TestJob_ProgressCounters(t *testing.T) {
	job := &Job{ID: "test-2"}
	job.SetTotals(2, 100)
	job.AddRowsProcessed(60, 3)
	job.AddRowsProcessed(37, 0)
	job.IncrSheetsDone()
	job.IncrSheetsDone()

	snap := job.Snapshot()
	if snap.Progress.Sheets != 2 || snap.Progress.SheetsDone != 2 {
		t.Errorf("unexpected sheet counters %+v", snap.Progress)
	}
	if snap.Progress.RowsTotal != 100 {
		t.Errorf("expected 100 total rows, got %d", snap.Progress.RowsTotal)
	}
	if snap.Progress.RowsProcessed != 97 {
		t.Errorf("expected 97 processed rows, got %d", snap.Progress.RowsProcessed)
	}
	if snap.Progress.RowsDeduped != 3 {
		t.Errorf("expected 3 deduped rows, got %d", snap.Progress.RowsDeduped)
	}
}

func TestJob_SnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "test-3"}
	if errs := job.Snapshot().Progress.Errors; errs == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	job.AddError("boom")
	if got := job.Snapshot().Progress.Errors; len(got) != 1 || got[0] != "boom" {
		t.Errorf("unexpected errors %v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	job := &Job{ID: "old", UpdatedAt: time.Now().Add(-time.Minute)}
	store.Put(job)
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()
	if store.Get("old") != nil {
		t.Error("expected expired job evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job retained")
	}
}
