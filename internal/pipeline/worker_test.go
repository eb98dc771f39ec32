package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/dgrange/sheetsift/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newJob(filename string, data []byte) *Job {
	now := time.Now()
	job := &Job{
		ID:        "test-job",
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	return job
}

const csvFixture = "Class,Subject,Chapter,Topic,Note\n" +
	"10,Math,Algebra,Linear Eq,\n" +
	"10,Math,Algebra,Quadratics,hard\n" +
	"11,Science,Optics,Lenses,lab\n"

func TestWorker_ProcessPublishesSession(t *testing.T) {
	sessions := session.NewStore()
	w := NewWorker(sessions, discardLogger(), 2)

	job := newJob("upload.csv", []byte(csvFixture))
	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusCompleted {
		t.Fatalf("expected completed job, got %q (errors: %v)", got, job.Snapshot().Progress.Errors)
	}

	sess := sessions.Current()
	if sess == nil {
		t.Fatal("expected a published session")
	}
	cat := sess.Tree().Category("upload")
	if cat == nil {
		t.Fatal("expected category 'upload' in tree")
	}
	if len(cat.Children()) != 2 {
		t.Errorf("expected 2 class groups, got %d", len(cat.Children()))
	}

	snap := job.Snapshot()
	if snap.Progress.RowsTotal != 3 || snap.Progress.RowsProcessed != 3 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
}

func TestWorker_BatchSizeDoesNotChangeResult(t *testing.T) {
	var trees []*hierarchy.Tree
	for _, batchSize := range []int{1, 2, 100} {
		sessions := session.NewStore()
		w := NewWorker(sessions, discardLogger(), batchSize)
		w.Process(context.Background(), newJob("upload.csv", []byte(csvFixture)))
		sess := sessions.Current()
		if sess == nil {
			t.Fatalf("batch size %d: no session published", batchSize)
		}
		trees = append(trees, sess.Tree())
	}
	for i := 1; i < len(trees); i++ {
		if trees[i].Len() != trees[0].Len() {
			t.Errorf("tree size differs across batch sizes: %d vs %d", trees[i].Len(), trees[0].Len())
		}
	}
}

func TestWorker_UnsupportedExtensionFailsJob(t *testing.T) {
	sessions := session.NewStore()
	w := NewWorker(sessions, discardLogger(), 10)

	job := newJob("upload.pdf", []byte("%PDF-1.4"))
	w.Process(context.Background(), job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed job, got %q", got)
	}
	if sessions.Current() != nil {
		t.Error("expected no session published on failure")
	}
}

func TestWorker_MalformedInputLeavesPreviousSession(t *testing.T) {
	sessions := session.NewStore()
	w := NewWorker(sessions, discardLogger(), 10)

	w.Process(context.Background(), newJob("upload.csv", []byte(csvFixture)))
	previous := sessions.Current()
	if previous == nil {
		t.Fatal("expected initial session")
	}

	bad := newJob("broken.xlsx", []byte("not a workbook"))
	w.Process(context.Background(), bad)

	if got := bad.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed job, got %q", got)
	}
	if sessions.Current() != previous {
		t.Error("expected previously committed session to survive a failed upload")
	}
}

func TestWorker_CanceledContextAbandonsIngestion(t *testing.T) {
	sessions := session.NewStore()
	w := NewWorker(sessions, discardLogger(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := newJob("upload.csv", []byte(csvFixture))
	w.Process(ctx, job)

	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected failed job after cancellation, got %q", got)
	}
	if sessions.Current() != nil {
		t.Error("expected no partial session published")
	}
}
