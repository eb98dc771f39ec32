package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgrange/sheetsift/internal/hierarchy"
	"github.com/dgrange/sheetsift/internal/session"
	"github.com/dgrange/sheetsift/internal/sheetio"
)

// Worker processes a single workbook ingestion job.
type Worker struct {
	sessions  *session.Store
	log       *slog.Logger
	batchSize int
}

func NewWorker(sessions *session.Store, log *slog.Logger, batchSize int) *Worker {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Worker{
		sessions:  sessions,
		log:       log,
		batchSize: batchSize,
	}
}

// Process runs the full ingestion pipeline for a job. The aggregate is built
// entirely off to the side and published into the session store only on
// success, so a failed or abandoned job leaves the previously committed
// session untouched.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Read.
	job.SetStatus(StatusReading, "reading")
	reader, err := sheetio.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}

	wb, err := reader.Read(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}

	totalRows := 0
	for _, sheet := range wb.Sheets {
		totalRows += len(sheet.Rows)
	}
	job.SetTotals(len(wb.Sheets), totalRows)

	// Phase 2: Aggregate in bounded batches. Batch boundaries never change
	// the resulting tree; they only bound how long the worker runs between
	// progress updates and cancellation checks.
	job.SetStatus(StatusAggregating, "aggregating")
	agg := hierarchy.NewAggregator()

	for _, sheet := range wb.Sheets {
		if len(sheet.Rows) == 0 {
			// Empty sheets are not an error; they are simply absent from
			// the tree.
			job.IncrSheetsDone()
			continue
		}
		agg.AddSheet(sheet.Name, sheet.Headers)

		for start := 0; start < len(sheet.Rows); start += w.batchSize {
			select {
			case <-ctx.Done():
				log.Info("ingestion abandoned", "sheet", sheet.Name)
				job.AddError(ctx.Err().Error())
				job.SetStatus(StatusFailed, "aggregating")
				return
			default:
			}

			end := min(start+w.batchSize, len(sheet.Rows))
			added, dropped := agg.AddRows(sheet.Name, sheet.Rows[start:end])
			job.AddRowsProcessed(added, dropped)
		}
		job.IncrSheetsDone()
	}

	// Phase 3: Publish. Replaces any previous session wholesale.
	w.sessions.Publish(session.New(job.Filename, agg.Finish()))
	log.Info("ingestion complete",
		"sheets", len(wb.Sheets),
		"rows", totalRows,
		"deduped", agg.Dropped(),
	)
	job.SetStatus(StatusCompleted, "done")
}
