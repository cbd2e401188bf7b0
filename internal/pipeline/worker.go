package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scriptmentor/scriptparse/internal/config"
	"github.com/scriptmentor/scriptparse/internal/feedback"
	"github.com/scriptmentor/scriptparse/internal/parser"
	"github.com/scriptmentor/scriptparse/internal/projector"
	"github.com/scriptmentor/scriptparse/internal/scriptstore"
)

// Worker processes a single script ingestion job.
type Worker struct {
	store  *scriptstore.Client
	mentor *feedback.Client
	log    *slog.Logger
	cfg    config.Config
}

func NewWorker(store *scriptstore.Client, mentor *feedback.Client, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		store:  store,
		mentor: mentor,
		log:    log,
		cfg:    cfg,
	}
}

// Process runs the full ingestion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "script_id", job.ScriptID, "user_id", job.UserID)
	data := job.FileData()

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")

	formatLabel := job.FormatHint
	var p parser.Parser
	if job.FormatHint != "" {
		var err error
		p, err = parser.ForHint(job.FormatHint)
		if err != nil {
			log.Error("unsupported format", "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "parsing")
			return
		}
	} else {
		format := parser.Detect(data)
		formatLabel = string(format)
		p = parser.ForFormat(format)
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.cfg.PDFFallbackPdftotext
	}

	doc, err := p.Parse(data)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" && doc.Metadata.Title == "" {
		doc.Metadata.Title = job.Title
	}
	job.ContentHash = ContentHashHex(data)
	if job.ScriptID == "" {
		job.ScriptID = job.ContentHash[:16]
	}
	job.SetParseResult(formatLabel, doc.SceneCount, doc.CharacterCount, doc.TotalWordCount, doc.EstimatedPages)
	log.Info("parsed script", "format", formatLabel,
		"scenes", doc.SceneCount, "characters", doc.CharacterCount, "words", doc.TotalWordCount)

	// Phase 1.5: Dedup check.
	if !job.Force {
		existing, err := w.store.GetScript(ctx, job.UserID, job.ScriptID)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != nil && existing.ContentHash == job.ContentHash {
			log.Info("duplicate script, skipping", "existing_script_id", existing.ScriptID)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Project derived views.
	job.SetStatus(StatusProjecting, "projecting")
	web := projector.Web(doc)
	analysis := projector.Analyze(doc)
	fountainText := projector.Fountain(doc)

	// Phase 3: Store the record.
	job.SetStatus(StatusStoring, "storing")
	rec := scriptstore.Record{
		ScriptID:    job.ScriptID,
		UserID:      job.UserID,
		Filename:    job.Filename,
		Title:       doc.Metadata.Title,
		Format:      formatLabel,
		ContentHash: job.ContentHash,
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
		Screenplay:  doc,
		Web:         web,
		Analysis:    analysis,
		Fountain:    fountainText,
	}
	if err := w.withRetry(ctx, log, "store", func() error {
		return w.store.PutScript(ctx, rec)
	}); err != nil {
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	// Phase 4: Ship analysis to the mentor backend.
	if w.mentor == nil || !w.cfg.FeedbackEnabled {
		job.SetStatus(StatusCompleted, "done")
		return
	}
	job.SetStatus(StatusFeedback, "feedback")
	batches := feedback.BatchScenes(analysis.Scenes, w.cfg.FeedbackTokenBudget)
	job.SetFeedbackBatches(len(batches))

	hadErrors := false
	for i, batch := range batches {
		req := feedback.AnalysisRequest{
			UserID:     job.UserID,
			ScriptID:   job.ScriptID,
			Title:      doc.Metadata.Title,
			Scenes:     batch.Scenes,
			Characters: analysis.Characters,
			Structure:  analysis.Structure,
		}
		if err := w.withRetry(ctx, log, "feedback", func() error {
			return w.mentor.SendAnalysis(ctx, req)
		}); err != nil {
			log.Error("feedback delivery failed", "batch", i, "error", err)
			job.AddError(fmt.Sprintf("feedback batch %d: %s", i, err))
			hadErrors = true
			continue
		}
		job.IncrBatchesSent()
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// withRetry runs op, retrying transient downstream failures with backoff.
func (w *Worker) withRetry(ctx context.Context, log *slog.Logger, name string, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = op()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		log.Warn("retryable error", "op", name, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
