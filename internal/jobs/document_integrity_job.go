package jobs

import (
	"context"
	"time"

	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

// DocumentIntegrityJobName is the name of the document integrity job
const DocumentIntegrityJobName = "document_integrity"

// ArtifactReconciler checks stored documents against their files
type ArtifactReconciler interface {
	ReconcileArtifacts(ctx context.Context) (*service.ReconcileReport, error)
}

// DocumentIntegrityJob restores or regenerates missing document files and
// drops metadata that can be neither.
type DocumentIntegrityJob struct {
	reconciler ArtifactReconciler
	logger     *zap.Logger
	timeout    time.Duration
}

// NewDocumentIntegrityJob creates a new document integrity job.
func NewDocumentIntegrityJob(reconciler ArtifactReconciler, logger *zap.Logger, timeout time.Duration) *DocumentIntegrityJob {
	return &DocumentIntegrityJob{
		reconciler: reconciler,
		logger:     logger,
		timeout:    timeout,
	}
}

// Run executes one integrity pass and returns its report.
func (j *DocumentIntegrityJob) Run() *service.ReconcileReport {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	report, err := j.reconciler.ReconcileArtifacts(ctx)
	if err != nil {
		j.logger.Error("document integrity job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		if report == nil {
			return nil
		}
	}

	fields := []zap.Field{
		zap.Int("checked", report.Checked),
		zap.Int("restored", report.Restored),
		zap.Int("regenerated", report.Regenerated),
		zap.Int("removed", report.Removed),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", time.Since(start)),
	}
	if report.Failed > 0 {
		j.logger.Warn("document integrity job completed with failures", fields...)
	} else {
		j.logger.Info("document integrity job completed", fields...)
	}
	return report
}

// RegisterDocumentIntegrityJob registers the document integrity job with the scheduler.
// If runAtStartup is true, a first pass runs immediately in a background goroutine.
func RegisterDocumentIntegrityJob(scheduler *Scheduler, reconciler ArtifactReconciler, logger *zap.Logger, cronExpr string, timeout time.Duration, runAtStartup bool) error {
	job := NewDocumentIntegrityJob(reconciler, logger, timeout)

	if runAtStartup {
		go job.Run()
	}

	return scheduler.AddJob(DocumentIntegrityJobName, cronExpr, func() { job.Run() })
}
