package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

// WorkflowStats holds aggregated workflow counters for the dashboard
type WorkflowStats struct {
	Pending        int64
	CompletedToday int64
	Completed      int64
	Cancelled      int64
	ClientRejected int64
	Total          int64
	// AvgApproval is the mean time from start to completion of completed workflows
	AvgApproval time.Duration
}

type workflowSpan struct {
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// GetStats aggregates workflow counts. since marks the start of "today" in the caller's timezone.
func (r *WorkflowRepository) GetStats(ctx context.Context, since time.Time) (*WorkflowStats, error) {
	stats := &WorkflowStats{}
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Workflow{})
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count workflows: %w", err)
	}

	counters := []struct {
		status domain.WorkflowStatus
		dest   *int64
	}{
		{domain.WorkflowStatusActive, &stats.Pending},
		{domain.WorkflowStatusCompleted, &stats.Completed},
		{domain.WorkflowStatusCancelled, &stats.Cancelled},
		{domain.WorkflowStatusClientRejected, &stats.ClientRejected},
	}
	for _, c := range counters {
		if err := base().Where("workflow_status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s workflows: %w", c.status, err)
		}
	}

	if err := base().
		Where("workflow_status = ? AND completed_at >= ?", domain.WorkflowStatusCompleted, since).
		Count(&stats.CompletedToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count workflows completed today: %w", err)
	}

	var spans []workflowSpan
	if err := base().
		Select("created_at", "completed_at").
		Where("workflow_status = ? AND completed_at IS NOT NULL", domain.WorkflowStatusCompleted).
		Find(&spans).Error; err != nil {
		return nil, fmt.Errorf("failed to load completion times: %w", err)
	}

	var sum time.Duration
	var n int64
	for _, s := range spans {
		if s.CompletedAt == nil || s.CompletedAt.Before(s.CreatedAt) {
			continue
		}
		sum += s.CompletedAt.Sub(s.CreatedAt)
		n++
	}
	if n > 0 {
		stats.AvgApproval = sum / time.Duration(n)
	}

	return stats, nil
}
