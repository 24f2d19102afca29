package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/straye-as/cpq-api/internal/jobs"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReconciler struct {
	calls  atomic.Int32
	report *service.ReconcileReport
	err    error
}

func (f *fakeReconciler) ReconcileArtifacts(ctx context.Context) (*service.ReconcileReport, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("missing deadline")
	}
	return f.report, f.err
}

func TestScheduler_AddAndRemoveJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "0 */6 * * *", func() {}))
	require.NoError(t, s.AddJob("a", "0 15 * * * *", func() {}))
	require.NoError(t, s.AddJob("c", "@every 1h", func() {}))
	assert.Equal(t, []string{"a", "b", "c"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@hourly", func() {}), "duplicate names are rejected")
	assert.Error(t, s.AddJob("bad", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("b"))
	assert.Error(t, s.RemoveJob("b"))
	assert.Equal(t, []string{"a", "c"}, s.JobNames())
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", "@every 1s", func() { runs.Add(1) }))
	s.Start()
	defer func() { <-s.Stop().Done() }()

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestDocumentIntegrityJob_Run(t *testing.T) {
	rec := &fakeReconciler{report: &service.ReconcileReport{Checked: 4, Restored: 1, Regenerated: 1, Removed: 1}}
	job := jobs.NewDocumentIntegrityJob(rec, zap.NewNop(), time.Minute)

	report := job.Run()
	require.NotNil(t, report)
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, int32(1), rec.calls.Load())
}

func TestDocumentIntegrityJob_RunFailure(t *testing.T) {
	rec := &fakeReconciler{err: errors.New("database unavailable")}
	job := jobs.NewDocumentIntegrityJob(rec, zap.NewNop(), time.Minute)

	assert.Nil(t, job.Run())
}

func TestRegisterDocumentIntegrityJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	rec := &fakeReconciler{report: &service.ReconcileReport{}}

	require.NoError(t, jobs.RegisterDocumentIntegrityJob(s, rec, zap.NewNop(), "0 */6 * * *", time.Minute, true))
	assert.Equal(t, []string{jobs.DocumentIntegrityJobName}, s.JobNames())
	assert.Eventually(t, func() bool { return rec.calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
}
