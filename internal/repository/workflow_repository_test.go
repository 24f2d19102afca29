package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestWorkflow(t *testing.T, db *gorm.DB, mutate func(*domain.Workflow)) *domain.Workflow {
	wf := &domain.Workflow{
		DocumentID:     uuid.New(),
		DocumentType:   domain.WorkflowDocumentPDF,
		DocumentName:   "pdf_quote_acme_20240101_120000.pdf",
		ClientName:     "Jane Doe",
		CompanyName:    "Acme Corp",
		ManagerEmail:   "manager@example.com",
		CEOEmail:       "ceo@example.com",
		ClientEmail:    "client@example.com",
		CurrentStage:   domain.StageManager,
		WorkflowStatus: domain.WorkflowStatusActive,
		ManagerStatus:  domain.DecisionPending,
		CEOStatus:      domain.DecisionPending,
		ClientStatus:   domain.DecisionPending,
	}
	if mutate != nil {
		mutate(wf)
	}
	require.NoError(t, db.Create(wf).Error)
	return wf
}

func TestWorkflowRepository_UpdateStage(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWorkflowRepository(db)
	ctx := context.Background()

	wf := createTestWorkflow(t, db, nil)

	t.Run("applies when stage matches", func(t *testing.T) {
		err := repo.UpdateStage(ctx, wf.ID, domain.StageManager, map[string]interface{}{
			"current_stage":  domain.StageCEO,
			"manager_status": domain.DecisionApproved,
		})
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageCEO, found.CurrentStage)
		assert.Equal(t, domain.DecisionApproved, found.ManagerStatus)
	})

	t.Run("rejects stale stage", func(t *testing.T) {
		err := repo.UpdateStage(ctx, wf.ID, domain.StageManager, map[string]interface{}{
			"current_stage": domain.StageCancelled,
		})
		assert.ErrorIs(t, err, repository.ErrStaleWorkflow)

		found, err := repo.GetByID(ctx, wf.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StageCEO, found.CurrentStage)
	})
}

func TestWorkflowRepository_ListQueue(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWorkflowRepository(db)
	ctx := context.Background()

	createTestWorkflow(t, db, nil)
	createTestWorkflow(t, db, func(w *domain.Workflow) { w.CurrentStage = domain.StageCEO })
	createTestWorkflow(t, db, func(w *domain.Workflow) { w.ManagerEmail = "other@example.com" })

	items, total, err := repo.ListQueue(ctx, domain.RoleManager, "Manager@Example.com", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	items, total, err = repo.ListQueue(ctx, domain.RoleCEO, "ceo@example.com", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.StageCEO, items[0].CurrentStage)

	items, total, err = repo.ListQueue(ctx, "auditor", "x@example.com", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestWorkflowRepository_Lists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWorkflowRepository(db)
	ctx := context.Background()

	createTestWorkflow(t, db, nil)
	createTestWorkflow(t, db, func(w *domain.Workflow) {
		w.CurrentStage = domain.StageCancelled
		w.WorkflowStatus = domain.WorkflowStatusCancelled
		w.FinalStatus = domain.FinalStatusDeniedByManager
	})
	createTestWorkflow(t, db, func(w *domain.Workflow) {
		w.CurrentStage = domain.StageCompleted
		w.WorkflowStatus = domain.WorkflowStatusCompleted
		w.FinalStatus = domain.FinalStatusAcceptedByClient
		w.ClientName = "Wayne Enterprises"
		w.CompanyName = "Wayne"
		w.ClientEmail = "bruce@example.com"
	})

	_, total, err := repo.ListPending(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.ListHistory(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	denied, total, err := repo.ListDenied(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.FinalStatusDeniedByManager, denied[0].FinalStatus)

	_, total, err = repo.ListByStatus(ctx, domain.WorkflowStatusCompleted, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.ListByStatus(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	byClient, total, err := repo.ListByClientEmail(ctx, "BRUCE@example.com", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Wayne Enterprises", byClient[0].ClientName)

	found, total, err := repo.Search(ctx, "wayne", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Wayne", found[0].CompanyName)

	_, total, err = repo.Search(ctx, "pdf_quote", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestWorkflowRepository_GetStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWorkflowRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	createTestWorkflow(t, db, nil)
	for _, hours := range []int{2, 4} {
		completedAt := now
		createTestWorkflow(t, db, func(w *domain.Workflow) {
			w.CreatedAt = now.Add(-time.Duration(hours) * time.Hour)
			w.CurrentStage = domain.StageCompleted
			w.WorkflowStatus = domain.WorkflowStatusCompleted
			w.CompletedAt = &completedAt
		})
	}
	createTestWorkflow(t, db, func(w *domain.Workflow) {
		w.CurrentStage = domain.StageClientRejected
		w.WorkflowStatus = domain.WorkflowStatusClientRejected
	})

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	stats, err := repo.GetStats(ctx, startOfDay.Add(-24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, int64(2), stats.CompletedToday)
	assert.Equal(t, int64(1), stats.ClientRejected)
	assert.Equal(t, int64(0), stats.Cancelled)
	assert.InDelta(t, (3 * time.Hour).Seconds(), stats.AvgApproval.Seconds(), 1)
}

func TestWorkflowEventRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewWorkflowEventRepository(db)
	ctx := context.Background()

	workflowID := uuid.New()
	base := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.WorkflowEvent{WorkflowID: workflowID, Event: domain.EventWorkflowStarted, ToStage: domain.StageManager, OccurredAt: base}))
	require.NoError(t, repo.Create(ctx, &domain.WorkflowEvent{WorkflowID: workflowID, Event: domain.EventManagerApproved, FromStage: domain.StageManager, ToStage: domain.StageCEO, OccurredAt: base.Add(time.Second)}))

	events, err := repo.ListByWorkflow(ctx, workflowID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventWorkflowStarted, events[0].Event)
	assert.Equal(t, domain.EventManagerApproved, events[1].Event)
	assert.Equal(t, domain.StageCEO, events[1].ToStage)
}

func TestSignatureRepository_UniquePerRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSignatureRepository(db)
	ctx := context.Background()

	workflowID := uuid.New()
	sig := func(role domain.SignatureRole) *domain.Signature {
		return &domain.Signature{
			WorkflowID:    workflowID,
			Role:          role,
			SignerName:    "Signer",
			SignerEmail:   "signer@example.com",
			SignatureType: domain.SignatureTypeTyped,
			SignatureData: "Signer",
			SignedAt:      time.Now().UTC(),
		}
	}

	require.NoError(t, repo.Create(ctx, sig(domain.SignatureRoleClient)))
	require.NoError(t, repo.Create(ctx, sig(domain.SignatureRoleCEO)))
	assert.Error(t, repo.Create(ctx, sig(domain.SignatureRoleClient)))

	sigs, err := repo.ListByWorkflow(ctx, workflowID)
	require.NoError(t, err)
	assert.Len(t, sigs, 2)

	_, err = repo.GetByWorkflowAndRole(ctx, workflowID, domain.SignatureRoleCEO)
	assert.NoError(t, err)

	require.NoError(t, repo.DeleteByWorkflow(ctx, workflowID))
	_, err = repo.GetByWorkflowAndRole(ctx, workflowID, domain.SignatureRoleCEO)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
