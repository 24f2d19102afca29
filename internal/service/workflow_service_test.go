package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowService_Start(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("starts at manager stage and mails the manager", func(t *testing.T) {
		f.mailer.reset()
		id := f.startWorkflow(t, clientEmail)

		wf, err := f.workflows.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StageManager, wf.CurrentStage)
		assert.Equal(t, domain.WorkflowStatusActive, wf.WorkflowStatus)
		assert.Equal(t, domain.DecisionPending, wf.ManagerStatus)
		assert.Equal(t, domain.DecisionPending, wf.CEOStatus)
		assert.Equal(t, domain.DecisionPending, wf.ClientStatus)
		assert.Equal(t, "Doe Industries", wf.CompanyName)
		assert.Equal(t, 1600.0, wf.TotalAmount)

		toManager := f.mailer.sentTo(managerEmail)
		require.Len(t, toManager, 1)
		require.Len(t, toManager[0].Attachments, 1)
		assert.Equal(t, "application/pdf", toManager[0].Attachments[0].ContentType)
		assert.Contains(t, toManager[0].HTML, "token=")

		events, err := f.workflows.Events(ctx, id)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventWorkflowStarted, events[0].Event)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := f.workflows.Start(ctx, &domain.StartWorkflowRequest{
			DocumentID:   uuid.New().String(),
			DocumentType: "PDF",
			ManagerEmail: managerEmail,
			CEOEmail:     ceoEmail,
		})
		assert.ErrorIs(t, err, service.ErrDocumentNotFound)
	})

	t.Run("invalid document type", func(t *testing.T) {
		doc := f.createAgreement(t)
		_, err := f.workflows.Start(ctx, &domain.StartWorkflowRequest{
			DocumentID:   doc.Document.ID.String(),
			DocumentType: "Invoice",
			ManagerEmail: managerEmail,
			CEOEmail:     ceoEmail,
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("mail failure does not fail the start", func(t *testing.T) {
		f.mailer.fail = errors.New("smtp down")
		defer func() { f.mailer.fail = nil }()

		id := f.startWorkflow(t, clientEmail)
		wf, err := f.workflows.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StageManager, wf.CurrentStage)
	})
}

func TestWorkflowService_FullApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	wf := f.decide(t, id, "manager", "approve")
	assert.Equal(t, domain.StageCEO, wf.CurrentStage)
	assert.Equal(t, domain.DecisionApproved, wf.ManagerStatus)
	assert.Equal(t, domain.DecisionPending, wf.CEOStatus)
	assert.NotNil(t, wf.ManagerDecidedAt)

	toCEO := f.mailer.sentTo(ceoEmail)
	require.Len(t, toCEO, 1)
	assert.Contains(t, toCEO[0].HTML, "manager approve")
	require.Len(t, toCEO[0].Attachments, 1)

	wf = f.decide(t, id, "ceo", "approve")
	assert.Equal(t, domain.StageClientFeedback, wf.CurrentStage)
	assert.Equal(t, domain.WorkflowStatusActive, wf.WorkflowStatus)

	toClient := f.mailer.sentTo(clientEmail)
	require.Len(t, toClient, 1)
	require.Len(t, toClient[0].Attachments, 1)

	wf, err := f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
		WorkflowID:  id.String(),
		ClientEmail: "Client@Example.com",
		Decision:    "accepted",
		Comments:    "Looks good",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StageCompleted, wf.CurrentStage)
	assert.Equal(t, domain.WorkflowStatusCompleted, wf.WorkflowStatus)
	assert.Equal(t, domain.FinalStatusAcceptedByClient, wf.FinalStatus)
	assert.NotNil(t, wf.CompletedAt)

	// client feedback goes to manager and ceo
	assert.Len(t, f.mailer.sentTo(managerEmail), 2)
	assert.Len(t, f.mailer.sentTo(ceoEmail), 2)
	assert.Len(t, f.mailer.sentTo(clientEmail), 1)

	_, err = f.certificates.GetByWorkflow(ctx, id)
	assert.ErrorIs(t, err, service.ErrCertificateNotFound)

	events, err := f.workflows.Events(ctx, id)
	require.NoError(t, err)
	kinds := make([]domain.WorkflowEventType, len(events))
	for i, e := range events {
		kinds[i] = e.Event
	}
	assert.Equal(t, []domain.WorkflowEventType{
		domain.EventWorkflowStarted,
		domain.EventManagerApproved,
		domain.EventCEOApproved,
		domain.EventClientFeedback,
	}, kinds)
}

func TestWorkflowService_CEOApprovalWithoutClientCompletes(t *testing.T) {
	f := newFixture(t)
	id := f.startWorkflow(t, "")

	f.decide(t, id, "manager", "approve")
	wf := f.decide(t, id, "ceo", "approve")

	assert.Equal(t, domain.StageCompleted, wf.CurrentStage)
	assert.Equal(t, domain.WorkflowStatusCompleted, wf.WorkflowStatus)
	assert.Equal(t, domain.FinalStatusApproved, wf.FinalStatus)
}

func TestWorkflowService_ManagerDenial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	wf, err := f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{
		WorkflowID: id.String(),
		Role:       "manager",
		Action:     "deny",
		Comments:   "missing terms",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StageCancelled, wf.CurrentStage)
	assert.Equal(t, domain.WorkflowStatusCancelled, wf.WorkflowStatus)
	assert.Equal(t, domain.FinalStatusDeniedByManager, wf.FinalStatus)
	assert.Equal(t, "missing terms", wf.ManagerComments)
	assert.Equal(t, "manager", wf.DeniedByRole)
	assert.Equal(t, managerEmail, wf.DeniedByEmail)

	assert.Empty(t, f.mailer.sentTo(ceoEmail))
	assert.Len(t, f.mailer.sentTo(initiatorEmail), 1)

	t.Run("no further decisions until resubmit", func(t *testing.T) {
		_, err := f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{WorkflowID: id.String(), Role: "ceo", Action: "approve"})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)

		_, err = f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{WorkflowID: id.String(), Role: "manager", Action: "approve"})
		assert.ErrorIs(t, err, service.ErrAlreadyDecided)
	})
}

func TestWorkflowService_CEODenial(t *testing.T) {
	f := newFixture(t)
	id := f.startWorkflow(t, clientEmail)

	f.decide(t, id, "manager", "approve")
	wf := f.decide(t, id, "ceo", "deny")

	assert.Equal(t, domain.StageCancelled, wf.CurrentStage)
	assert.Equal(t, domain.FinalStatusDeniedByCEO, wf.FinalStatus)
	assert.Equal(t, "ceo", wf.DeniedByRole)
	assert.Empty(t, f.mailer.sentTo(clientEmail))
}

func TestWorkflowService_Resubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	t.Run("rejects an active workflow", func(t *testing.T) {
		_, err := f.workflows.Resubmit(ctx, id)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	f.decide(t, id, "manager", "deny")
	f.mailer.reset()

	wf, err := f.workflows.Resubmit(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, domain.StageManager, wf.CurrentStage)
	assert.Equal(t, domain.WorkflowStatusActive, wf.WorkflowStatus)
	assert.Equal(t, domain.DecisionPending, wf.ManagerStatus)
	assert.Equal(t, domain.DecisionPending, wf.CEOStatus)
	assert.Equal(t, domain.DecisionPending, wf.ClientStatus)
	assert.Empty(t, wf.FinalStatus)
	assert.Empty(t, wf.ManagerComments)
	assert.Nil(t, wf.ManagerDecidedAt)
	assert.Equal(t, 1, wf.ResubmitCount)

	assert.Len(t, f.mailer.sentTo(managerEmail), 1)
	assert.Len(t, f.mailer.sentTo(ceoEmail), 1)

	// the restored workflow accepts decisions again
	approved := f.decide(t, id, "manager", "approve")
	assert.Equal(t, domain.StageCEO, approved.CurrentStage)

	f.decide(t, id, "ceo", "deny")
	wf, err = f.workflows.Resubmit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, wf.ResubmitCount)
}

func TestWorkflowService_RepeatedDecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	f.decide(t, id, "manager", "approve")
	before, err := f.workflows.GetByID(ctx, id)
	require.NoError(t, err)

	_, err = f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{WorkflowID: id.String(), Role: "manager", Action: "deny"})
	assert.ErrorIs(t, err, service.ErrAlreadyDecided)

	after, err := f.workflows.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWorkflowService_DecisionOutOfTurn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	_, err := f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{WorkflowID: id.String(), Role: "ceo", Action: "approve"})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
		WorkflowID: id.String(), ClientEmail: clientEmail, Decision: "accepted",
	})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.workflows.Decide(ctx, &domain.ApprovalDecisionRequest{WorkflowID: uuid.New().String(), Role: "manager", Action: "approve"})
	assert.ErrorIs(t, err, service.ErrWorkflowNotFound)
}

func TestWorkflowService_ClientFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	atClient := func(t *testing.T) uuid.UUID {
		id := f.startWorkflow(t, clientEmail)
		f.decide(t, id, "manager", "approve")
		f.decide(t, id, "ceo", "approve")
		return id
	}

	t.Run("wrong email", func(t *testing.T) {
		id := atClient(t)
		_, err := f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
			WorkflowID: id.String(), ClientEmail: "someone@else.com", Decision: "accepted",
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("needs changes keeps the stage open", func(t *testing.T) {
		id := atClient(t)
		wf, err := f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
			WorkflowID: id.String(), ClientEmail: clientEmail, Decision: "needs_changes", Comments: "fix section 2",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StageClientFeedback, wf.CurrentStage)
		assert.Equal(t, domain.DecisionNeedsChanges, wf.ClientStatus)

		wf, err = f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
			WorkflowID: id.String(), ClientEmail: clientEmail, Decision: "accepted",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StageCompleted, wf.CurrentStage)
	})

	t.Run("rejection is terminal", func(t *testing.T) {
		id := atClient(t)
		wf, err := f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
			WorkflowID: id.String(), ClientEmail: clientEmail, Decision: "rejected",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StageClientRejected, wf.CurrentStage)
		assert.Equal(t, domain.WorkflowStatusClientRejected, wf.WorkflowStatus)
		assert.Equal(t, domain.FinalStatusRejectedByClient, wf.FinalStatus)

		_, err = f.workflows.SubmitClientFeedback(ctx, &domain.ClientFeedbackRequest{
			WorkflowID: id.String(), ClientEmail: clientEmail, Decision: "accepted",
		})
		assert.ErrorIs(t, err, service.ErrAlreadyDecided)

		resubmitted, err := f.workflows.Resubmit(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.StageManager, resubmitted.CurrentStage)
	})
}

func TestWorkflowService_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)
	f.mailer.reset()

	wf, err := f.workflows.Cancel(ctx, id, "customer went quiet")
	require.NoError(t, err)
	assert.Equal(t, domain.StageCancelled, wf.CurrentStage)
	assert.Equal(t, domain.FinalStatusCancelled, wf.FinalStatus)
	assert.Equal(t, "customer went quiet", wf.CancelReason)
	assert.Len(t, f.mailer.sent(), 2)

	_, err = f.workflows.Cancel(ctx, id, "again")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestWorkflowService_Queries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending := f.startWorkflow(t, clientEmail)
	atCEO := f.startWorkflow(t, clientEmail)
	f.decide(t, atCEO, "manager", "approve")
	denied := f.startWorkflow(t, clientEmail)
	f.decide(t, denied, "manager", "deny")
	done := f.startWorkflow(t, "")
	f.decide(t, done, "manager", "approve")
	f.decide(t, done, "ceo", "approve")

	t.Run("pending", func(t *testing.T) {
		resp, err := f.workflows.ListPending(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("queue by role", func(t *testing.T) {
		resp, err := f.workflows.ListQueue(ctx, "manager", "MANAGER@example.com", 1, 20)
		require.NoError(t, err)
		require.Equal(t, int64(1), resp.Total)
		assert.Equal(t, pending, resp.Data.([]domain.WorkflowDTO)[0].ID)

		resp, err = f.workflows.ListQueue(ctx, "ceo", ceoEmail, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)

		_, err = f.workflows.ListQueue(ctx, "cfo", ceoEmail, 1, 20)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("denied and history", func(t *testing.T) {
		resp, err := f.workflows.ListDenied(ctx, 1, 20)
		require.NoError(t, err)
		require.Equal(t, int64(1), resp.Total)
		assert.Equal(t, denied, resp.Data.([]domain.WorkflowDTO)[0].ID)

		resp, err = f.workflows.ListHistory(ctx, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Total)
	})

	t.Run("by status", func(t *testing.T) {
		resp, err := f.workflows.ListByStatus(ctx, "completed", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)

		_, err = f.workflows.ListByStatus(ctx, "archived", 1, 20)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("client and search", func(t *testing.T) {
		resp, err := f.workflows.ListByClient(ctx, clientEmail, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)

		resp, err = f.workflows.Search(ctx, "doe", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.Total)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := f.workflows.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Pending)
		assert.Equal(t, int64(1), stats.CompletedToday)
		assert.Equal(t, int64(1), stats.Cancelled)
		assert.Equal(t, int64(4), stats.Total)
		assert.Regexp(t, regexp.MustCompile(`^\d+\.\dh$`), stats.AvgApprovalTime)
	})
}

func TestWorkflowService_VerifyLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.startWorkflow(t, clientEmail)

	token, err := f.links.Sign(id, domain.RoleManager, managerEmail)
	require.NoError(t, err)

	link, err := f.workflows.VerifyLink(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, link.WorkflowID)
	assert.Equal(t, "manager", link.Role)
	assert.Equal(t, managerEmail, link.Email)
	assert.NotEmpty(t, link.ExpiresAt)

	_, err = f.workflows.VerifyLink(ctx, token+"x")
	assert.ErrorIs(t, err, service.ErrInvalidLink)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, notify.LinkClaims{
		WorkflowID: "not-a-uuid",
		Role:       "manager",
		Email:      managerEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(linkSecret))
	require.NoError(t, err)

	_, err = f.workflows.VerifyLink(ctx, forged)
	assert.ErrorIs(t, err, service.ErrInvalidLink)
}
