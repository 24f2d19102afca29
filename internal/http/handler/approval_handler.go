package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	workflowService *service.WorkflowService
	logger          *zap.Logger
}

func NewApprovalHandler(workflowService *service.WorkflowService, logger *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		workflowService: workflowService,
		logger:          logger,
	}
}

// @Summary Start approval workflow
// @Description Starts manager, CEO and optional client approval of a generated document
// @Tags Approval
// @Accept json
// @Produce json
// @Param request body domain.StartWorkflowRequest true "Document and participants"
// @Success 201 {object} domain.StartWorkflowResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /api/approval/start-workflow [post]
func (h *ApprovalHandler) StartWorkflow(w http.ResponseWriter, r *http.Request) {
	var req domain.StartWorkflowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.workflowService.Start(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "start workflow")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// @Summary Record manager or CEO decision
// @Description A denial is a normal outcome and returns success with the cancelled workflow
// @Tags Approval
// @Accept json
// @Produce json
// @Param request body domain.ApprovalDecisionRequest true "Decision"
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/approval/approve [post]
func (h *ApprovalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req domain.ApprovalDecisionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wf, err := h.workflowService.Decide(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "record decision")
		return
	}

	message := "Approval recorded"
	if req.Action == "deny" {
		message = "Document denied"
	}
	respondOK(w, http.StatusOK, wf, message)
}

// @Summary Submit client feedback
// @Tags Approval
// @Accept json
// @Produce json
// @Param request body domain.ClientFeedbackRequest true "Client decision"
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/client/feedback [post]
func (h *ApprovalHandler) ClientFeedback(w http.ResponseWriter, r *http.Request) {
	var req domain.ClientFeedbackRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wf, err := h.workflowService.SubmitClientFeedback(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "record client feedback")
		return
	}

	respondOK(w, http.StatusOK, wf, "Feedback recorded")
}

// @Summary Resubmit workflow
// @Description Restarts a cancelled or client-rejected workflow from manager approval
// @Tags Approval
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowDTO}
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/approval/resubmit/{id} [post]
func (h *ApprovalHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	wf, err := h.workflowService.Resubmit(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "resubmit workflow")
		return
	}

	respondOK(w, http.StatusOK, wf, "Workflow resubmitted")
}

// @Summary Cancel workflow
// @Tags Approval
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body domain.CancelWorkflowRequest false "Cancellation reason"
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowDTO}
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/approval/cancel/{id} [post]
func (h *ApprovalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	// the body is optional
	var req domain.CancelWorkflowRequest
	if err := decodeOptional(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	wf, err := h.workflowService.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		handleServiceError(w, h.logger, err, "cancel workflow")
		return
	}

	respondOK(w, http.StatusOK, wf, "Workflow cancelled")
}

// @Summary Get workflow
// @Tags Approval
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/approval/workflow/{id} [get]
func (h *ApprovalHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	wf, err := h.workflowService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get workflow")
		return
	}

	respondOK(w, http.StatusOK, wf, "")
}

// @Summary Workflow transition log
// @Tags Approval
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.APIResponse{data=[]domain.WorkflowEventDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/approval/workflow/{id}/events [get]
func (h *ApprovalHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	events, err := h.workflowService.Events(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get workflow events")
		return
	}

	respondOK(w, http.StatusOK, events, "")
}

// @Summary Pending workflows
// @Tags Approval
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Router /api/approval/pending [get]
func (h *ApprovalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.ListPending(r.Context(), page, pageSize)
	h.respondList(w, result, err, "list pending workflows")
}

// @Summary Workflows waiting on a participant
// @Tags Approval
// @Produce json
// @Param role query string true "Participant role" Enums(manager, ceo, client)
// @Param email query string true "Participant email"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/approval/my-queue [get]
func (h *ApprovalHandler) MyQueue(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	q := r.URL.Query()
	result, err := h.workflowService.ListQueue(r.Context(), q.Get("role"), q.Get("email"), page, pageSize)
	h.respondList(w, result, err, "list workflow queue")
}

// @Summary Workflows by status
// @Tags Approval
// @Produce json
// @Param status query string false "Workflow status" Enums(active, completed, cancelled, client_rejected)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/approval/workflow-status [get]
func (h *ApprovalHandler) WorkflowStatus(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.ListByStatus(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	h.respondList(w, result, err, "list workflows by status")
}

// @Summary Finished workflows
// @Tags Approval
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Router /api/approval/history [get]
func (h *ApprovalHandler) History(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.ListHistory(r.Context(), page, pageSize)
	h.respondList(w, result, err, "list workflow history")
}

// @Summary Denied workflows
// @Tags Approval
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Router /api/approval/denied [get]
func (h *ApprovalHandler) Denied(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.ListDenied(r.Context(), page, pageSize)
	h.respondList(w, result, err, "list denied workflows")
}

// @Summary Workflows addressed to a client
// @Tags Approval
// @Produce json
// @Param email query string true "Client email"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/approval/client [get]
func (h *ApprovalHandler) ByClient(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.ListByClient(r.Context(), r.URL.Query().Get("email"), page, pageSize)
	h.respondList(w, result, err, "list client workflows")
}

// @Summary Search workflows
// @Description Matches document, client and company names
// @Tags Approval
// @Produce json
// @Param q query string true "Search term"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.WorkflowDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/approval/search [get]
func (h *ApprovalHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	result, err := h.workflowService.Search(r.Context(), r.URL.Query().Get("q"), page, pageSize)
	h.respondList(w, result, err, "search workflows")
}

// @Summary Workflow statistics
// @Tags Approval
// @Produce json
// @Success 200 {object} domain.APIResponse{data=domain.WorkflowStatsDTO}
// @Router /api/approval/stats [get]
func (h *ApprovalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.workflowService.Stats(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err, "get workflow stats")
		return
	}

	respondOK(w, http.StatusOK, stats, "")
}

// @Summary Verify an email action link
// @Tags Approval
// @Produce json
// @Param token query string true "Signed link token"
// @Success 200 {object} domain.APIResponse{data=domain.ActionLinkDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /api/approval/verify-link [get]
func (h *ApprovalHandler) VerifyLink(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter token is required")
		return
	}

	link, err := h.workflowService.VerifyLink(r.Context(), token)
	if err != nil {
		handleServiceError(w, h.logger, err, "verify link")
		return
	}

	respondOK(w, http.StatusOK, link, "")
}

func (h *ApprovalHandler) respondList(w http.ResponseWriter, result *domain.PaginatedResponse, err error, action string) {
	if err != nil {
		handleServiceError(w, h.logger, err, action)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// decodeOptional decodes a JSON body that may be empty
func decodeOptional(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
