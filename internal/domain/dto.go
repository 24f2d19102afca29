package domain

import (
	"github.com/google/uuid"
)

// Pagination response wrapper
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// ============================================================================
// Quote DTOs
// ============================================================================

// CreateQuoteRequest is the quote calculator form
type CreateQuoteRequest struct {
	ClientName    string  `json:"clientName" validate:"max=200"`
	PhoneNumber   string  `json:"phoneNumber" validate:"max=50"`
	Email         string  `json:"email" validate:"omitempty,email"`
	CompanyName   string  `json:"companyName" validate:"max=200"`
	ServiceType   string  `json:"serviceType" validate:"max=100"`
	Requirements  string  `json:"requirements" validate:"max=5000"`
	Users         int     `json:"users" validate:"gte=1"`
	InstanceType  string  `json:"instanceType"`
	Instances     int     `json:"instances" validate:"gte=1"`
	Duration      int     `json:"duration" validate:"gte=1"`
	MigrationType string  `json:"migrationType"`
	DataSize      float64 `json:"dataSize" validate:"gte=0"`
}

// ImportHubSpotQuoteRequest stores a quote sourced from a HubSpot deal
type ImportHubSpotQuoteRequest struct {
	DealID         string `json:"deal_id" validate:"required,max=100"`
	HubSpotQuoteID string `json:"hubspot_quote_id" validate:"max=100"`
	CreateQuoteRequest
}

// UpdateQuoteStatusRequest changes the commercial status of a quote
type UpdateQuoteStatusRequest struct {
	QuoteID string `json:"quote_id" validate:"required,uuid"`
	Status  string `json:"status" validate:"required,oneof=draft sent accepted rejected"`
	Notes   string `json:"notes" validate:"max=2000"`
}

// SendQuoteEmailRequest emails a stored quote to a recipient
type SendQuoteEmailRequest struct {
	QuoteID        string `json:"quote_id" validate:"required,uuid"`
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	RecipientName  string `json:"recipient_name" validate:"required,max=200"`
	CompanyName    string `json:"company_name" validate:"required,max=200"`
}

// QuoteDTO is the API representation of a quote
type QuoteDTO struct {
	ID            uuid.UUID          `json:"id"`
	Source        string             `json:"source"`
	Client        ClientProfile      `json:"client"`
	Configuration QuoteConfiguration `json:"configuration"`
	Quote         QuotePlans         `json:"quote"`
	Status        QuoteStatus        `json:"status"`
	EmailSentAt   *string            `json:"emailSentAt,omitempty"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

// CreateQuoteResponse mirrors the calculator response shape
type CreateQuoteResponse struct {
	Success bool       `json:"success"`
	Quote   QuotePlans `json:"quote"`
	QuoteID string     `json:"quote_id"`
}

// QuoteStatusLogDTO is one entry of a quote status history
type QuoteStatusLogDTO struct {
	Status    QuoteStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	ChangedBy string      `json:"changedBy"`
	ChangedAt string      `json:"changedAt"`
}

// ============================================================================
// Document DTOs
// ============================================================================

// PDFClientInput is the client block of an ad-hoc PDF request
type PDFClientInput struct {
	Name        string `json:"name" validate:"max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Company     string `json:"company" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=50"`
	ServiceType string `json:"serviceType" validate:"max=100"`
}

// PDFConfigurationInput is the configuration block of an ad-hoc PDF request
type PDFConfigurationInput struct {
	Users         int     `json:"users" validate:"gte=1"`
	InstanceType  string  `json:"instanceType"`
	Instances     int     `json:"instances" validate:"gte=1"`
	Duration      int     `json:"duration" validate:"gte=1"`
	MigrationType string  `json:"migrationType"`
	DataSize      float64 `json:"dataSize" validate:"gte=0"`
}

// GeneratePDFRequest renders a quote PDF from a stored quote or an inline configuration
type GeneratePDFRequest struct {
	QuoteID       string                 `json:"quote_id,omitempty"`
	Client        PDFClientInput         `json:"client"`
	Configuration *PDFConfigurationInput `json:"configuration,omitempty"`
	// Quote is ignored; prices are recomputed from Configuration
	Quote *QuotePlans `json:"quote,omitempty"`
}

// GenerateAgreementRequest builds an agreement from a quote identifier
type GenerateAgreementRequest struct {
	QuoteID    string `json:"quote_id" validate:"required,max=255"`
	TemplateID string `json:"template_id,omitempty" validate:"omitempty,uuid"`
	Plan       string `json:"plan,omitempty" validate:"omitempty,oneof=basic standard advanced"`
}

// AgreementLineItem is one row of the agreement pricing table
type AgreementLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// AgreementDTO is the structured agreement returned by generate-from-quote
type AgreementDTO struct {
	QuoteID        uuid.UUID           `json:"quote_id"`
	TemplateID     *uuid.UUID          `json:"template_id,omitempty"`
	Plan           PlanName            `json:"plan"`
	Title          string              `json:"title"`
	Client         ClientProfile       `json:"client"`
	Configuration  QuoteConfiguration  `json:"configuration"`
	LineItems      []AgreementLineItem `json:"line_items"`
	Subtotal       float64             `json:"subtotal"`
	Total          float64             `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
	TemplateData   map[string]string   `json:"template_data"`
	HTML           string              `json:"html,omitempty"`
}

// DocumentDTO is the API representation of a generated document
type DocumentDTO struct {
	ID          uuid.UUID    `json:"id"`
	QuoteID     *uuid.UUID   `json:"quote_id,omitempty"`
	TemplateID  *uuid.UUID   `json:"template_id,omitempty"`
	Kind        DocumentKind `json:"kind"`
	Filename    string       `json:"filename"`
	FilePath    string       `json:"file_path"`
	ContentType string       `json:"content_type"`
	ClientName  string       `json:"client_name"`
	CompanyName string       `json:"company_name"`
	ServiceType string       `json:"service_type"`
	SizeBytes   int64        `json:"size_bytes"`
	HasPayload  bool         `json:"has_payload"`
	CreatedAt   string       `json:"created_at"`
}

// CreateTemplateRequest creates an HTML or builder template
type CreateTemplateRequest struct {
	Name        string         `json:"name" validate:"required,max=200"`
	Description string         `json:"description" validate:"max=2000"`
	Kind        string         `json:"kind" validate:"required,oneof=html builder"`
	Content     string         `json:"content"`
	Blocks      []BuilderBlock `json:"blocks"`
}

// TemplateDTO is the API representation of a template
type TemplateDTO struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Kind             TemplateKind   `json:"kind"`
	Content          string         `json:"content,omitempty"`
	Blocks           []BuilderBlock `json:"blocks,omitempty"`
	OriginalFilename string         `json:"original_filename,omitempty"`
	SizeBytes        int            `json:"size_bytes,omitempty"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

// ============================================================================
// Workflow DTOs
// ============================================================================

// StartWorkflowRequest starts the approval of a document
type StartWorkflowRequest struct {
	DocumentID     string `json:"document_id" validate:"required,uuid"`
	DocumentType   string `json:"document_type" validate:"required,oneof=PDF Agreement"`
	ManagerEmail   string `json:"manager_email" validate:"required,email"`
	CEOEmail       string `json:"ceo_email" validate:"required,email"`
	ClientEmail    string `json:"client_email" validate:"omitempty,email"`
	InitiatorEmail string `json:"initiator_email" validate:"omitempty,email"`
}

// ApprovalDecisionRequest is a manager or CEO decision
type ApprovalDecisionRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required,uuid"`
	Role       string `json:"role" validate:"required,oneof=manager ceo"`
	Action     string `json:"action" validate:"required,oneof=approve deny"`
	Comments   string `json:"comments" validate:"max=5000"`
}

// ClientFeedbackRequest is the client's response to the delivered document
type ClientFeedbackRequest struct {
	WorkflowID  string `json:"workflow_id" validate:"required,uuid"`
	ClientEmail string `json:"client_email" validate:"required,email"`
	Decision    string `json:"decision" validate:"required,oneof=accepted rejected needs_changes"`
	Comments    string `json:"comments" validate:"max=5000"`
}

// CancelWorkflowRequest cancels an active workflow
type CancelWorkflowRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

// StartWorkflowResponse returns the new workflow id
type StartWorkflowResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	WorkflowID uuid.UUID `json:"workflow_id"`
}

// WorkflowDTO is the API representation of a workflow
type WorkflowDTO struct {
	ID               uuid.UUID            `json:"workflow_id"`
	DocumentID       uuid.UUID            `json:"document_id"`
	DocumentType     WorkflowDocumentType `json:"document_type"`
	DocumentName     string               `json:"document_name"`
	QuoteID          *uuid.UUID           `json:"quote_id,omitempty"`
	ClientName       string               `json:"client_name"`
	CompanyName      string               `json:"company_name"`
	ServiceType      string               `json:"service_type"`
	TotalAmount      float64              `json:"total_amount"`
	ManagerEmail     string               `json:"manager_email"`
	CEOEmail         string               `json:"ceo_email"`
	ClientEmail      string               `json:"client_email,omitempty"`
	InitiatorEmail   string               `json:"initiator_email,omitempty"`
	CurrentStage     WorkflowStage        `json:"current_stage"`
	WorkflowStatus   WorkflowStatus       `json:"workflow_status"`
	FinalStatus      string               `json:"final_status,omitempty"`
	ManagerStatus    DecisionStatus       `json:"manager_status"`
	ManagerComments  string               `json:"manager_comments,omitempty"`
	ManagerDecidedAt *string              `json:"manager_approval_date,omitempty"`
	CEOStatus        DecisionStatus       `json:"ceo_status"`
	CEOComments      string               `json:"ceo_comments,omitempty"`
	CEODecidedAt     *string              `json:"ceo_approval_date,omitempty"`
	ClientStatus     DecisionStatus       `json:"client_status"`
	ClientComments   string               `json:"client_comments,omitempty"`
	ClientDecidedAt  *string              `json:"client_feedback_date,omitempty"`
	DeniedByRole     string               `json:"denied_by_role,omitempty"`
	DeniedByEmail    string               `json:"denied_by_email,omitempty"`
	ResubmitCount    int                  `json:"resubmit_count"`
	CancelReason     string               `json:"cancel_reason,omitempty"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
	CompletedAt      *string              `json:"completed_at,omitempty"`
}

// WorkflowEventDTO is one entry of a workflow transition log
type WorkflowEventDTO struct {
	Event      WorkflowEventType `json:"event"`
	FromStage  WorkflowStage     `json:"from_stage,omitempty"`
	ToStage    WorkflowStage     `json:"to_stage,omitempty"`
	ActorRole  string            `json:"actor_role,omitempty"`
	ActorEmail string            `json:"actor_email,omitempty"`
	Comments   string            `json:"comments,omitempty"`
	OccurredAt string            `json:"occurred_at"`
}

// WorkflowStatsDTO aggregates workflow counters for the dashboard
type WorkflowStatsDTO struct {
	Pending         int64  `json:"pending"`
	CompletedToday  int64  `json:"completed_today"`
	Completed       int64  `json:"completed"`
	Cancelled       int64  `json:"cancelled"`
	ClientRejected  int64  `json:"client_rejected"`
	Total           int64  `json:"total"`
	AvgApprovalTime string `json:"avg_approval_time"`
}

// ActionLinkDTO is the decoded content of a signed email action link
type ActionLinkDTO struct {
	WorkflowID uuid.UUID `json:"workflow_id"`
	Role       string    `json:"role"`
	Email      string    `json:"email"`
	ExpiresAt  string    `json:"expires_at"`
}

// ============================================================================
// Signature DTOs
// ============================================================================

// SignaturePayload is the signature image or typed name
type SignaturePayload struct {
	Type string `json:"type" validate:"required,oneof=typed drawn"`
	Data string `json:"data" validate:"required"`
}

// SubmitSignatureRequest signs a workflow document as client or CEO
type SubmitSignatureRequest struct {
	Signature SignaturePayload `json:"signature" validate:"required"`
	Name      string           `json:"name" validate:"required,max=200"`
	Email     string           `json:"email" validate:"required,email"`
	Title     string           `json:"title" validate:"max=200"`
	Date      string           `json:"date" validate:"max=50"`
}

// SignatureDTO is the API representation of a signature
type SignatureDTO struct {
	ID          uuid.UUID     `json:"id"`
	WorkflowID  uuid.UUID     `json:"workflow_id"`
	Role        SignatureRole `json:"role"`
	SignerName  string        `json:"name"`
	SignerEmail string        `json:"email"`
	SignerTitle string        `json:"title,omitempty"`
	SignedDate  string        `json:"date,omitempty"`
	Type        SignatureType `json:"type"`
	SignedAt    string        `json:"signed_at"`
}

// SubmitSignatureResponse reports the stored signature and whether a certificate was issued
type SubmitSignatureResponse struct {
	Success           bool            `json:"success"`
	Message           string          `json:"message"`
	Signature         SignatureDTO    `json:"signature"`
	CertificateIssued bool            `json:"certificate_issued"`
	Certificate       *CertificateDTO `json:"certificate,omitempty"`
}

// CertificateDTO is the API representation of a signature certificate
type CertificateDTO struct {
	ID              uuid.UUID           `json:"id"`
	WorkflowID      uuid.UUID           `json:"workflow_id"`
	DocumentID      *uuid.UUID          `json:"document_id,omitempty"`
	AgreementID     uuid.UUID           `json:"agreement_id"`
	ReferenceNumber string              `json:"reference_number"`
	DocumentTitle   string              `json:"document_title"`
	CompanyName     string              `json:"company_name"`
	ClientName      string              `json:"client_name"`
	ServiceType     string              `json:"service_type"`
	TotalAmount     float64             `json:"total_amount"`
	Signers         []CertificateSigner `json:"signers"`
	CompletionDate  string              `json:"completion_date"`
	FilePath        string              `json:"file_path,omitempty"`
}
