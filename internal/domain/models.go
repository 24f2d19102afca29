package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when the caller did not set one.
// Postgres also defaults the column to gen_random_uuid() in migrations.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ============================================================================
// Quotes
// ============================================================================

// QuoteStatus represents the commercial status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// IsValid checks if the quote status is a known value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// InstanceType is the size class of a migration instance
type InstanceType string

const (
	InstanceTypeSmall      InstanceType = "small"
	InstanceTypeStandard   InstanceType = "standard"
	InstanceTypeLarge      InstanceType = "large"
	InstanceTypeExtraLarge InstanceType = "extra_large"
)

// MigrationType is the kind of content being migrated
type MigrationType string

const (
	MigrationTypeContent   MigrationType = "content"
	MigrationTypeEmail     MigrationType = "email"
	MigrationTypeMessaging MigrationType = "messaging"
)

// PlanName identifies one of the three price points of a quote
type PlanName string

const (
	PlanBasic    PlanName = "basic"
	PlanStandard PlanName = "standard"
	PlanAdvanced PlanName = "advanced"
)

// AllPlans lists plans in ascending price order
var AllPlans = []PlanName{PlanBasic, PlanStandard, PlanAdvanced}

// IsValid checks if the plan name is a known value
func (p PlanName) IsValid() bool {
	return p == PlanBasic || p == PlanStandard || p == PlanAdvanced
}

// ClientProfile is the customer captured on a quote
type ClientProfile struct {
	Name         string `gorm:"type:varchar(200)" json:"name"`
	Company      string `gorm:"type:varchar(200)" json:"company"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	ServiceType  string `gorm:"type:varchar(100)" json:"serviceType"`
	Requirements string `gorm:"type:text" json:"requirements"`
}

// QuoteConfiguration is the sizing vector the pricer consumes
type QuoteConfiguration struct {
	Users          int           `gorm:"not null" json:"users"`
	InstanceType   InstanceType  `gorm:"type:varchar(20);not null" json:"instanceType"`
	Instances      int           `gorm:"not null" json:"instances"`
	DurationMonths int           `gorm:"not null" json:"duration"`
	MigrationType  MigrationType `gorm:"type:varchar(20);not null" json:"migrationType"`
	DataSizeGB     float64       `gorm:"not null;default:0" json:"dataSize"`
}

// PlanCost is the price breakdown of a single plan
type PlanCost struct {
	PerUserCost   float64 `json:"perUserCost"`
	PerGBCost     float64 `json:"perGBCost"`
	TotalUserCost float64 `json:"totalUserCost"`
	DataCost      float64 `json:"dataCost"`
	MigrationCost float64 `json:"migrationCost"`
	InstanceCost  float64 `json:"instanceCost"`
	TotalCost     float64 `json:"totalCost"`
}

// QuotePlans holds the three plan breakdowns of a quote
type QuotePlans struct {
	Basic    PlanCost `json:"basic"`
	Standard PlanCost `json:"standard"`
	Advanced PlanCost `json:"advanced"`
}

// Plan returns the breakdown for the named plan
func (p QuotePlans) Plan(name PlanName) PlanCost {
	switch name {
	case PlanStandard:
		return p.Standard
	case PlanAdvanced:
		return p.Advanced
	default:
		return p.Basic
	}
}

// Quote is a manually captured, priced quote
type Quote struct {
	BaseModel
	Client        ClientProfile                  `gorm:"embedded;embeddedPrefix:client_"`
	Configuration QuoteConfiguration             `gorm:"embedded;embeddedPrefix:config_"`
	Plans         datatypes.JSONType[QuotePlans] `gorm:"not null"`
	Status        QuoteStatus                    `gorm:"type:varchar(20);not null;default:'draft';index"`
	EmailSentAt   *time.Time
}

// HubSpotQuote is a quote synchronized from a HubSpot deal
type HubSpotQuote struct {
	BaseModel
	HubSpotDealID  string                         `gorm:"type:varchar(100);index;column:hubspot_deal_id"`
	HubSpotQuoteID string                         `gorm:"type:varchar(100);column:hubspot_quote_id"`
	Client         ClientProfile                  `gorm:"embedded;embeddedPrefix:client_"`
	Configuration  QuoteConfiguration             `gorm:"embedded;embeddedPrefix:config_"`
	Plans          datatypes.JSONType[QuotePlans] `gorm:"not null"`
	Status         QuoteStatus                    `gorm:"type:varchar(20);not null;default:'draft'"`
}

// TableName overrides the default pluralization of HubSpotQuote
func (HubSpotQuote) TableName() string {
	return "hubspot_quotes"
}

// AsQuote projects a HubSpot quote onto the common quote shape used for rendering
func (h *HubSpotQuote) AsQuote() *Quote {
	return &Quote{
		BaseModel:     h.BaseModel,
		Client:        h.Client,
		Configuration: h.Configuration,
		Plans:         h.Plans,
		Status:        h.Status,
	}
}

// QuoteStatusLog records every status change and email send of a quote
type QuoteStatusLog struct {
	BaseModel
	QuoteID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    QuoteStatus `gorm:"type:varchar(20);not null"`
	Notes     string      `gorm:"type:text"`
	ChangedBy string      `gorm:"type:varchar(255);not null;default:'system'"`
}

// ============================================================================
// Documents and templates
// ============================================================================

// DocumentKind classifies generated artifacts
type DocumentKind string

const (
	DocumentKindQuotePDF    DocumentKind = "pdf_quote"
	DocumentKindAgreement   DocumentKind = "agreement"
	DocumentKindCertificate DocumentKind = "certificate"
)

// IsValid checks if the document kind is a known value
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindQuotePDF || k == DocumentKindAgreement || k == DocumentKindCertificate
}

// Document is the metadata of a generated artifact stored in the documents directory
type Document struct {
	BaseModel
	QuoteID     *uuid.UUID   `gorm:"type:uuid;index"`
	TemplateID  *uuid.UUID   `gorm:"type:uuid"`
	Kind        DocumentKind `gorm:"type:varchar(20);not null;index"`
	Filename    string       `gorm:"type:varchar(255);not null"`
	FilePath    string       `gorm:"type:varchar(500);not null"`
	ContentType string       `gorm:"type:varchar(100);not null"`
	ClientName  string       `gorm:"type:varchar(200)"`
	CompanyName string       `gorm:"type:varchar(200)"`
	ServiceType string       `gorm:"type:varchar(100)"`
	SizeBytes   int64        `gorm:"not null;default:0"`
	// Payload is the base64 encoded artifact used to restore a missing file
	Payload string `gorm:"type:text"`
}

// TemplateKind classifies agreement templates
type TemplateKind string

const (
	TemplateKindHTML    TemplateKind = "html"
	TemplateKindDOCX    TemplateKind = "docx"
	TemplateKindBuilder TemplateKind = "builder"
)

// BuilderBlockType is the type of a template builder block
type BuilderBlockType string

const (
	BuilderBlockText    BuilderBlockType = "text"
	BuilderBlockImage   BuilderBlockType = "image"
	BuilderBlockTable   BuilderBlockType = "table"
	BuilderBlockTOC     BuilderBlockType = "toc"
	BuilderBlockGeneric BuilderBlockType = "generic"
)

// BuilderBlock is one ordered element of a builder template
type BuilderBlock struct {
	Type    BuilderBlockType `json:"type"`
	Title   string           `json:"title,omitempty"`
	Content string           `json:"content,omitempty"`
	Src     string           `json:"src,omitempty"`
	Alt     string           `json:"alt,omitempty"`
	Headers []string         `json:"headers,omitempty"`
	Rows    [][]string       `json:"rows,omitempty"`
}

// Template is a stored agreement template
type Template struct {
	BaseModel
	Name             string       `gorm:"type:varchar(200);not null"`
	Description      string       `gorm:"type:text"`
	Kind             TemplateKind `gorm:"type:varchar(20);not null;index"`
	Content          string       `gorm:"type:text"`
	Blob             []byte
	Blocks           datatypes.JSONType[[]BuilderBlock]
	OriginalFilename string `gorm:"type:varchar(255)"`
	IsActive         bool   `gorm:"not null;default:true;index"`
}

// ============================================================================
// Approval workflow
// ============================================================================

// WorkflowStage is the active role of a workflow or its terminal label
type WorkflowStage string

const (
	StageManager        WorkflowStage = "manager"
	StageCEO            WorkflowStage = "ceo"
	StageClientFeedback WorkflowStage = "client_feedback"
	StageCompleted      WorkflowStage = "completed"
	StageCancelled      WorkflowStage = "cancelled"
	StageClientRejected WorkflowStage = "client_rejected"
)

// IsTerminal reports whether no further decisions are accepted in the stage
func (s WorkflowStage) IsTerminal() bool {
	return s == StageCompleted || s == StageCancelled || s == StageClientRejected
}

// DecisionStatus is the per-role decision of a workflow participant
type DecisionStatus string

const (
	DecisionPending      DecisionStatus = "pending"
	DecisionApproved     DecisionStatus = "approved"
	DecisionDenied       DecisionStatus = "denied"
	DecisionAccepted     DecisionStatus = "accepted"
	DecisionRejected     DecisionStatus = "rejected"
	DecisionNeedsChanges DecisionStatus = "needs_changes"
)

// WorkflowStatus is the coarse status of a workflow
type WorkflowStatus string

const (
	WorkflowStatusActive         WorkflowStatus = "active"
	WorkflowStatusCompleted      WorkflowStatus = "completed"
	WorkflowStatusCancelled      WorkflowStatus = "cancelled"
	WorkflowStatusClientRejected WorkflowStatus = "client_rejected"
)

// Final status labels recorded when a workflow reaches a terminal stage
const (
	FinalStatusApproved         = "approved"
	FinalStatusDeniedByManager  = "denied_by_manager"
	FinalStatusDeniedByCEO      = "denied_by_ceo"
	FinalStatusAcceptedByClient = "accepted_by_client"
	FinalStatusRejectedByClient = "rejected_by_client"
	FinalStatusCancelled        = "cancelled"
)

// WorkflowRole is a participant role
type WorkflowRole string

const (
	RoleManager WorkflowRole = "manager"
	RoleCEO     WorkflowRole = "ceo"
	RoleClient  WorkflowRole = "client"
)

// WorkflowDocumentType is the type of document sent for approval
type WorkflowDocumentType string

const (
	WorkflowDocumentPDF       WorkflowDocumentType = "PDF"
	WorkflowDocumentAgreement WorkflowDocumentType = "Agreement"
)

// Workflow drives one document through manager, CEO and client review
type Workflow struct {
	BaseModel
	DocumentID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	DocumentType   WorkflowDocumentType `gorm:"type:varchar(20);not null"`
	DocumentName   string               `gorm:"type:varchar(255)"`
	QuoteID        *uuid.UUID           `gorm:"type:uuid"`
	ClientName     string               `gorm:"type:varchar(200);index"`
	CompanyName    string               `gorm:"type:varchar(200)"`
	ServiceType    string               `gorm:"type:varchar(100)"`
	TotalAmount    float64              `gorm:"not null;default:0"`
	ManagerEmail   string               `gorm:"type:varchar(255);not null;index"`
	CEOEmail       string               `gorm:"type:varchar(255);not null;index;column:ceo_email"`
	ClientEmail    string               `gorm:"type:varchar(255);index"`
	InitiatorEmail string               `gorm:"type:varchar(255)"`

	CurrentStage   WorkflowStage  `gorm:"type:varchar(30);not null;index"`
	WorkflowStatus WorkflowStatus `gorm:"type:varchar(30);not null;index"`
	FinalStatus    string         `gorm:"type:varchar(50)"`

	ManagerStatus    DecisionStatus `gorm:"type:varchar(20);not null"`
	ManagerComments  string         `gorm:"type:text"`
	ManagerDecidedAt *time.Time
	CEOStatus        DecisionStatus `gorm:"type:varchar(20);not null;column:ceo_status"`
	CEOComments      string         `gorm:"type:text;column:ceo_comments"`
	CEODecidedAt     *time.Time     `gorm:"column:ceo_decided_at"`
	ClientStatus     DecisionStatus `gorm:"type:varchar(20);not null"`
	ClientComments   string         `gorm:"type:text"`
	ClientDecidedAt  *time.Time

	ResubmitCount int    `gorm:"not null;default:0"`
	CancelReason  string `gorm:"type:text"`
	CompletedAt   *time.Time
}

// RequiresClientStage reports whether CEO approval hands off to client feedback
func (w *Workflow) RequiresClientStage() bool {
	return w.ClientEmail != ""
}

// WorkflowEventType names a workflow transition or side effect
type WorkflowEventType string

const (
	EventWorkflowStarted     WorkflowEventType = "workflow_started"
	EventManagerApproved     WorkflowEventType = "manager_approved"
	EventManagerDenied       WorkflowEventType = "manager_denied"
	EventCEOApproved         WorkflowEventType = "ceo_approved"
	EventCEODenied           WorkflowEventType = "ceo_denied"
	EventClientFeedback      WorkflowEventType = "client_feedback"
	EventWorkflowResubmitted WorkflowEventType = "workflow_resubmitted"
	EventWorkflowCancelled   WorkflowEventType = "workflow_cancelled"
	EventSignatureSubmitted  WorkflowEventType = "signature_submitted"
	EventCertificateIssued   WorkflowEventType = "certificate_issued"
)

// WorkflowEvent is an append-only log entry of a workflow transition
type WorkflowEvent struct {
	BaseModel
	WorkflowID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Event      WorkflowEventType `gorm:"type:varchar(50);not null"`
	FromStage  WorkflowStage     `gorm:"type:varchar(30)"`
	ToStage    WorkflowStage     `gorm:"type:varchar(30)"`
	ActorRole  string            `gorm:"type:varchar(20)"`
	ActorEmail string            `gorm:"type:varchar(255)"`
	Comments   string            `gorm:"type:text"`
	OccurredAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// ============================================================================
// Signatures
// ============================================================================

// SignatureRole is the party a signature belongs to
type SignatureRole string

const (
	SignatureRoleClient SignatureRole = "client"
	SignatureRoleCEO    SignatureRole = "ceo"
)

// SignatureType distinguishes typed names from drawn images
type SignatureType string

const (
	SignatureTypeTyped SignatureType = "typed"
	SignatureTypeDrawn SignatureType = "drawn"
)

// Signature is an electronic signature of one role on a workflow
type Signature struct {
	BaseModel
	WorkflowID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_signatures_workflow_role"`
	Role          SignatureRole `gorm:"type:varchar(20);not null;uniqueIndex:idx_signatures_workflow_role"`
	SignerName    string        `gorm:"type:varchar(200);not null"`
	SignerEmail   string        `gorm:"type:varchar(255);not null"`
	SignerTitle   string        `gorm:"type:varchar(200)"`
	SignedDate    string        `gorm:"type:varchar(50)"`
	SignatureType SignatureType `gorm:"type:varchar(20);not null"`
	// SignatureData is typed text or a data URI image
	SignatureData string    `gorm:"type:text;not null"`
	SignedAt      time.Time `gorm:"not null"`
	IPAddress     string    `gorm:"type:varchar(64)"`
	UserAgent     string    `gorm:"type:varchar(500)"`
}

// CertificateSigner is a signer record frozen into a certificate
type CertificateSigner struct {
	Role          SignatureRole `json:"role"`
	RoleLabel     string        `json:"roleLabel"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Title         string        `json:"title,omitempty"`
	SignatureType SignatureType `json:"signatureType"`
	SignatureData string        `json:"signatureData"`
	SentAt        time.Time     `json:"sentAt"`
	ViewedAt      time.Time     `json:"viewedAt"`
	SignedAt      time.Time     `json:"signedAt"`
	IPAddress     string        `json:"ipAddress,omitempty"`
	UserAgent     string        `json:"userAgent,omitempty"`
	Location      string        `json:"location,omitempty"`
}

// SignatureCertificate is issued once per workflow when both parties have signed
type SignatureCertificate struct {
	BaseModel
	WorkflowID      uuid.UUID                               `gorm:"type:uuid;not null;uniqueIndex"`
	DocumentID      *uuid.UUID                              `gorm:"type:uuid"`
	AgreementID     uuid.UUID                               `gorm:"type:uuid;not null"`
	ReferenceNumber string                                  `gorm:"type:varchar(20);not null;uniqueIndex"`
	DocumentTitle   string                                  `gorm:"type:varchar(255);not null"`
	CompanyName     string                                  `gorm:"type:varchar(200)"`
	ClientName      string                                  `gorm:"type:varchar(200)"`
	ServiceType     string                                  `gorm:"type:varchar(100)"`
	TotalAmount     float64                                 `gorm:"not null;default:0"`
	Signers         datatypes.JSONType[[]CertificateSigner] `gorm:"not null"`
	CompletionDate  time.Time                               `gorm:"not null"`
	FilePath        string                                  `gorm:"type:varchar(500)"`
}
