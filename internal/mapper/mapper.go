package mapper

import (
	"fmt"
	"time"

	"github.com/straye-as/cpq-api/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	return domain.QuoteDTO{
		ID:            quote.ID,
		Source:        "manual",
		Client:        quote.Client,
		Configuration: quote.Configuration,
		Quote:         quote.Plans.Data(),
		Status:        quote.Status,
		EmailSentAt:   formatTimePtr(quote.EmailSentAt),
		CreatedAt:     formatTime(quote.CreatedAt),
		UpdatedAt:     formatTime(quote.UpdatedAt),
	}
}

// ToHubSpotQuoteDTO converts HubSpotQuote to QuoteDTO
func ToHubSpotQuoteDTO(quote *domain.HubSpotQuote) domain.QuoteDTO {
	return domain.QuoteDTO{
		ID:            quote.ID,
		Source:        "hubspot",
		Client:        quote.Client,
		Configuration: quote.Configuration,
		Quote:         quote.Plans.Data(),
		Status:        quote.Status,
		CreatedAt:     formatTime(quote.CreatedAt),
		UpdatedAt:     formatTime(quote.UpdatedAt),
	}
}

// ToQuoteStatusLogDTO converts QuoteStatusLog to QuoteStatusLogDTO
func ToQuoteStatusLogDTO(log *domain.QuoteStatusLog) domain.QuoteStatusLogDTO {
	return domain.QuoteStatusLogDTO{
		Status:    log.Status,
		Notes:     log.Notes,
		ChangedBy: log.ChangedBy,
		ChangedAt: formatTime(log.CreatedAt),
	}
}

// ToDocumentDTO converts Document to DocumentDTO
func ToDocumentDTO(doc *domain.Document) domain.DocumentDTO {
	return domain.DocumentDTO{
		ID:          doc.ID,
		QuoteID:     doc.QuoteID,
		TemplateID:  doc.TemplateID,
		Kind:        doc.Kind,
		Filename:    doc.Filename,
		FilePath:    doc.FilePath,
		ContentType: doc.ContentType,
		ClientName:  doc.ClientName,
		CompanyName: doc.CompanyName,
		ServiceType: doc.ServiceType,
		SizeBytes:   doc.SizeBytes,
		HasPayload:  doc.Payload != "",
		CreatedAt:   formatTime(doc.CreatedAt),
	}
}

// ToTemplateDTO converts Template to TemplateDTO. The DOCX blob is never exposed.
func ToTemplateDTO(tmpl *domain.Template) domain.TemplateDTO {
	return domain.TemplateDTO{
		ID:               tmpl.ID,
		Name:             tmpl.Name,
		Description:      tmpl.Description,
		Kind:             tmpl.Kind,
		Content:          tmpl.Content,
		Blocks:           tmpl.Blocks.Data(),
		OriginalFilename: tmpl.OriginalFilename,
		SizeBytes:        len(tmpl.Blob),
		IsActive:         tmpl.IsActive,
		CreatedAt:        formatTime(tmpl.CreatedAt),
		UpdatedAt:        formatTime(tmpl.UpdatedAt),
	}
}

// ToWorkflowDTO converts Workflow to WorkflowDTO
func ToWorkflowDTO(wf *domain.Workflow) domain.WorkflowDTO {
	dto := domain.WorkflowDTO{
		ID:               wf.ID,
		DocumentID:       wf.DocumentID,
		DocumentType:     wf.DocumentType,
		DocumentName:     wf.DocumentName,
		QuoteID:          wf.QuoteID,
		ClientName:       wf.ClientName,
		CompanyName:      wf.CompanyName,
		ServiceType:      wf.ServiceType,
		TotalAmount:      wf.TotalAmount,
		ManagerEmail:     wf.ManagerEmail,
		CEOEmail:         wf.CEOEmail,
		ClientEmail:      wf.ClientEmail,
		InitiatorEmail:   wf.InitiatorEmail,
		CurrentStage:     wf.CurrentStage,
		WorkflowStatus:   wf.WorkflowStatus,
		FinalStatus:      wf.FinalStatus,
		ManagerStatus:    wf.ManagerStatus,
		ManagerComments:  wf.ManagerComments,
		ManagerDecidedAt: formatTimePtr(wf.ManagerDecidedAt),
		CEOStatus:        wf.CEOStatus,
		CEOComments:      wf.CEOComments,
		CEODecidedAt:     formatTimePtr(wf.CEODecidedAt),
		ClientStatus:     wf.ClientStatus,
		ClientComments:   wf.ClientComments,
		ClientDecidedAt:  formatTimePtr(wf.ClientDecidedAt),
		ResubmitCount:    wf.ResubmitCount,
		CancelReason:     wf.CancelReason,
		CreatedAt:        formatTime(wf.CreatedAt),
		UpdatedAt:        formatTime(wf.UpdatedAt),
		CompletedAt:      formatTimePtr(wf.CompletedAt),
	}

	switch wf.FinalStatus {
	case domain.FinalStatusDeniedByManager:
		dto.DeniedByRole = string(domain.RoleManager)
		dto.DeniedByEmail = wf.ManagerEmail
	case domain.FinalStatusDeniedByCEO:
		dto.DeniedByRole = string(domain.RoleCEO)
		dto.DeniedByEmail = wf.CEOEmail
	case domain.FinalStatusRejectedByClient:
		dto.DeniedByRole = string(domain.RoleClient)
		dto.DeniedByEmail = wf.ClientEmail
	}
	return dto
}

// ToWorkflowDTOs converts a slice of workflows
func ToWorkflowDTOs(workflows []domain.Workflow) []domain.WorkflowDTO {
	dtos := make([]domain.WorkflowDTO, len(workflows))
	for i := range workflows {
		dtos[i] = ToWorkflowDTO(&workflows[i])
	}
	return dtos
}

// ToWorkflowEventDTO converts WorkflowEvent to WorkflowEventDTO
func ToWorkflowEventDTO(event *domain.WorkflowEvent) domain.WorkflowEventDTO {
	return domain.WorkflowEventDTO{
		Event:      event.Event,
		FromStage:  event.FromStage,
		ToStage:    event.ToStage,
		ActorRole:  event.ActorRole,
		ActorEmail: event.ActorEmail,
		Comments:   event.Comments,
		OccurredAt: formatTime(event.OccurredAt),
	}
}

// ToSignatureDTO converts Signature to SignatureDTO; the signature payload is omitted
func ToSignatureDTO(sig *domain.Signature) domain.SignatureDTO {
	return domain.SignatureDTO{
		ID:          sig.ID,
		WorkflowID:  sig.WorkflowID,
		Role:        sig.Role,
		SignerName:  sig.SignerName,
		SignerEmail: sig.SignerEmail,
		SignerTitle: sig.SignerTitle,
		SignedDate:  sig.SignedDate,
		Type:        sig.SignatureType,
		SignedAt:    formatTime(sig.SignedAt),
	}
}

// ToCertificateDTO converts SignatureCertificate to CertificateDTO
func ToCertificateDTO(cert *domain.SignatureCertificate) domain.CertificateDTO {
	return domain.CertificateDTO{
		ID:              cert.ID,
		WorkflowID:      cert.WorkflowID,
		DocumentID:      cert.DocumentID,
		AgreementID:     cert.AgreementID,
		ReferenceNumber: cert.ReferenceNumber,
		DocumentTitle:   cert.DocumentTitle,
		CompanyName:     cert.CompanyName,
		ClientName:      cert.ClientName,
		ServiceType:     cert.ServiceType,
		TotalAmount:     cert.TotalAmount,
		Signers:         cert.Signers.Data(),
		CompletionDate:  formatTime(cert.CompletionDate),
		FilePath:        cert.FilePath,
	}
}

// FormatError creates a formatted error message
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
