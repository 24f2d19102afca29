package service

import "errors"

// Common service errors
var (
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrQuoteNotFound is returned when no quote matches an id or natural key
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrDocumentNotFound is returned when a document or its file is missing
	ErrDocumentNotFound = errors.New("document not found")

	// ErrTemplateNotFound is returned when a template is missing or inactive
	ErrTemplateNotFound = errors.New("template not found")

	// ErrWorkflowNotFound is returned when a workflow is not found
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrCertificateNotFound is returned when no certificate has been issued for a workflow
	ErrCertificateNotFound = errors.New("certificate not found")

	// ErrInvalidTransition is returned when a decision does not match the current stage
	ErrInvalidTransition = errors.New("invalid workflow transition")

	// ErrAlreadyDecided is returned when a role has already recorded its decision
	ErrAlreadyDecided = errors.New("decision already recorded")

	// ErrConcurrentUpdate is returned when another request changed the workflow stage first
	ErrConcurrentUpdate = errors.New("workflow was modified concurrently")

	// ErrSignatureExists is returned when a role signs the same workflow twice
	ErrSignatureExists = errors.New("signature already submitted")

	// ErrRenderFailure is returned when a template or PDF engine fails
	ErrRenderFailure = errors.New("document rendering failed")

	// ErrStorageFailure is returned when an artifact cannot be persisted or read
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotifyFailure is returned when an email cannot be delivered
	ErrNotifyFailure = errors.New("notification failed")

	// ErrIntegrationFailure is returned when an external integration fails
	ErrIntegrationFailure = errors.New("integration failure")

	// ErrInvalidLink is returned for tampered or expired action links
	ErrInvalidLink = errors.New("invalid or expired link")
)
