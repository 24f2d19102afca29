package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/mapper"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateService manages agreement templates
type TemplateService struct {
	templateRepo *repository.TemplateRepository
	uploads      storage.Storage
	logger       *zap.Logger
}

// NewTemplateService creates a template service. uploads keeps a copy of every uploaded DOCX file.
func NewTemplateService(templateRepo *repository.TemplateRepository, uploads storage.Storage, logger *zap.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		uploads:      uploads,
		logger:       logger,
	}
}

// Create stores an HTML or builder template
func (s *TemplateService) Create(ctx context.Context, req *domain.CreateTemplateRequest) (*domain.TemplateDTO, error) {
	kind := domain.TemplateKind(req.Kind)
	tmpl := &domain.Template{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Kind:        kind,
		IsActive:    true,
	}

	switch kind {
	case domain.TemplateKindHTML:
		if strings.TrimSpace(req.Content) == "" {
			return nil, fmt.Errorf("%w: content is required for html templates", ErrInvalidInput)
		}
		tmpl.Content = req.Content
	case domain.TemplateKindBuilder:
		if err := validateBlocks(req.Blocks); err != nil {
			return nil, err
		}
		tmpl.Blocks = datatypes.NewJSONType(req.Blocks)
	default:
		return nil, fmt.Errorf("%w: unsupported template kind %q", ErrInvalidInput, req.Kind)
	}

	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("template", "create", err))
	}

	s.logger.Info("Template created",
		zap.String("template_id", tmpl.ID.String()),
		zap.String("kind", string(kind)),
	)
	dto := mapper.ToTemplateDTO(tmpl)
	return &dto, nil
}

// UploadDOCX validates and stores a DOCX template
func (s *TemplateService) UploadDOCX(ctx context.Context, name, description, filename string, data []byte) (*domain.TemplateDTO, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".docx") {
		return nil, fmt.Errorf("%w: only .docx files are supported", ErrInvalidInput)
	}
	text, err := render.DOCXText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	storedPath, _, err := s.uploads.Upload(ctx, storage.Slug(name)+".docx", render.DOCXContentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	tmpl := &domain.Template{
		Name:             name,
		Description:      description,
		Kind:             domain.TemplateKindDOCX,
		Blob:             data,
		OriginalFilename: filepath.Base(filename),
		IsActive:         true,
	}
	if err := s.templateRepo.Create(ctx, tmpl); err != nil {
		if delErr := s.uploads.Delete(ctx, storedPath); delErr != nil {
			s.logger.Warn("failed to remove uploaded template copy", zap.String("path", storedPath), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("template", "create", err))
	}

	s.logger.Info("DOCX template uploaded",
		zap.String("template_id", tmpl.ID.String()),
		zap.String("filename", tmpl.OriginalFilename),
		zap.Int("placeholders", len(render.Placeholders(text))),
	)
	dto := mapper.ToTemplateDTO(tmpl)
	return &dto, nil
}

// GetByID returns an active template
func (s *TemplateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TemplateDTO, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	dto := mapper.ToTemplateDTO(tmpl)
	return &dto, nil
}

// List returns active templates, optionally of one kind
func (s *TemplateService) List(ctx context.Context, kind string) ([]domain.TemplateDTO, error) {
	if kind != "" {
		switch domain.TemplateKind(kind) {
		case domain.TemplateKindHTML, domain.TemplateKindDOCX, domain.TemplateKindBuilder:
		default:
			return nil, fmt.Errorf("%w: unknown template kind %q", ErrInvalidInput, kind)
		}
	}

	templates, err := s.templateRepo.List(ctx, domain.TemplateKind(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	dtos := make([]domain.TemplateDTO, len(templates))
	for i := range templates {
		dtos[i] = mapper.ToTemplateDTO(&templates[i])
	}
	return dtos, nil
}

// Delete deactivates a template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.templateRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	s.logger.Info("Template deactivated", zap.String("template_id", id.String()))
	return nil
}

func validateBlocks(blocks []domain.BuilderBlock) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: builder templates need at least one block", ErrInvalidInput)
	}
	for i, b := range blocks {
		switch b.Type {
		case domain.BuilderBlockText, domain.BuilderBlockGeneric, domain.BuilderBlockTOC:
		case domain.BuilderBlockImage:
			if b.Src == "" {
				return fmt.Errorf("%w: block %d: image blocks need a src", ErrInvalidInput, i+1)
			}
		case domain.BuilderBlockTable:
			if len(b.Headers) == 0 {
				return fmt.Errorf("%w: block %d: table blocks need headers", ErrInvalidInput, i+1)
			}
		default:
			return fmt.Errorf("%w: block %d: unknown type %q", ErrInvalidInput, i+1, b.Type)
		}
	}
	return nil
}
