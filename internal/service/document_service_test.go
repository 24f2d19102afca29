package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDocumentService_GenerateQuotePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("from a stored quote", func(t *testing.T) {
		id := f.createQuote(t)
		doc, err := f.documents.GenerateQuotePDF(ctx, &domain.GeneratePDFRequest{QuoteID: id.String()})
		require.NoError(t, err)

		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
		assert.Equal(t, domain.DocumentKindQuotePDF, doc.Document.Kind)
		assert.Equal(t, &id, doc.Document.QuoteID)
		assert.Regexp(t, `^pdf_quote_jane_doe_\d{8}_\d{6}\.pdf$`, doc.Document.Filename)
		assert.Equal(t, int64(len(doc.Data)), doc.Document.SizeBytes)

		exists, err := f.store.Exists(ctx, doc.Document.FilePath)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("from an inline configuration", func(t *testing.T) {
		doc, err := f.documents.GenerateQuotePDF(ctx, &domain.GeneratePDFRequest{
			Client: domain.PDFClientInput{Name: "Walk In", Company: "Walk In LLC"},
			Configuration: &domain.PDFConfigurationInput{
				Users: 30, InstanceType: "small", Instances: 1, Duration: 2, MigrationType: "email", DataSize: 10,
			},
		})
		require.NoError(t, err)
		assert.Nil(t, doc.Document.QuoteID)
		assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))
	})

	t.Run("neither quote nor configuration", func(t *testing.T) {
		_, err := f.documents.GenerateQuotePDF(ctx, &domain.GeneratePDFRequest{})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestDocumentService_BuildAgreement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t)

	agreement, err := f.documents.BuildAgreement(ctx, &domain.GenerateAgreementRequest{QuoteID: id.String()})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStandard, agreement.Plan)
	assert.Equal(t, service.DefaultAgreementTitle, agreement.Title)
	require.Len(t, agreement.LineItems, 4)
	assert.Equal(t, 240.0, agreement.LineItems[0].Amount)
	assert.Equal(t, 1300.0, agreement.Subtotal)
	assert.Equal(t, 1600.0, agreement.Total)
	assert.Equal(t, "$1,600.00", agreement.TotalFormatted)
	assert.Equal(t, "Jane Doe", agreement.TemplateData["client_name"])
	assert.NotContains(t, agreement.HTML, "{{")

	var sum float64
	for _, item := range agreement.LineItems {
		sum += item.Amount
	}
	assert.InDelta(t, agreement.Total, sum, 0.001)

	t.Run("plan selection", func(t *testing.T) {
		basic, err := f.documents.BuildAgreement(ctx, &domain.GenerateAgreementRequest{QuoteID: id.String(), Plan: "basic"})
		require.NoError(t, err)
		assert.Equal(t, domain.PlanBasic, basic.Plan)
		assert.Less(t, basic.Total, agreement.Total)
	})

	t.Run("lookup by client name", func(t *testing.T) {
		byName, err := f.documents.BuildAgreement(ctx, &domain.GenerateAgreementRequest{QuoteID: "jane doe"})
		require.NoError(t, err)
		assert.Equal(t, id, byName.QuoteID)
	})

	t.Run("html template", func(t *testing.T) {
		tmpl, err := f.templates.Create(ctx, &domain.CreateTemplateRequest{
			Name:    "Short form",
			Kind:    "html",
			Content: "<h1>Agreement for {{client_company}}</h1><table><!-- line_items --></table>",
		})
		require.NoError(t, err)

		withTemplate, err := f.documents.BuildAgreement(ctx, &domain.GenerateAgreementRequest{QuoteID: id.String(), TemplateID: tmpl.ID.String()})
		require.NoError(t, err)
		assert.Contains(t, withTemplate.HTML, "Agreement for Doe Industries")
		assert.Equal(t, &tmpl.ID, withTemplate.TemplateID)
	})

	t.Run("unknown quote", func(t *testing.T) {
		_, err := f.documents.BuildAgreement(ctx, &domain.GenerateAgreementRequest{QuoteID: "ghost"})
		assert.ErrorIs(t, err, service.ErrQuoteNotFound)
	})
}

func TestDocumentService_GenerateAgreementDOCX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createQuote(t)

	blob, err := render.BuildDOCX([][]string{
		{"Agreement between {{company_name}} and {{client_company}}"},
		{"Total: {{plan_total_cost_formatted}}"},
	})
	require.NoError(t, err)

	tmpl, err := f.templates.UploadDOCX(ctx, "Contract", "", "contract.docx", blob)
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateKindDOCX, tmpl.Kind)

	doc, err := f.documents.GenerateAgreementDOCX(ctx, &domain.GenerateAgreementRequest{QuoteID: id.String(), TemplateID: tmpl.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, render.DOCXContentType, doc.Document.ContentType)

	text, err := render.DOCXText(doc.Data)
	require.NoError(t, err)
	assert.Contains(t, text, "Agreement between Acme Migrations and Doe Industries")
	assert.False(t, render.HasPlaceholders(text))

	_, err = f.documents.GenerateAgreementDOCX(ctx, &domain.GenerateAgreementRequest{QuoteID: id.String()})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDocumentService_OpenRecoversMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	original := f.createAgreement(t)

	require.NoError(t, f.store.Delete(ctx, original.Document.FilePath))

	restored, err := f.documents.Open(ctx, original.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Data, restored.Data)

	exists, err := f.store.Exists(ctx, restored.Document.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDocumentService_ReconcileArtifacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	intact := f.createAgreement(t)
	fromPayload := f.createAgreement(t)
	fromQuote := f.createAgreement(t)
	orphan, err := f.documents.GenerateQuotePDF(ctx, &domain.GeneratePDFRequest{
		Client:        domain.PDFClientInput{Name: "Transient"},
		Configuration: &domain.PDFConfigurationInput{Users: 5, Instances: 1, Duration: 1},
	})
	require.NoError(t, err)

	require.NoError(t, f.store.Delete(ctx, fromPayload.Document.FilePath))
	require.NoError(t, f.store.Delete(ctx, fromQuote.Document.FilePath))
	require.NoError(t, f.db.Model(&domain.Document{}).Where("id = ?", fromQuote.Document.ID).Update("payload", "").Error)
	require.NoError(t, f.store.Delete(ctx, orphan.Document.FilePath))
	require.NoError(t, f.db.Model(&domain.Document{}).Where("id = ?", orphan.Document.ID).Update("payload", "").Error)

	report, err := f.documents.ReconcileArtifacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, 1, report.Restored)
	assert.Equal(t, 1, report.Regenerated)
	assert.Equal(t, 1, report.Removed)
	assert.Equal(t, 0, report.Failed)

	_, err = f.documents.GetByID(ctx, orphan.Document.ID)
	assert.ErrorIs(t, err, service.ErrDocumentNotFound)

	for _, doc := range []*service.GeneratedDocument{intact, fromPayload, fromQuote} {
		opened, err := f.documents.Open(ctx, doc.Document.ID)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(opened.Data, []byte("%PDF")))
	}
}

func TestDocumentService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	agreement := f.createAgreement(t)
	_, err := f.documents.GenerateQuotePDF(ctx, &domain.GeneratePDFRequest{QuoteID: agreement.Document.QuoteID.String()})
	require.NoError(t, err)

	all, err := f.documents.List(ctx, "", nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	agreements, err := f.documents.List(ctx, "agreement", agreement.Document.QuoteID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), agreements.Total)

	_, err = f.documents.List(ctx, "invoice", nil, 1, 20)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDocumentService_ExportQuoteWorkbook(t *testing.T) {
	f := newFixture(t)
	id := f.createQuote(t)

	data, filename, err := f.documents.ExportQuoteWorkbook(context.Background(), id.String())
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()
	assert.NotEmpty(t, book.GetSheetList())
}
