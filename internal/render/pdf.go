package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"
	"github.com/straye-as/cpq-api/internal/config"
	"go.uber.org/zap"
)

// ErrRender is returned when no engine could produce the document
var ErrRender = errors.New("render failed")

// Letter paper with one inch margins
const (
	pageMarginMM = 25.4
	pageSize     = "Letter"
)

// htmlMarginMM is the same margin for wkhtmltopdf, which takes whole millimetres
const htmlMarginMM uint = 25

// Job is a document to render. HTML feeds the HTML engine and Layout the layout engine;
// both describe the same content.
type Job struct {
	HTML   string
	Layout Layout
}

// PDFRenderer renders jobs to PDF with wkhtmltopdf, falling back to a gofpdf layout
// when the HTML engine is disabled, missing, or fails.
type PDFRenderer struct {
	htmlEnabled bool
	logger      *zap.Logger
}

// NewPDFRenderer creates a renderer. The HTML engine is probed once at startup.
func NewPDFRenderer(cfg *config.PDFConfig, logger *zap.Logger) *PDFRenderer {
	r := &PDFRenderer{logger: logger}
	if cfg.DisableHTMLEngine {
		logger.Info("HTML PDF engine disabled, using layout engine")
		return r
	}
	if cfg.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.WkhtmltopdfPath)
	}
	if _, err := wkhtmltopdf.NewPDFGenerator(); err != nil {
		logger.Warn("wkhtmltopdf not available, using layout engine", zap.Error(err))
		return r
	}
	r.htmlEnabled = true
	return r
}

// HTMLEngineEnabled reports whether the primary engine is in use
func (r *PDFRenderer) HTMLEngineEnabled() bool {
	return r.htmlEnabled
}

// Render produces the PDF bytes of a job
func (r *PDFRenderer) Render(ctx context.Context, job Job) ([]byte, error) {
	if r.htmlEnabled && job.HTML != "" {
		out, err := r.renderHTML(ctx, job.HTML)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrRender, ctx.Err())
		}
		r.logger.Warn("HTML PDF engine failed, falling back to layout engine", zap.Error(err))
	}

	out, err := RenderLayout(job.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out, nil
}

func (r *PDFRenderer) renderHTML(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)
	pdfg.MarginTop.Set(htmlMarginMM)
	pdfg.MarginBottom.Set(htmlMarginMM)
	pdfg.MarginLeft.Set(htmlMarginMM)
	pdfg.MarginRight.Set(htmlMarginMM)
	pdfg.Dpi.Set(300)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	page.Encoding.Set("UTF-8")
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}

// RenderLayout draws a layout with gofpdf
func RenderLayout(l Layout) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if l.Footer != "" {
		pdf.SetFooterFunc(func() {
			pdf.SetY(-pageMarginMM + 8)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  |  Page %d", l.Footer, pdf.PageNo())), "", 0, "C", false, 0, "")
		})
	}

	pdf.AddPage()
	width := contentWidth(pdf)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(31, 58, 95)
	pdf.CellFormat(width, 10, tr(l.Title), "", 1, "C", false, 0, "")
	if l.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(width, 6, tr(l.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	for _, s := range l.Sections {
		drawSection(pdf, tr, width, s)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawSection(pdf *gofpdf.Fpdf, tr func(string) string, width float64, s LayoutSection) {
	if s.Heading != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(31, 58, 95)
		pdf.CellFormat(width, 8, tr(s.Heading), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	pdf.SetTextColor(34, 34, 34)

	for _, p := range s.Pairs {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(p[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width-50, 6, tr(p[1]), "", "L", false)
	}

	if s.Paragraph != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width, 5.5, tr(s.Paragraph), "", "J", false)
	}

	for _, bullet := range s.Bullets {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(5, 6, tr("•"), "", 0, "L", false, 0, "")
		pdf.MultiCell(width-5, 6, tr(bullet), "", "L", false)
	}

	if s.Table != nil {
		drawTable(pdf, tr, width, s.Table)
	}
	pdf.Ln(6)
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, width float64, t *LayoutTable) {
	cols := len(t.Headers)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return
	}
	widths := t.Widths
	if len(widths) != cols {
		widths = make([]float64, cols)
		for i := range widths {
			widths[i] = width / float64(cols)
		}
	}

	if len(t.Headers) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(238, 242, 247)
		for i, h := range t.Headers {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	for r, row := range t.Rows {
		style := ""
		if t.EmphasizeLast && r == len(t.Rows)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func contentWidth(pdf *gofpdf.Fpdf) float64 {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	return w - left - right
}
