package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/straye-as/cpq-api/internal/domain"
)

// CertificateTitle is the heading of every signature certificate
const CertificateTitle = "Signature Certificate"

const certificateTimeLayout = "2006-01-02 15:04:05 MST"

// RenderCertificate draws the signature certificate of a workflow
func RenderCertificate(cert *domain.SignatureCertificate) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	width := contentWidth(pdf)

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(31, 58, 95)
	pdf.CellFormat(width, 12, CertificateTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(width, 6, "Reference number: "+cert.ReferenceNumber, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(34, 34, 34)
	meta := [][2]string{
		{"Document", cert.DocumentTitle},
		{"Company", cert.CompanyName},
		{"Client", cert.ClientName},
		{"Service", cert.ServiceType},
		{"Total", FormatMoney(cert.TotalAmount)},
	}
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, tr(m[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(width-35, 6, tr(m[1]), "", "L", false)
	}
	pdf.Ln(6)

	colW := width / 3
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(238, 242, 247)
	for _, h := range []string{"Signer", "Timestamps", "Signature"} {
		pdf.CellFormat(colW, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for i, s := range cert.Signers.Data() {
		drawSignerRow(pdf, tr, colW, i, s)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(width, 6,
		"Completed: "+cert.CompletionDate.UTC().Format(certificateTimeLayout),
		"", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const signerRowHeight = 42.0

func drawSignerRow(pdf *gofpdf.Fpdf, tr func(string) string, colW float64, idx int, s domain.CertificateSigner) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+signerRowHeight > pageH-pageMarginMM {
		pdf.AddPage()
	}

	x, y := pdf.GetX(), pdf.GetY()
	for i := 0; i < 3; i++ {
		pdf.Rect(x+float64(i)*colW, y, colW, signerRowHeight, "D")
	}

	identity := []string{s.RoleLabel, s.Name, s.Email}
	if s.Title != "" {
		identity = append(identity, s.Title)
	}
	writeLines(pdf, tr, x+2, y+2, colW-4, identity, true)

	stamps := []string{
		"Sent: " + formatStamp(s.SentAt),
		"Viewed: " + formatStamp(s.ViewedAt),
		"Signed: " + formatStamp(s.SignedAt),
		"Verified electronic signature",
	}
	if s.IPAddress != "" {
		stamps = append(stamps, "IP: "+s.IPAddress)
	}
	if s.Location != "" {
		stamps = append(stamps, "Location: "+s.Location)
	}
	writeLines(pdf, tr, x+colW+2, y+2, colW-4, stamps, false)

	sigX := x + 2*colW + 2
	if !drawSignatureImage(pdf, fmt.Sprintf("signature-%d", idx), s.SignatureData, sigX, y+4, colW-4, signerRowHeight-8) {
		pdf.SetXY(sigX, y+signerRowHeight/2-5)
		pdf.SetFont("Times", "I", 16)
		pdf.MultiCell(colW-4, 8, tr(signatureText(s)), "", "C", false)
	}

	pdf.SetXY(x, y+signerRowHeight)
}

func writeLines(pdf *gofpdf.Fpdf, tr func(string) string, x, y, w float64, lines []string, boldFirst bool) {
	pdf.SetXY(x, y)
	for i, line := range lines {
		style := ""
		if boldFirst && i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.SetX(x)
		pdf.MultiCell(w, 4.5, tr(line), "", "L", false)
	}
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(certificateTimeLayout)
}

func signatureText(s domain.CertificateSigner) string {
	if s.SignatureType == domain.SignatureTypeTyped && strings.TrimSpace(s.SignatureData) != "" {
		return s.SignatureData
	}
	return s.Name
}

// drawSignatureImage renders a data URI signature and reports whether it succeeded
func drawSignatureImage(pdf *gofpdf.Fpdf, name, data string, x, y, w, h float64) bool {
	imgType, raw, ok := DecodeDataURI(data)
	if !ok {
		return false
	}
	opts := gofpdf.ImageOptions{ImageType: imgType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	if pdf.Err() || info == nil {
		pdf.ClearError()
		return false
	}

	iw, ih := info.Width(), info.Height()
	if iw <= 0 || ih <= 0 {
		return false
	}
	scale := w / iw
	if ih*scale > h {
		scale = h / ih
	}
	dw, dh := iw*scale, ih*scale
	pdf.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	return true
}

// DecodeDataURI decodes a base64 image data URI into its gofpdf image type and bytes
func DecodeDataURI(uri string) (string, []byte, bool) {
	if !strings.HasPrefix(uri, "data:image/") {
		return "", nil, false
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return "", nil, false
	}
	header := uri[len("data:image/"):comma]
	if !strings.HasSuffix(header, ";base64") {
		return "", nil, false
	}

	var imgType string
	switch strings.TrimSuffix(header, ";base64") {
	case "png":
		imgType = "PNG"
	case "jpeg", "jpg":
		imgType = "JPG"
	case "gif":
		imgType = "GIF"
	default:
		return "", nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil || len(raw) == 0 {
		return "", nil, false
	}
	return imgType, raw, true
}
