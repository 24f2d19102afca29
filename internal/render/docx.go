package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
)

// ErrInvalidDOCX is returned when a template blob is not a Word document
var ErrInvalidDOCX = errors.New("invalid docx template")

// DOCXContentType is the MIME type of generated Word documents
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var (
	docxPartPattern  = regexp.MustCompile(`^word/(document|header\d*|footer\d*|footnotes|endnotes)\.xml$`)
	paragraphPattern = regexp.MustCompile(`(?s)<w:p(?:\s(?:[^>]*[^/>])?)?>.*?</w:p>`)
	textRunPattern   = regexp.MustCompile(`(?s)(<w:t(?:\s[^>]*)?>)(.*?)(</w:t>)`)
)

var xmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&apos;",
)

// FillDOCX substitutes {{key}} placeholders in the body, headers and footers of a
// Word document. Placeholders are replaced inside each text run first; a paragraph
// whose runs still form a placeholder together is collapsed into its first run.
func FillDOCX(template []byte, data TemplateData) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDOCX, err)
	}

	hasDocument := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			hasDocument = true
			break
		}
	}
	if !hasDocument {
		return nil, fmt.Errorf("%w: missing word/document.xml", ErrInvalidDOCX)
	}

	escaped := make(TemplateData, len(data))
	for k, v := range data {
		escaped[k] = xmlEscaper.Replace(v)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	for _, f := range zr.File {
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDOCX, f.Name, err)
		}
		if docxPartPattern.MatchString(f.Name) {
			content = []byte(fillWordXML(string(content), escaped))
		}

		header := f.FileHeader
		w, err := zw.CreateHeader(&header)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func fillWordXML(xml string, data TemplateData) string {
	return paragraphPattern.ReplaceAllStringFunc(xml, func(p string) string {
		p = textRunPattern.ReplaceAllStringFunc(p, func(run string) string {
			m := textRunPattern.FindStringSubmatch(run)
			return m[1] + Substitute(m[2], data) + m[3]
		})

		runs := textRunPattern.FindAllStringSubmatch(p, -1)
		if len(runs) < 2 {
			return p
		}
		var joined strings.Builder
		for _, r := range runs {
			joined.WriteString(r[2])
		}
		if !HasPlaceholders(joined.String()) {
			return p
		}

		merged := Substitute(joined.String(), data)
		first := true
		return textRunPattern.ReplaceAllStringFunc(p, func(string) string {
			if first {
				first = false
				return `<w:t xml:space="preserve">` + merged + `</w:t>`
			}
			return `<w:t></w:t>`
		})
	})
}

// DOCXText extracts the visible text of the document body, one line per paragraph
func DOCXText(doc []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDOCX, err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return "", err
		}
		var lines []string
		for _, p := range paragraphPattern.FindAllString(string(content), -1) {
			var line strings.Builder
			for _, r := range textRunPattern.FindAllStringSubmatch(p, -1) {
				line.WriteString(r[2])
			}
			lines = append(lines, html.UnescapeString(line.String()))
		}
		return strings.Join(lines, "\n"), nil
	}
	return "", fmt.Errorf("%w: missing word/document.xml", ErrInvalidDOCX)
}

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`
	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
	docxDocumentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	docxDocumentTail = `<w:sectPr><w:pgSz w:w="12240" w:h="15840"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr></w:body></w:document>`
)

// BuildDOCX writes a minimal Letter-sized Word document. Each paragraph is a list of runs.
func BuildDOCX(paragraphs [][]string) ([]byte, error) {
	var body strings.Builder
	body.WriteString(docxDocumentHead)
	for _, runs := range paragraphs {
		body.WriteString("<w:p>")
		for _, r := range runs {
			body.WriteString(`<w:r><w:t xml:space="preserve">`)
			body.WriteString(xmlEscaper.Replace(r))
			body.WriteString("</w:t></w:r>")
		}
		body.WriteString("</w:p>")
	}
	body.WriteString(docxDocumentTail)

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	parts := []struct{ name, content string }{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", body.String()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, p.content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
