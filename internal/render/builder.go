package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/straye-as/cpq-api/internal/domain"
)

// BlocksToHTML serializes builder blocks into an HTML document body.
// Text and generic block content is trusted rich text; titles, alt text and table cells are escaped.
func BlocksToHTML(title string, blocks []domain.BuilderBlock) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>" + documentCSS + "</style>\n</head>\n<body>\n")

	for i, block := range blocks {
		anchor := fmt.Sprintf("section-%d", i+1)
		switch block.Type {
		case domain.BuilderBlockText:
			fmt.Fprintf(&b, "<section class=\"block-text\" id=\"%s\">\n", anchor)
			writeHeading(&b, block.Title)
			b.WriteString(block.Content)
			b.WriteString("\n</section>\n")

		case domain.BuilderBlockImage:
			if block.Src == "" {
				continue
			}
			fmt.Fprintf(&b, "<figure class=\"block-image\" id=\"%s\"><img src=\"%s\" alt=\"%s\">",
				anchor, html.EscapeString(block.Src), html.EscapeString(block.Alt))
			if block.Title != "" {
				fmt.Fprintf(&b, "<figcaption>%s</figcaption>", html.EscapeString(block.Title))
			}
			b.WriteString("</figure>\n")

		case domain.BuilderBlockTable:
			fmt.Fprintf(&b, "<section class=\"block-table\" id=\"%s\">\n", anchor)
			writeHeading(&b, block.Title)
			writeTable(&b, block.Headers, block.Rows)
			b.WriteString("</section>\n")

		case domain.BuilderBlockTOC:
			b.WriteString("<nav class=\"block-toc\">\n")
			writeHeading(&b, orDefault(block.Title, "Table of Contents"))
			b.WriteString("<ol>\n")
			for j, other := range blocks {
				if other.Type == domain.BuilderBlockTOC || other.Title == "" {
					continue
				}
				fmt.Fprintf(&b, "<li><a href=\"#section-%d\">%s</a></li>\n", j+1, html.EscapeString(other.Title))
			}
			b.WriteString("</ol>\n</nav>\n")

		default:
			fmt.Fprintf(&b, "<div class=\"block-generic\" id=\"%s\">\n", anchor)
			writeHeading(&b, block.Title)
			b.WriteString(block.Content)
			b.WriteString("\n</div>\n")
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeHeading(b *strings.Builder, title string) {
	if title != "" {
		fmt.Fprintf(b, "<h2>%s</h2>\n", html.EscapeString(title))
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("<table>\n")
	if len(headers) > 0 {
		b.WriteString("<thead><tr>")
		for _, h := range headers {
			fmt.Fprintf(b, "<th>%s</th>", html.EscapeString(h))
		}
		b.WriteString("</tr></thead>\n")
	}
	b.WriteString("<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

const documentCSS = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #222; }
h1 { font-size: 20pt; color: #1f3a5f; }
h2 { font-size: 14pt; color: #1f3a5f; border-bottom: 1px solid #ccd; padding-bottom: 4px; }
table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; }
th, td { border: 1px solid #ccd; padding: 6px 8px; text-align: left; }
th { background: #eef2f7; }
td.amount, th.amount { text-align: right; }
tr.total td { font-weight: bold; background: #f6f8fb; }
figure img { max-width: 100%; }
`
