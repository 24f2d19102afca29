package render

import (
	"embed"
	"fmt"
	"html"
	"strings"

	"github.com/straye-as/cpq-api/internal/domain"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const lineItemsMarker = "<!-- line_items -->"

func mustTemplate(name string) string {
	b, err := defaultTemplates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("render: missing embedded template %s: %v", name, err))
	}
	return string(b)
}

var (
	quoteTemplate     = mustTemplate("quote.html")
	agreementTemplate = mustTemplate("agreement.html")
)

// QuoteHTML renders the built-in quote document
func QuoteHTML(data TemplateData) string {
	return SubstituteHTML(quoteTemplate, data)
}

// AgreementHTML renders the built-in agreement document with its line items
func AgreementHTML(data TemplateData, items []LineItem) string {
	return InsertLineItems(SubstituteHTML(agreementTemplate, data), items)
}

// InsertLineItems replaces the line item marker of an HTML template with table rows
func InsertLineItems(doc string, items []LineItem) string {
	if !strings.Contains(doc, lineItemsMarker) {
		return doc
	}
	var rows strings.Builder
	for _, it := range items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td class=\"amount\">%s</td><td class=\"amount\">%s</td><td class=\"amount\">%s</td></tr>\n",
			html.EscapeString(it.Description), html.EscapeString(it.Quantity),
			html.EscapeString(it.UnitPrice), html.EscapeString(it.Amount))
	}
	return strings.Replace(doc, lineItemsMarker, rows.String(), 1)
}

// WithPlan returns a copy of data with the selected plan exposed under plan_* keys
func WithPlan(data TemplateData, plan domain.PlanName, title string) TemplateData {
	out := make(TemplateData, len(data)+20)
	for k, v := range data {
		out[k] = v
	}
	prefix := string(plan) + "_"
	for k, v := range data {
		if strings.HasPrefix(k, prefix) {
			out["plan_"+strings.TrimPrefix(k, prefix)] = v
		}
	}
	out["plan_name"] = string(plan)
	out["plan_label"] = humanize(string(plan))
	out["agreement_title"] = title
	return out
}
