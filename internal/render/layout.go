package render

import (
	"github.com/straye-as/cpq-api/internal/domain"
)

// Layout is the engine-neutral structure of a document. The layout engine draws
// it directly; the HTML engine renders the HTML of the same job instead.
type Layout struct {
	Title    string
	Subtitle string
	Sections []LayoutSection
	Footer   string
}

// LayoutSection is a headed block holding key/value pairs, a table, bullets or a paragraph
type LayoutSection struct {
	Heading   string
	Pairs     [][2]string
	Table     *LayoutTable
	Bullets   []string
	Paragraph string
}

// LayoutTable is a grid whose first column is a label and the rest are right aligned amounts
type LayoutTable struct {
	Headers []string
	Rows    [][]string
	// Widths are column widths in millimetres; empty spreads columns evenly
	Widths []float64
	// EmphasizeLast renders the last row in bold
	EmphasizeLast bool
}

// QuoteTerms are the standard terms printed on every quote
var QuoteTerms = []string{
	"This quote is valid for 30 days from the date of issue",
	"Payment terms: 50% upfront, 50% upon completion",
	"Project timeline will be finalized upon acceptance",
	"Any changes to scope may affect pricing",
	"Support and maintenance included for 3 months post-migration",
}

// QuoteLayout is the fallback layout of a quote PDF
func QuoteLayout(data TemplateData) Layout {
	pricing := &LayoutTable{
		Headers:       []string{"Service Details", "Basic Plan", "Standard Plan", "Advanced Plan"},
		Widths:        []float64{55, 37, 37, 36},
		EmphasizeLast: true,
	}
	rows := []struct{ label, key string }{
		{"Per User Cost", "per_user_cost"},
		{"Total User Cost", "total_user_cost"},
		{"Data Cost", "data_cost"},
		{"Migration Cost", "migration_cost"},
		{"Instance Cost", "instance_cost"},
		{"TOTAL COST", "total_cost"},
	}
	for _, row := range rows {
		line := []string{row.label}
		for _, plan := range domain.AllPlans {
			line = append(line, data[string(plan)+"_"+row.key+"_formatted"])
		}
		pricing.Rows = append(pricing.Rows, line)
	}

	return Layout{
		Title:    "PROFESSIONAL QUOTE",
		Subtitle: "Migration Services & Solutions",
		Sections: []LayoutSection{
			{
				Heading: "Client Information",
				Pairs: [][2]string{
					{"Name:", data["client_name"]},
					{"Company:", data["client_company"]},
					{"Email:", data["client_email"]},
					{"Phone:", data["client_phone"]},
					{"Service Type:", data["service_type"]},
				},
			},
			{
				Heading: "Quote Details",
				Pairs: [][2]string{
					{"Quote Date:", data["generation_date"]},
					{"Migration Type:", data["config_migration_type"]},
					{"Project Duration:", data["config_duration_label"]},
					{"Number of Users:", data["config_users"]},
					{"Instance Type:", data["config_instance_type"]},
					{"Number of Instances:", data["config_instances"]},
					{"Data Size:", data["config_data_size"] + " GB"},
				},
			},
			{Heading: "Pricing Breakdown", Table: pricing},
			{Heading: "Terms & Conditions", Bullets: QuoteTerms},
			{
				Heading: "Contact Information",
				Pairs: [][2]string{
					{"Email:", data["company_email"]},
					{"Phone:", data["company_phone"]},
					{"Website:", data["company_website"]},
				},
			},
		},
		Footer: data["company_name"],
	}
}

// LineItem is one priced row of an agreement
type LineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// AgreementLayout is the fallback layout of an agreement PDF
func AgreementLayout(title string, data TemplateData, items []LineItem, total string) Layout {
	table := &LayoutTable{
		Headers:       []string{"Description", "Quantity", "Unit Price", "Amount"},
		Widths:        []float64{70, 30, 32, 33},
		EmphasizeLast: true,
	}
	for _, it := range items {
		table.Rows = append(table.Rows, []string{it.Description, it.Quantity, it.UnitPrice, it.Amount})
	}
	table.Rows = append(table.Rows, []string{"Total", "", "", total})

	return Layout{
		Title:    title,
		Subtitle: "Effective " + data["effective_date"],
		Sections: []LayoutSection{
			{
				Heading: "Parties",
				Pairs: [][2]string{
					{"Provider:", data["company_name"]},
					{"Address:", data["company_address"] + ", " + data["company_city"]},
					{"Client:", data["client_company"]},
					{"Represented by:", data["client_name"]},
					{"Email:", data["client_email"]},
				},
			},
			{
				Heading: "Scope of Services",
				Paragraph: "The Provider will deliver " + data["service_type"] + " for " + data["config_users"] +
					" users across " + data["config_instances"] + " " + data["config_instance_type"] +
					" instance(s) over " + data["config_duration_label"] + ", migrating " +
					data["config_data_size"] + " GB of " + data["config_migration_type"] + " data.",
			},
			{Heading: "Pricing", Table: table},
			{
				Heading: "Terms",
				Pairs: [][2]string{
					{"Payment Schedule:", data["payment_schedule"]},
					{"Payment Method:", data["payment_method"]},
					{"Confidentiality Period:", data["confidentiality_period"]},
					{"Warranty Period:", data["warranty_period"]},
					{"Termination Notice:", data["termination_notice"]},
				},
			},
			{
				Heading: "Signatures",
				Pairs: [][2]string{
					{"For " + data["company_name"] + ":", "______________________________"},
					{"For " + data["client_company"] + ":", "______________________________"},
				},
			},
		},
		Footer: data["company_name"] + " - " + data["company_website"],
	}
}
