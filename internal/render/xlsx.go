package render

import (
	"fmt"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const quoteSheet = "Quote"

// QuoteWorkbook exports a quote with the three plans side by side
func QuoteWorkbook(q *domain.Quote, data TemplateData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	currencyFmt := "$#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return nil, err
	}
	moneyBold, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	row := 1
	set := func(col int, value interface{}, style int) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(quoteSheet, cell, value); err != nil {
			return err
		}
		if style != 0 {
			return f.SetCellStyle(quoteSheet, cell, cell, style)
		}
		return nil
	}

	if err := set(1, "Quote "+q.ID.String(), title); err != nil {
		return nil, err
	}
	row += 2

	details := [][2]string{
		{"Client", data["client_name"]},
		{"Company", data["client_company"]},
		{"Email", data["client_email"]},
		{"Service Type", data["service_type"]},
		{"Generated", data["generation_date"]},
		{"Users", data["config_users"]},
		{"Instance Type", data["config_instance_type"]},
		{"Instances", data["config_instances"]},
		{"Duration", data["config_duration_label"]},
		{"Migration Type", data["config_migration_type"]},
		{"Data Size (GB)", data["config_data_size"]},
	}
	for _, d := range details {
		if err := set(1, d[0], bold); err != nil {
			return nil, err
		}
		if err := set(2, d[1], 0); err != nil {
			return nil, err
		}
		row++
	}
	row++

	headers := []string{"Cost", "Basic", "Standard", "Advanced"}
	for i, h := range headers {
		if err := set(i+1, h, bold); err != nil {
			return nil, err
		}
	}
	row++

	plans := q.Plans.Data()
	lines := []struct {
		label string
		value func(domain.PlanCost) float64
	}{
		{"Per User Cost", func(p domain.PlanCost) float64 { return p.PerUserCost }},
		{"Per GB Cost", func(p domain.PlanCost) float64 { return p.PerGBCost }},
		{"Total User Cost", func(p domain.PlanCost) float64 { return p.TotalUserCost }},
		{"Data Cost", func(p domain.PlanCost) float64 { return p.DataCost }},
		{"Migration Cost", func(p domain.PlanCost) float64 { return p.MigrationCost }},
		{"Instance Cost", func(p domain.PlanCost) float64 { return p.InstanceCost }},
		{"Total Cost", func(p domain.PlanCost) float64 { return p.TotalCost }},
	}
	for i, line := range lines {
		style := money
		if i == len(lines)-1 {
			style = moneyBold
			if err := set(1, line.label, bold); err != nil {
				return nil, err
			}
		} else if err := set(1, line.label, 0); err != nil {
			return nil, err
		}
		for j, plan := range domain.AllPlans {
			if err := set(j+2, line.value(plans.Plan(plan)), style); err != nil {
				return nil, err
			}
		}
		row++
	}

	if err := f.SetColWidth(quoteSheet, "A", "A", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(quoteSheet, "B", "D", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
