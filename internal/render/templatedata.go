package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
)

// Default commercial terms rendered into agreements
const (
	DefaultPaymentSchedule       = "50% upfront, 50% upon completion"
	DefaultPaymentMethod         = "Bank transfer or credit card"
	DefaultConfidentialityPeriod = "2 years"
	DefaultWarrantyPeriod        = "90 days"
	DefaultTerminationNotice     = "30 days written notice"
	DefaultClientTitle           = "Authorized Representative"
	QuoteValidityDays            = 30
)

// TemplateData is the flat placeholder key to value mapping of a quote
type TemplateData map[string]string

// Get returns the value of key and whether it exists
func (d TemplateData) Get(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// BuildTemplateData flattens a quote into the placeholder mapping shared by all template kinds
func BuildTemplateData(q *domain.Quote, company *config.CompanyConfig, now time.Time) TemplateData {
	data := TemplateData{}

	client := q.Client
	data["client_name"] = orDefault(client.Name, "N/A")
	data["client_company"] = orDefault(client.Company, "N/A")
	data["client_email"] = orDefault(client.Email, "N/A")
	data["client_phone"] = orDefault(client.Phone, "N/A")
	data["client_title"] = DefaultClientTitle
	data["client_requirements"] = client.Requirements
	data["service_type"] = orDefault(client.ServiceType, "Migration Services")

	data["company_name"] = company.Name
	data["company_address"] = company.Address
	data["company_city"] = company.City
	data["company_email"] = company.Email
	data["company_phone"] = company.Phone
	data["company_website"] = company.Website
	data["company_support_hours"] = company.SupportHours

	data["quote_id"] = q.ID.String()
	data["quote_status"] = string(q.Status)
	data["start_date"] = FormatDate(now)
	data["end_date"] = FormatDate(now.AddDate(0, 0, QuoteValidityDays))
	data["generation_date"] = FormatDate(now)
	data["effective_date"] = FormatDate(now)
	data["current_year"] = strconv.Itoa(now.Year())
	data["payment_schedule"] = DefaultPaymentSchedule
	data["payment_method"] = DefaultPaymentMethod
	data["confidentiality_period"] = DefaultConfidentialityPeriod
	data["warranty_period"] = DefaultWarrantyPeriod
	data["termination_notice"] = DefaultTerminationNotice

	cfg := q.Configuration
	data["config_users"] = strconv.Itoa(cfg.Users)
	data["config_instance_type"] = humanize(string(cfg.InstanceType))
	data["config_instances"] = strconv.Itoa(cfg.Instances)
	data["config_duration"] = strconv.Itoa(cfg.DurationMonths)
	data["config_duration_label"] = pluralize(cfg.DurationMonths, "month")
	data["config_migration_type"] = humanize(string(cfg.MigrationType))
	data["config_data_size"] = decimal.NewFromFloat(cfg.DataSizeGB).String()

	plans := q.Plans.Data()
	for _, name := range domain.AllPlans {
		addPlan(data, string(name), plans.Plan(name))
	}

	return data
}

func addPlan(data TemplateData, prefix string, p domain.PlanCost) {
	money := map[string]float64{
		"per_user_cost":   p.PerUserCost,
		"per_gb_cost":     p.PerGBCost,
		"total_user_cost": p.TotalUserCost,
		"data_cost":       p.DataCost,
		"migration_cost":  p.MigrationCost,
		"instance_cost":   p.InstanceCost,
		"total_cost":      p.TotalCost,
		"subtotal_cost":   p.TotalUserCost + p.DataCost + p.InstanceCost,
	}
	for key, amount := range money {
		d := decimal.NewFromFloat(amount)
		data[prefix+"_"+key] = d.StringFixed(2)
		data[prefix+"_"+key+"_formatted"] = FormatCurrency(d)
	}
}

// humanize turns "extra_large" into "Extra Large"
func humanize(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
