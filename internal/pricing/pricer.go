// Package pricing computes the three-plan price breakdown of a migration quote.
//
// All arithmetic is done with shopspring/decimal and rounded to cents only when
// converting to the float breakdown stored on quotes.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/straye-as/cpq-api/internal/domain"
)

// ErrInvalidInput is returned when a configuration is out of range
var ErrInvalidInput = errors.New("invalid pricing input")

// tier is one bracket of a piecewise cost table; a nil max is unbounded
type tier struct {
	max  *decimal.Decimal
	rate decimal.Decimal
}

func bounded(limit int64, rate string) tier {
	m := decimal.NewFromInt(limit)
	return tier{max: &m, rate: decimal.RequireFromString(rate)}
}

func unbounded(rate string) tier {
	return tier{rate: decimal.RequireFromString(rate)}
}

var perUserTiers = []tier{
	bounded(25, "20.00"),
	bounded(50, "18.00"),
	bounded(100, "16.00"),
	bounded(250, "14.00"),
	bounded(500, "12.50"),
	bounded(1000, "12.00"),
	bounded(2000, "11.00"),
	bounded(5000, "9.00"),
	bounded(10000, "7.50"),
	bounded(30000, "7.00"),
	unbounded("6.50"),
}

// The jump at 500000 GB is intentional and matches the published rate card.
var perGBTiers = []tier{
	bounded(500, "0.50"),
	bounded(2500, "0.40"),
	bounded(5000, "0.35"),
	bounded(10000, "0.30"),
	bounded(20000, "0.25"),
	bounded(50000, "0.20"),
	bounded(100000, "0.18"),
	bounded(200000, "0.17"),
	bounded(500000, "0.32"),
	bounded(1000000, "0.28"),
	bounded(2000000, "0.25"),
	unbounded("0.22"),
}

// HourlyRate is the billable rate for migration services
var HourlyRate = decimal.NewFromInt(150)

var migrationHours = map[domain.MigrationType]int64{
	domain.MigrationTypeContent:   2,
	domain.MigrationTypeEmail:     4,
	domain.MigrationTypeMessaging: 10,
}

var migrationTiers = map[domain.MigrationType]int{
	domain.MigrationTypeContent:   1,
	domain.MigrationTypeEmail:     2,
	domain.MigrationTypeMessaging: 3,
}

var instanceMonthlyCost = map[domain.InstanceType]decimal.Decimal{
	domain.InstanceTypeSmall:      decimal.NewFromInt(500),
	domain.InstanceTypeStandard:   decimal.NewFromInt(1000),
	domain.InstanceTypeLarge:      decimal.NewFromInt(2000),
	domain.InstanceTypeExtraLarge: decimal.NewFromInt(3500),
}

var planMultipliers = map[domain.PlanName]decimal.Decimal{
	domain.PlanBasic:    decimal.RequireFromString("1.0"),
	domain.PlanStandard: decimal.RequireFromString("1.2"),
	domain.PlanAdvanced: decimal.RequireFromString("1.5"),
}

// Input is the configuration vector of a quote
type Input struct {
	Users          int
	InstanceType   domain.InstanceType
	Instances      int
	DurationMonths int
	MigrationType  domain.MigrationType
	DataSizeGB     decimal.Decimal
}

// PlanBreakdown is the exact, unrounded cost of one plan
type PlanBreakdown struct {
	Plan          domain.PlanName
	PerUserCost   decimal.Decimal
	PerGBCost     decimal.Decimal
	TotalUserCost decimal.Decimal
	DataCost      decimal.Decimal
	MigrationCost decimal.Decimal
	InstanceCost  decimal.Decimal
	TotalCost     decimal.Decimal
}

// Subtotal is the plan cost without migration services
func (b PlanBreakdown) Subtotal() decimal.Decimal {
	return b.TotalUserCost.Add(b.DataCost).Add(b.InstanceCost)
}

// ToPlanCost rounds the breakdown to cents for storage and transport
func (b PlanBreakdown) ToPlanCost() domain.PlanCost {
	return domain.PlanCost{
		PerUserCost:   b.PerUserCost.Round(2).InexactFloat64(),
		PerGBCost:     b.PerGBCost.Round(2).InexactFloat64(),
		TotalUserCost: b.TotalUserCost.Round(2).InexactFloat64(),
		DataCost:      b.DataCost.Round(2).InexactFloat64(),
		MigrationCost: b.MigrationCost.Round(2).InexactFloat64(),
		InstanceCost:  b.InstanceCost.Round(2).InexactFloat64(),
		TotalCost:     b.TotalCost.Round(2).InexactFloat64(),
	}
}

// Result holds the three plan breakdowns of a configuration
type Result struct {
	Input    Input
	Basic    PlanBreakdown
	Standard PlanBreakdown
	Advanced PlanBreakdown
}

// Plan returns the breakdown of the named plan
func (r Result) Plan(name domain.PlanName) PlanBreakdown {
	switch name {
	case domain.PlanStandard:
		return r.Standard
	case domain.PlanAdvanced:
		return r.Advanced
	default:
		return r.Basic
	}
}

// Plans converts the result into the stored quote plans
func (r Result) Plans() domain.QuotePlans {
	return domain.QuotePlans{
		Basic:    r.Basic.ToPlanCost(),
		Standard: r.Standard.ToPlanCost(),
		Advanced: r.Advanced.ToPlanCost(),
	}
}

// NormalizeInstanceType maps unknown values to the standard instance
func NormalizeInstanceType(s string) domain.InstanceType {
	t := domain.InstanceType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := instanceMonthlyCost[t]; ok {
		return t
	}
	return domain.InstanceTypeStandard
}

// NormalizeMigrationType maps unknown values to content migration
func NormalizeMigrationType(s string) domain.MigrationType {
	t := domain.MigrationType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := migrationHours[t]; ok {
		return t
	}
	return domain.MigrationTypeContent
}

// Validate checks the configuration ranges
func (in Input) Validate() error {
	if in.Users < 1 {
		return fmt.Errorf("%w: number of users must be greater than 0", ErrInvalidInput)
	}
	if in.Instances < 1 {
		return fmt.Errorf("%w: number of instances must be greater than 0", ErrInvalidInput)
	}
	if in.DurationMonths < 1 {
		return fmt.Errorf("%w: duration must be greater than 0", ErrInvalidInput)
	}
	if in.DataSizeGB.IsNegative() {
		return fmt.Errorf("%w: data size cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Calculate prices a configuration. Unknown instance and migration types fall
// back to standard and content respectively.
func Calculate(in Input) (Result, error) {
	in.InstanceType = NormalizeInstanceType(string(in.InstanceType))
	in.MigrationType = NormalizeMigrationType(string(in.MigrationType))

	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	baseUser := PerUserRate(in.Users)
	baseGB := PerGBRate(in.DataSizeGB)
	migration := MigrationCost(in.MigrationType)
	instance := InstanceCost(in.InstanceType, in.Instances, in.DurationMonths)
	users := decimal.NewFromInt(int64(in.Users))

	plan := func(name domain.PlanName) PlanBreakdown {
		m := planMultipliers[name]
		perUser := baseUser.Mul(m)
		perGB := baseGB.Mul(m)
		totalUser := users.Mul(perUser)
		data := in.DataSizeGB.Mul(perGB)
		return PlanBreakdown{
			Plan:          name,
			PerUserCost:   perUser,
			PerGBCost:     perGB,
			TotalUserCost: totalUser,
			DataCost:      data,
			MigrationCost: migration,
			InstanceCost:  instance,
			TotalCost:     totalUser.Add(data).Add(migration).Add(instance),
		}
	}

	return Result{
		Input:    in,
		Basic:    plan(domain.PlanBasic),
		Standard: plan(domain.PlanStandard),
		Advanced: plan(domain.PlanAdvanced),
	}, nil
}

// Configuration converts a normalized input back into the stored shape
func (in Input) Configuration() domain.QuoteConfiguration {
	return domain.QuoteConfiguration{
		Users:          in.Users,
		InstanceType:   in.InstanceType,
		Instances:      in.Instances,
		DurationMonths: in.DurationMonths,
		MigrationType:  in.MigrationType,
		DataSizeGB:     in.DataSizeGB.InexactFloat64(),
	}
}

// PerUserRate returns the base per-user rate for a user count
func PerUserRate(users int) decimal.Decimal {
	return lookup(perUserTiers, decimal.NewFromInt(int64(users)))
}

// PerGBRate returns the base per-GB rate for a data volume
func PerGBRate(dataSizeGB decimal.Decimal) decimal.Decimal {
	return lookup(perGBTiers, dataSizeGB)
}

// MigrationHours returns the billable hours of a migration type
func MigrationHours(t domain.MigrationType) int64 {
	return migrationHours[NormalizeMigrationType(string(t))]
}

// MigrationTier returns the service tier (1-3) of a migration type
func MigrationTier(t domain.MigrationType) int {
	return migrationTiers[NormalizeMigrationType(string(t))]
}

// MigrationCost is hours times the hourly rate, independent of plan
func MigrationCost(t domain.MigrationType) decimal.Decimal {
	return decimal.NewFromInt(MigrationHours(t)).Mul(HourlyRate)
}

// InstanceMonthlyCost returns the per instance-month price of an instance type
func InstanceMonthlyCost(t domain.InstanceType) decimal.Decimal {
	return instanceMonthlyCost[NormalizeInstanceType(string(t))]
}

// InstanceCost is the monthly price times instances times months
func InstanceCost(t domain.InstanceType, instances, months int) decimal.Decimal {
	return InstanceMonthlyCost(t).
		Mul(decimal.NewFromInt(int64(instances))).
		Mul(decimal.NewFromInt(int64(months)))
}

// lookup returns the rate of the first tier whose max is not exceeded
func lookup(tiers []tier, v decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if t.max == nil || v.LessThanOrEqual(*t.max) {
			return t.rate
		}
	}
	return tiers[len(tiers)-1].rate
}
