package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Carrier is an insurance carrier offering plans.
type Carrier struct {
	CarrierID      string `json:"carrierID"` // Primary Key (UUID)
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"` // Unique
	Code           string `json:"code"` // Unique short code
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// PlanType is the coverage category of a plan.
type PlanType string

const (
	PlanTypeMedical PlanType = "medical"
	PlanTypeDental  PlanType = "dental"
	PlanTypeVision  PlanType = "vision"
	PlanTypeLife    PlanType = "life"
)

// CoverageTier is the enrollment category determining premium.
type CoverageTier string

const (
	TierEmployeeOnly     CoverageTier = "employee_only"
	TierEmployeeSpouse   CoverageTier = "employee_spouse"
	TierEmployeeChildren CoverageTier = "employee_children"
	TierFamily           CoverageTier = "family"
)

// IsValid reports whether t is a known coverage tier.
func (t CoverageTier) IsValid() bool {
	switch t {
	case TierEmployeeOnly, TierEmployeeSpouse, TierEmployeeChildren, TierFamily:
		return true
	}
	return false
}

// Plan is an insurance plan offered by a carrier.
type Plan struct {
	PlanID       string   `json:"planID"` // Primary Key (UUID)
	CarrierID    string   `json:"carrierID"`
	Name         string   `json:"name"`
	PlanType     PlanType `json:"planType"`
	ExternalCode string   `json:"externalCode"` // Carrier's plan code, unique per carrier
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// PlanPremium is the monthly premium for a plan at a coverage tier, effective
// over a date range.
type PlanPremium struct {
	PremiumID      string          `json:"premiumID"` // Primary Key (UUID)
	PlanID         string          `json:"planID"`
	CoverageTier   CoverageTier    `json:"coverageTier"`
	MonthlyPremium decimal.Decimal `json:"monthlyPremium"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	AuditFields
}

// ContributionMode defines how an employer subsidizes a plan's premium.
type ContributionMode string

const (
	ContributionFull    ContributionMode = "full"
	ContributionPercent ContributionMode = "percent"
	ContributionFixed   ContributionMode = "fixed"
)

// EmployerOffering makes a plan available to an employer's employees with a
// contribution rule. Unique per (employer, plan).
type EmployerOffering struct {
	OfferingID        string           `json:"offeringID"` // Primary Key (UUID)
	EmployerID        string           `json:"employerID"`
	PlanID            string           `json:"planID"`
	IsActive          bool             `json:"isActive"`
	ContributionMode  ContributionMode `json:"contributionMode"`
	ContributionValue decimal.Decimal  `json:"contributionValue"` // Percentage (0-100) or fixed dollar amount
	AuditFields
}

// SplitPremium computes the employer and employee shares of a monthly premium
// under the offering's contribution rule. The employer share never exceeds
// the premium.
func (o *EmployerOffering) SplitPremium(premium decimal.Decimal) (employer, employee decimal.Decimal) {
	switch o.ContributionMode {
	case ContributionFull:
		employer = premium
	case ContributionPercent:
		employer = premium.Mul(o.ContributionValue).Div(decimal.NewFromInt(100)).Round(2)
	case ContributionFixed:
		employer = o.ContributionValue
	}
	if employer.GreaterThan(premium) {
		employer = premium
	}
	if employer.IsNegative() {
		employer = decimal.Zero
	}
	employee = premium.Sub(employer)
	return employer, employee
}
