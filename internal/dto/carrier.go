package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCarrierRequest defines the payload for creating a carrier.
type CreateCarrierRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required,uppercase,max=10"`
}

// CreatePlanRequest defines the payload for creating a plan.
type CreatePlanRequest struct {
	CarrierID    string `json:"carrierID" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	PlanType     string `json:"planType" binding:"required,oneof=medical dental vision life"`
	ExternalCode string `json:"externalCode" binding:"required"`
}

// CreatePremiumRequest defines the payload for recording a plan premium.
type CreatePremiumRequest struct {
	PlanID         string          `json:"planID" binding:"required,uuid"`
	CoverageTier   string          `json:"coverageTier" binding:"required,oneof=employee_only employee_spouse employee_children family"`
	MonthlyPremium decimal.Decimal `json:"monthlyPremium" binding:"required"`
	EffectiveDate  time.Time       `json:"effectiveDate" binding:"required"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
}

// CreateOfferingRequest defines the payload for offering a plan to an employer.
type CreateOfferingRequest struct {
	EmployerID        string          `json:"employerID" binding:"required,uuid"`
	PlanID            string          `json:"planID" binding:"required,uuid"`
	ContributionMode  string          `json:"contributionMode" binding:"required,oneof=full percent fixed"`
	ContributionValue decimal.Decimal `json:"contributionValue"`
}

// CarrierResponse defines the carrier data returned to clients.
type CarrierResponse struct {
	CarrierID string `json:"carrierID"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	IsActive  bool   `json:"isActive"`
}

// ToCarrierResponse maps a domain carrier to its response DTO.
func ToCarrierResponse(c *domain.Carrier) CarrierResponse {
	return CarrierResponse{
		CarrierID: c.CarrierID,
		Name:      c.Name,
		Code:      c.Code,
		IsActive:  c.IsActive,
	}
}

// PlanResponse defines the plan data returned to clients.
type PlanResponse struct {
	PlanID       string `json:"planID"`
	CarrierID    string `json:"carrierID"`
	Name         string `json:"name"`
	PlanType     string `json:"planType"`
	ExternalCode string `json:"externalCode"`
	IsActive     bool   `json:"isActive"`
}

// ToPlanResponse maps a domain plan to its response DTO.
func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:       p.PlanID,
		CarrierID:    p.CarrierID,
		Name:         p.Name,
		PlanType:     string(p.PlanType),
		ExternalCode: p.ExternalCode,
		IsActive:     p.IsActive,
	}
}

// PremiumResponse defines the premium data returned to clients.
type PremiumResponse struct {
	PremiumID      string          `json:"premiumID"`
	PlanID         string          `json:"planID"`
	CoverageTier   string          `json:"coverageTier"`
	MonthlyPremium decimal.Decimal `json:"monthlyPremium"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
}

// ToPremiumResponse maps a domain plan premium to its response DTO.
func ToPremiumResponse(p *domain.PlanPremium) PremiumResponse {
	return PremiumResponse{
		PremiumID:      p.PremiumID,
		PlanID:         p.PlanID,
		CoverageTier:   string(p.CoverageTier),
		MonthlyPremium: p.MonthlyPremium,
		EffectiveDate:  p.EffectiveDate,
		EndDate:        p.EndDate,
	}
}

// OfferingResponse defines the offering data returned to clients.
type OfferingResponse struct {
	OfferingID        string          `json:"offeringID"`
	EmployerID        string          `json:"employerID"`
	PlanID            string          `json:"planID"`
	IsActive          bool            `json:"isActive"`
	ContributionMode  string          `json:"contributionMode"`
	ContributionValue decimal.Decimal `json:"contributionValue"`
}

// ToOfferingResponse maps a domain offering to its response DTO.
func ToOfferingResponse(o *domain.EmployerOffering) OfferingResponse {
	return OfferingResponse{
		OfferingID:        o.OfferingID,
		EmployerID:        o.EmployerID,
		PlanID:            o.PlanID,
		IsActive:          o.IsActive,
		ContributionMode:  string(o.ContributionMode),
		ContributionValue: o.ContributionValue,
	}
}
