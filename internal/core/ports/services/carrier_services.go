package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// CarrierSvcFacade manages carriers, their plans, premiums, and the plan
// offerings employers make available to employees.
type CarrierSvcFacade interface {
	// CreateCarrier persists a new carrier.
	CreateCarrier(ctx context.Context, access domain.AccessContext, req dto.CreateCarrierRequest) (*domain.Carrier, error)

	// FindCarrierByID retrieves a specific carrier by its ID.
	FindCarrierByID(ctx context.Context, access domain.AccessContext, carrierID string) (*domain.Carrier, error)

	// ListCarriers retrieves carriers.
	ListCarriers(ctx context.Context, access domain.AccessContext, onlyActive bool) ([]domain.Carrier, error)

	// CreatePlan persists a new plan under a carrier.
	CreatePlan(ctx context.Context, access domain.AccessContext, req dto.CreatePlanRequest) (*domain.Plan, error)

	// FindPlanByID retrieves a specific plan by its ID.
	FindPlanByID(ctx context.Context, access domain.AccessContext, planID string) (*domain.Plan, error)

	// ListPlansByCarrier retrieves the plans of a carrier.
	ListPlansByCarrier(ctx context.Context, access domain.AccessContext, carrierID string) ([]domain.Plan, error)

	// AddPremium records a premium rate for a plan and coverage tier.
	AddPremium(ctx context.Context, access domain.AccessContext, req dto.CreatePremiumRequest) (*domain.PlanPremium, error)

	// ListPremiums retrieves the premium rows of a plan.
	ListPremiums(ctx context.Context, access domain.AccessContext, planID string) ([]domain.PlanPremium, error)

	// CreateOffering makes a plan available to an employer with a
	// contribution rule.
	CreateOffering(ctx context.Context, access domain.AccessContext, req dto.CreateOfferingRequest) (*domain.EmployerOffering, error)

	// ListOfferingsByEmployer retrieves the offerings of an employer.
	ListOfferingsByEmployer(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.EmployerOffering, error)
}
