package repositories

import (
	"context"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// CarrierReader defines read operations for carrier and plan data
type CarrierReader interface {
	// FindCarrierByID retrieves a specific carrier by its ID.
	FindCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error)

	// ListCarriers retrieves carriers, optionally restricted to active ones.
	ListCarriers(ctx context.Context, onlyActive bool) ([]domain.Carrier, error)

	// FindPlanByID retrieves a specific plan by its ID.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlansByCarrierID retrieves all plans offered by a carrier.
	ListPlansByCarrierID(ctx context.Context, carrierID string) ([]domain.Plan, error)

	// FindPremium retrieves the premium for a plan and coverage tier in
	// effect on the given date.
	FindPremium(ctx context.Context, planID string, tier domain.CoverageTier, onDate time.Time) (*domain.PlanPremium, error)

	// ListPremiumsByPlanID retrieves all premium rows for a plan.
	ListPremiumsByPlanID(ctx context.Context, planID string) ([]domain.PlanPremium, error)
}

// CarrierWriter defines write operations for carrier and plan data
type CarrierWriter interface {
	// SaveCarrier persists a new carrier.
	SaveCarrier(ctx context.Context, carrier domain.Carrier) error

	// UpdateCarrier persists changes to an existing carrier.
	UpdateCarrier(ctx context.Context, carrier domain.Carrier) error

	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error

	// UpdatePlan persists changes to an existing plan.
	UpdatePlan(ctx context.Context, plan domain.Plan) error

	// SavePremium persists a new plan premium.
	SavePremium(ctx context.Context, premium domain.PlanPremium) error
}

// OfferingReader defines read operations for employer plan offerings
type OfferingReader interface {
	// FindOfferingByID retrieves a specific offering by its ID.
	FindOfferingByID(ctx context.Context, offeringID string) (*domain.EmployerOffering, error)

	// FindOffering retrieves the offering of a plan by an employer.
	FindOffering(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error)

	// ListOfferingsByEmployerID retrieves the plans an employer offers.
	ListOfferingsByEmployerID(ctx context.Context, employerID string) ([]domain.EmployerOffering, error)
}

// OfferingWriter defines write operations for employer plan offerings
type OfferingWriter interface {
	// SaveOffering persists a new offering.
	SaveOffering(ctx context.Context, offering domain.EmployerOffering) error

	// UpdateOffering persists changes to an existing offering.
	UpdateOffering(ctx context.Context, offering domain.EmployerOffering) error
}

// CarrierRepositoryFacade combines carrier, plan and offering repository interfaces
type CarrierRepositoryFacade interface {
	CarrierReader
	CarrierWriter
	OfferingReader
	OfferingWriter
}

// CarrierRepositoryWithTx extends CarrierRepositoryFacade with transaction capabilities
type CarrierRepositoryWithTx interface {
	CarrierRepositoryFacade
	TransactionManager
}
