package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// carrierService implements the CarrierSvcFacade interface
type carrierService struct {
	BaseService
	carrierRepo portsrepo.CarrierRepositoryWithTx
	brokerRepo  portsrepo.BrokerRepositoryFacade
	accessSvc   portssvc.AccessSvcFacade
}

// NewCarrierService creates a new carrier service with the provided dependencies
func NewCarrierService(
	carrierRepo portsrepo.CarrierRepositoryWithTx,
	brokerRepo portsrepo.BrokerRepositoryFacade,
	accessSvc portssvc.AccessSvcFacade,
) portssvc.CarrierSvcFacade {
	return &carrierService{
		carrierRepo: carrierRepo,
		brokerRepo:  brokerRepo,
		accessSvc:   accessSvc,
	}
}

var _ portssvc.CarrierSvcFacade = (*carrierService)(nil)

// CreateCarrier persists a new carrier. Plans are shared catalog data, so
// writes require the plans create grant without an organization scope.
func (s *carrierService) CreateCarrier(ctx context.Context, access domain.AccessContext, req dto.CreateCarrierRequest) (*domain.Carrier, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionCreate, nil); err != nil {
		return nil, err
	}

	carrier := domain.Carrier{
		CarrierID:   uuid.NewString(),
		Name:        req.Name,
		Code:        req.Code,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.carrierRepo.SaveCarrier(ctx, carrier); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a carrier with this code already exists")
		}
		s.LogError(ctx, err, "Failed to save carrier",
			slog.String("carrier_id", carrier.CarrierID))
		return nil, err
	}

	s.LogInfo(ctx, "Carrier created",
		slog.String("carrier_id", carrier.CarrierID),
		slog.String("code", carrier.Code))
	return &carrier, nil
}

// FindCarrierByID retrieves a specific carrier by its ID.
func (s *carrierService) FindCarrierByID(ctx context.Context, access domain.AccessContext, carrierID string) (*domain.Carrier, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionRead, nil); err != nil {
		return nil, err
	}
	carrier, err := s.carrierRepo.FindCarrierByID(ctx, carrierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find carrier",
				slog.String("carrier_id", carrierID))
		}
		return nil, err
	}
	return carrier, nil
}

// ListCarriers retrieves carriers.
func (s *carrierService) ListCarriers(ctx context.Context, access domain.AccessContext, onlyActive bool) ([]domain.Carrier, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionRead, nil); err != nil {
		return nil, err
	}
	carriers, err := s.carrierRepo.ListCarriers(ctx, onlyActive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list carriers")
		return nil, err
	}
	if carriers == nil {
		return []domain.Carrier{}, nil
	}
	return carriers, nil
}

// CreatePlan persists a new plan under a carrier.
func (s *carrierService) CreatePlan(ctx context.Context, access domain.AccessContext, req dto.CreatePlanRequest) (*domain.Plan, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionCreate, nil); err != nil {
		return nil, err
	}
	if _, err := s.carrierRepo.FindCarrierByID(ctx, req.CarrierID); err != nil {
		return nil, err
	}

	plan := domain.Plan{
		PlanID:       uuid.NewString(),
		CarrierID:    req.CarrierID,
		Name:         req.Name,
		PlanType:     domain.PlanType(req.PlanType),
		ExternalCode: req.ExternalCode,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.carrierRepo.SavePlan(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("a plan with this code already exists for the carrier")
		}
		s.LogError(ctx, err, "Failed to save plan",
			slog.String("plan_id", plan.PlanID))
		return nil, err
	}

	s.LogInfo(ctx, "Plan created",
		slog.String("plan_id", plan.PlanID),
		slog.String("carrier_id", plan.CarrierID))
	return &plan, nil
}

// FindPlanByID retrieves a specific plan by its ID.
func (s *carrierService) FindPlanByID(ctx context.Context, access domain.AccessContext, planID string) (*domain.Plan, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionRead, nil); err != nil {
		return nil, err
	}
	plan, err := s.carrierRepo.FindPlanByID(ctx, planID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find plan",
				slog.String("plan_id", planID))
		}
		return nil, err
	}
	return plan, nil
}

// ListPlansByCarrier retrieves the plans of a carrier.
func (s *carrierService) ListPlansByCarrier(ctx context.Context, access domain.AccessContext, carrierID string) ([]domain.Plan, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionRead, nil); err != nil {
		return nil, err
	}
	plans, err := s.carrierRepo.ListPlansByCarrierID(ctx, carrierID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plans",
			slog.String("carrier_id", carrierID))
		return nil, err
	}
	if plans == nil {
		return []domain.Plan{}, nil
	}
	return plans, nil
}

// AddPremium records a premium rate for a plan and coverage tier.
func (s *carrierService) AddPremium(ctx context.Context, access domain.AccessContext, req dto.CreatePremiumRequest) (*domain.PlanPremium, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionUpdate, nil); err != nil {
		return nil, err
	}

	tier := domain.CoverageTier(req.CoverageTier)
	if !tier.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown coverage tier: " + req.CoverageTier)
	}
	if req.MonthlyPremium.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationFailedError("monthly premium must be positive")
	}
	if _, err := s.carrierRepo.FindPlanByID(ctx, req.PlanID); err != nil {
		return nil, err
	}

	premium := domain.PlanPremium{
		PremiumID:      uuid.NewString(),
		PlanID:         req.PlanID,
		CoverageTier:   tier,
		MonthlyPremium: req.MonthlyPremium,
		EffectiveDate:  req.EffectiveDate,
		EndDate:        req.EndDate,
		AuditFields:    domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.carrierRepo.SavePremium(ctx, premium); err != nil {
		s.LogError(ctx, err, "Failed to save premium",
			slog.String("plan_id", req.PlanID))
		return nil, err
	}
	return &premium, nil
}

// ListPremiums retrieves the premium rows of a plan.
func (s *carrierService) ListPremiums(ctx context.Context, access domain.AccessContext, planID string) ([]domain.PlanPremium, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionRead, nil); err != nil {
		return nil, err
	}
	premiums, err := s.carrierRepo.ListPremiumsByPlanID(ctx, planID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list premiums",
			slog.String("plan_id", planID))
		return nil, err
	}
	if premiums == nil {
		return []domain.PlanPremium{}, nil
	}
	return premiums, nil
}

// CreateOffering makes a plan available to an employer with a contribution
// rule.
func (s *carrierService) CreateOffering(ctx context.Context, access domain.AccessContext, req dto.CreateOfferingRequest) (*domain.EmployerOffering, error) {
	employer, err := s.brokerRepo.FindEmployerByID(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourcePlans, domain.ActionManage, &employer.OrganizationID); err != nil {
		return nil, err
	}
	if _, err := s.carrierRepo.FindPlanByID(ctx, req.PlanID); err != nil {
		return nil, err
	}

	mode := domain.ContributionMode(req.ContributionMode)
	if mode == domain.ContributionPercent {
		hundred := decimal.NewFromInt(100)
		if req.ContributionValue.IsNegative() || req.ContributionValue.GreaterThan(hundred) {
			return nil, apperrors.NewValidationFailedError("percent contribution must be between 0 and 100")
		}
	}
	if mode == domain.ContributionFixed && req.ContributionValue.IsNegative() {
		return nil, apperrors.NewValidationFailedError("fixed contribution must not be negative")
	}

	offering := domain.EmployerOffering{
		OfferingID:        uuid.NewString(),
		EmployerID:        req.EmployerID,
		PlanID:            req.PlanID,
		IsActive:          true,
		ContributionMode:  mode,
		ContributionValue: req.ContributionValue,
		AuditFields:       domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.carrierRepo.SaveOffering(ctx, offering); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("this plan is already offered to the employer")
		}
		s.LogError(ctx, err, "Failed to save offering",
			slog.String("employer_id", req.EmployerID),
			slog.String("plan_id", req.PlanID))
		return nil, err
	}

	s.LogInfo(ctx, "Offering created",
		slog.String("offering_id", offering.OfferingID),
		slog.String("employer_id", req.EmployerID))
	return &offering, nil
}

// ListOfferingsByEmployer retrieves the offerings of an employer.
func (s *carrierService) ListOfferingsByEmployer(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.EmployerOffering, error) {
	employer, err := s.brokerRepo.FindEmployerByID(ctx, employerID)
	if err != nil {
		return nil, err
	}
	visible, err := s.accessSvc.FilterEmployers(ctx, access, []domain.Employer{*employer})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("employer", employerID)
	}

	offerings, err := s.carrierRepo.ListOfferingsByEmployerID(ctx, employerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list offerings",
			slog.String("employer_id", employerID))
		return nil, err
	}
	if offerings == nil {
		return []domain.EmployerOffering{}, nil
	}
	return offerings, nil
}
