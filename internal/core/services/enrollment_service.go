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

// enrollmentService implements the EnrollmentSvcFacade interface.
type enrollmentService struct {
	BaseService
	enrollmentRepo portsrepo.EnrollmentRepositoryWithTx
	employeeRepo   portsrepo.EmployeeRepositoryFacade
	brokerRepo     portsrepo.BrokerRepositoryFacade
	carrierRepo    portsrepo.CarrierRepositoryFacade
	accessSvc      portssvc.AccessSvcFacade
}

// NewEnrollmentService creates a new enrollment service with the provided dependencies
func NewEnrollmentService(
	enrollmentRepo portsrepo.EnrollmentRepositoryWithTx,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	brokerRepo portsrepo.BrokerRepositoryFacade,
	carrierRepo portsrepo.CarrierRepositoryFacade,
	accessSvc portssvc.AccessSvcFacade,
) portssvc.EnrollmentSvcFacade {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		employeeRepo:   employeeRepo,
		brokerRepo:     brokerRepo,
		carrierRepo:    carrierRepo,
		accessSvc:      accessSvc,
	}
}

var _ portssvc.EnrollmentSvcFacade = (*enrollmentService)(nil)

// CreatePeriod opens a new (pending) enrollment period for an employer.
func (s *enrollmentService) CreatePeriod(ctx context.Context, access domain.AccessContext, req dto.CreatePeriodRequest) (*domain.EnrollmentPeriod, error) {
	employer, err := s.brokerRepo.FindEmployerByID(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEnrollments, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, apperrors.NewValidationFailedError("end date must be after start date")
	}

	allowWaive := true
	if req.AllowWaive != nil {
		allowWaive = *req.AllowWaive
	}

	period := domain.EnrollmentPeriod{
		PeriodID:   uuid.NewString(),
		EmployerID: req.EmployerID,
		Name:       req.Name,
		PeriodType: domain.PeriodType(req.PeriodType),
		Status:     domain.PeriodStatusPending,

		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		CoverageEffectiveDate: req.CoverageEffectiveDate,

		AllowWaive:      allowWaive,
		RequireAllPlans: req.RequireAllPlans,

		AuditFields: domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.enrollmentRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save enrollment period",
			slog.String("employer_id", req.EmployerID))
		return nil, err
	}

	s.LogInfo(ctx, "Enrollment period created",
		slog.String("period_id", period.PeriodID),
		slog.String("employer_id", period.EmployerID))
	return &period, nil
}

// FindPeriodByID retrieves a specific enrollment period by its ID.
func (s *enrollmentService) FindPeriodByID(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error) {
	period, err := s.enrollmentRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find enrollment period",
				slog.String("period_id", periodID))
		}
		return nil, err
	}
	if _, err := s.visibleEmployer(ctx, access, period.EmployerID); err != nil {
		return nil, apperrors.NewNotFoundError("enrollment period", periodID)
	}
	return period, nil
}

// ListPeriodsByEmployer retrieves the enrollment periods of an employer.
func (s *enrollmentService) ListPeriodsByEmployer(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.EnrollmentPeriod, error) {
	if _, err := s.visibleEmployer(ctx, access, employerID); err != nil {
		return nil, err
	}
	periods, err := s.enrollmentRepo.ListPeriodsByEmployerID(ctx, employerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollment periods",
			slog.String("employer_id", employerID))
		return nil, err
	}
	if periods == nil {
		return []domain.EnrollmentPeriod{}, nil
	}
	return periods, nil
}

// ActivatePeriod transitions a pending period to active.
func (s *enrollmentService) ActivatePeriod(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error) {
	return s.transitionPeriod(ctx, access, periodID, func(p *domain.EnrollmentPeriod) error { return p.Activate() })
}

// ClosePeriod transitions an active period to closed.
func (s *enrollmentService) ClosePeriod(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error) {
	return s.transitionPeriod(ctx, access, periodID, func(p *domain.EnrollmentPeriod) error { return p.Close() })
}

func (s *enrollmentService) transitionPeriod(ctx context.Context, access domain.AccessContext, periodID string, transition func(*domain.EnrollmentPeriod) error) (*domain.EnrollmentPeriod, error) {
	period, err := s.enrollmentRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	employer, err := s.visibleEmployer(ctx, access, period.EmployerID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("enrollment period", periodID)
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEnrollments, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	if err := transition(period); err != nil {
		return nil, err
	}
	period.Touch(access.UserID, time.Now())
	if err := s.enrollmentRepo.UpdatePeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to update enrollment period",
			slog.String("period_id", periodID))
		return nil, err
	}

	s.LogInfo(ctx, "Enrollment period transitioned",
		slog.String("period_id", periodID),
		slog.String("status", string(period.Status)))
	return period, nil
}

// ExpireOverduePeriods closes active periods past their end date and expires
// their unfinished enrollments. Invoked by the batch command; the server
// never schedules this itself. Returns the number of enrollments expired.
func (s *enrollmentService) ExpireOverduePeriods(ctx context.Context, now time.Time) (int, error) {
	periods, err := s.enrollmentRepo.ListActivePeriodsEndedBefore(ctx, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue periods")
		return 0, err
	}

	expired := 0
	for i := range periods {
		period := periods[i]
		if err := period.Close(); err != nil {
			continue
		}
		period.Touch("system", now)
		if err := s.enrollmentRepo.UpdatePeriod(ctx, period); err != nil {
			s.LogError(ctx, err, "Failed to close overdue period",
				slog.String("period_id", period.PeriodID))
			continue
		}

		unfinished, err := s.enrollmentRepo.ListUnfinishedEnrollmentsByPeriodID(ctx, period.PeriodID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list unfinished enrollments",
				slog.String("period_id", period.PeriodID))
			continue
		}
		for j := range unfinished {
			enrollment := unfinished[j]
			if err := enrollment.Expire(now); err != nil {
				continue
			}
			enrollment.Touch("system", now)
			if err := s.enrollmentRepo.UpdateEnrollment(ctx, enrollment); err != nil {
				s.LogError(ctx, err, "Failed to expire enrollment",
					slog.String("enrollment_id", enrollment.EnrollmentID))
				continue
			}
			expired++
		}

		s.LogInfo(ctx, "Overdue period closed",
			slog.String("period_id", period.PeriodID),
			slog.Int("expired_enrollments", len(unfinished)))
	}
	return expired, nil
}

// CreateEnrollment creates a not_started enrollment for an employee in a
// period.
func (s *enrollmentService) CreateEnrollment(ctx context.Context, access domain.AccessContext, req dto.CreateEnrollmentRequest) (*domain.EmployeeEnrollment, error) {
	period, err := s.enrollmentRepo.FindPeriodByID(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodStatusActive {
		return nil, apperrors.NewValidationFailedError("enrollment period is not active")
	}

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.EmployerID != period.EmployerID {
		return nil, apperrors.NewValidationFailedError("employee does not belong to the period's employer")
	}

	employer, err := s.visibleEmployer(ctx, access, period.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEnrollments, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	enrollment := domain.EmployeeEnrollment{
		EnrollmentID: uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		PeriodID:     req.PeriodID,
		Status:       domain.EnrollmentNotStarted,
		AuditFields:  domain.NewAuditFields(access.UserID, time.Now()),
	}
	if err := s.enrollmentRepo.SaveEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("employee already has an enrollment in this period")
		}
		s.LogError(ctx, err, "Failed to save enrollment",
			slog.String("employee_id", req.EmployeeID),
			slog.String("period_id", req.PeriodID))
		return nil, err
	}

	s.LogInfo(ctx, "Enrollment created",
		slog.String("enrollment_id", enrollment.EnrollmentID),
		slog.String("employee_id", req.EmployeeID))
	return &enrollment, nil
}

// FindEnrollmentByID retrieves a specific enrollment by its ID.
func (s *enrollmentService) FindEnrollmentByID(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	enrollment, err := s.enrollmentRepo.FindEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find enrollment",
				slog.String("enrollment_id", enrollmentID))
		}
		return nil, err
	}

	visible, err := s.accessSvc.FilterEnrollments(ctx, access, []domain.EmployeeEnrollment{*enrollment})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("enrollment", enrollmentID)
	}
	return enrollment, nil
}

// ListEnrollmentsByPeriod retrieves the enrollments of a period the actor
// may see.
func (s *enrollmentService) ListEnrollmentsByPeriod(ctx context.Context, access domain.AccessContext, periodID string) ([]domain.EmployeeEnrollment, error) {
	if _, err := s.FindPeriodByID(ctx, access, periodID); err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.ListEnrollmentsByPeriodID(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollments",
			slog.String("period_id", periodID))
		return nil, err
	}
	return s.accessSvc.FilterEnrollments(ctx, access, enrollments)
}

// StartEnrollment transitions not_started -> in_progress.
func (s *enrollmentService) StartEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	return s.transitionEnrollment(ctx, access, enrollmentID, func(e *domain.EmployeeEnrollment, now time.Time) error {
		return e.Start(now)
	}, nil)
}

// SubmitEnrollment transitions in_progress -> submitted and appends an
// enrollment event.
func (s *enrollmentService) SubmitEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	return s.transitionEnrollment(ctx, access, enrollmentID, func(e *domain.EmployeeEnrollment, now time.Time) error {
		return e.Submit(now)
	}, func(e *domain.EmployeeEnrollment, now time.Time) *domain.EnrollmentEvent {
		return &domain.EnrollmentEvent{
			EventID:       uuid.NewString(),
			EmployeeID:    e.EmployeeID,
			EventType:     domain.EventEnrollment,
			EffectiveDate: now,
			Reason:        "enrollment submitted",
			ProcessedBy:   &access.UserID,
			ProcessedAt:   now,
		}
	})
}

// ApproveEnrollment transitions submitted -> approved, recording the approver.
func (s *enrollmentService) ApproveEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	return s.transitionEnrollment(ctx, access, enrollmentID, func(e *domain.EmployeeEnrollment, now time.Time) error {
		return e.Approve(access.UserID, now)
	}, nil)
}

// DeclineEnrollment is the administrative terminal transition.
func (s *enrollmentService) DeclineEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	return s.transitionEnrollment(ctx, access, enrollmentID, func(e *domain.EmployeeEnrollment, now time.Time) error {
		return e.Decline(now)
	}, nil)
}

// transitionEnrollment loads the enrollment, authorizes the actor, applies
// the transition, persists, and optionally appends one enrollment event. An
// illegal transition leaves the record unchanged.
func (s *enrollmentService) transitionEnrollment(
	ctx context.Context,
	access domain.AccessContext,
	enrollmentID string,
	transition func(*domain.EmployeeEnrollment, time.Time) error,
	eventFor func(*domain.EmployeeEnrollment, time.Time) *domain.EnrollmentEvent,
) (*domain.EmployeeEnrollment, error) {
	enrollment, err := s.FindEnrollmentByID(ctx, access, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEnrollmentWrite(ctx, access, enrollment); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := transition(enrollment, now); err != nil {
		return nil, err
	}
	enrollment.Touch(access.UserID, now)
	if err := s.enrollmentRepo.UpdateEnrollment(ctx, *enrollment); err != nil {
		s.LogError(ctx, err, "Failed to update enrollment",
			slog.String("enrollment_id", enrollmentID))
		return nil, err
	}

	if eventFor != nil {
		if event := eventFor(enrollment, now); event != nil {
			if err := s.enrollmentRepo.SaveEnrollmentEvent(ctx, *event); err != nil {
				s.LogError(ctx, err, "Failed to append enrollment event",
					slog.String("enrollment_id", enrollmentID))
			}
		}
	}

	s.LogInfo(ctx, "Enrollment transitioned",
		slog.String("enrollment_id", enrollmentID),
		slog.String("status", string(enrollment.Status)))
	return enrollment, nil
}

// authorizeEnrollmentWrite allows employees to act on their own enrollment;
// everyone else needs the enrollments update grant scoped to the employer's
// organization.
func (s *enrollmentService) authorizeEnrollmentWrite(ctx context.Context, access domain.AccessContext, enrollment *domain.EmployeeEnrollment) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, enrollment.EmployeeID)
	if err != nil {
		return err
	}
	if access.EffectiveRole() == domain.RoleEmployee {
		if employee.UserID != nil && *employee.UserID == access.UserID {
			return nil
		}
		return apperrors.ErrForbidden
	}

	employer, err := s.brokerRepo.FindEmployerByID(ctx, employee.EmployerID)
	if err != nil {
		return err
	}
	return s.accessSvc.RequirePermission(ctx, access, domain.ResourceEnrollments, domain.ActionUpdate, &employer.OrganizationID)
}

// ElectPlan enrolls the employee in an offered plan at a coverage tier. The
// premium comes from the plan's rate effective on the period's coverage
// date; the contribution split follows the employer's offering.
func (s *enrollmentService) ElectPlan(ctx context.Context, access domain.AccessContext, enrollmentID string, req dto.ElectPlanRequest) (*domain.PlanEnrollment, error) {
	enrollment, err := s.FindEnrollmentByID(ctx, access, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEnrollmentWrite(ctx, access, enrollment); err != nil {
		return nil, err
	}
	if enrollment.Status != domain.EnrollmentInProgress {
		return nil, apperrors.NewInvalidTransitionError("enrollment", string(enrollment.Status), "elect plan")
	}

	tier := domain.CoverageTier(req.CoverageTier)
	if !tier.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown coverage tier: " + req.CoverageTier)
	}

	period, err := s.enrollmentRepo.FindPeriodByID(ctx, enrollment.PeriodID)
	if err != nil {
		return nil, err
	}
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, enrollment.EmployeeID)
	if err != nil {
		return nil, err
	}

	offering, err := s.carrierRepo.FindOffering(ctx, employee.EmployerID, req.PlanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("plan is not offered to this employer")
		}
		return nil, err
	}
	if !offering.IsActive {
		return nil, apperrors.NewValidationFailedError("plan offering is no longer active")
	}

	premium, err := s.carrierRepo.FindPremium(ctx, req.PlanID, tier, period.CoverageEffectiveDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("no premium on file for this tier and coverage date")
		}
		return nil, err
	}

	if err := s.validateCoveredDependents(ctx, enrollment.EmployeeID, req.CoveredDependentIDs); err != nil {
		return nil, err
	}

	employerShare, employeeShare := offering.SplitPremium(premium.MonthlyPremium)
	now := time.Now()
	pe := domain.PlanEnrollment{
		PlanEnrollmentID: uuid.NewString(),
		EnrollmentID:     enrollmentID,
		PlanID:           req.PlanID,
		Status:           domain.PlanEnrollmentEnrolled,

		CoverageTier:         tier,
		MonthlyPremium:       premium.MonthlyPremium,
		EmployeeContribution: employeeShare,
		EmployerContribution: employerShare,

		EffectiveDate:       period.CoverageEffectiveDate,
		CoveredDependentIDs: req.CoveredDependentIDs,

		AuditFields: domain.NewAuditFields(access.UserID, now),
	}
	if err := s.enrollmentRepo.SavePlanEnrollment(ctx, pe); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an election for this plan already exists")
		}
		s.LogError(ctx, err, "Failed to save plan enrollment",
			slog.String("enrollment_id", enrollmentID),
			slog.String("plan_id", req.PlanID))
		return nil, err
	}

	s.LogInfo(ctx, "Plan elected",
		slog.String("plan_enrollment_id", pe.PlanEnrollmentID),
		slog.String("plan_id", req.PlanID),
		slog.String("coverage_tier", string(tier)))
	return &pe, nil
}

// WaivePlan records a waived election, permitted only when the period allows
// waiving. Appends a waiver enrollment event.
func (s *enrollmentService) WaivePlan(ctx context.Context, access domain.AccessContext, enrollmentID string, req dto.WaivePlanRequest) (*domain.PlanEnrollment, error) {
	enrollment, err := s.FindEnrollmentByID(ctx, access, enrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEnrollmentWrite(ctx, access, enrollment); err != nil {
		return nil, err
	}
	if enrollment.Status != domain.EnrollmentInProgress {
		return nil, apperrors.NewInvalidTransitionError("enrollment", string(enrollment.Status), "waive plan")
	}

	period, err := s.enrollmentRepo.FindPeriodByID(ctx, enrollment.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.AllowWaive {
		return nil, apperrors.NewValidationFailedError("this enrollment period does not allow waiving coverage")
	}

	now := time.Now()
	pe := domain.PlanEnrollment{
		PlanEnrollmentID: uuid.NewString(),
		EnrollmentID:     enrollmentID,
		PlanID:           req.PlanID,
		Status:           domain.PlanEnrollmentWaived,

		MonthlyPremium:       decimal.Zero,
		EmployeeContribution: decimal.Zero,
		EmployerContribution: decimal.Zero,

		EffectiveDate: period.CoverageEffectiveDate,
		AuditFields:   domain.NewAuditFields(access.UserID, now),
	}
	if err := s.enrollmentRepo.SavePlanEnrollment(ctx, pe); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an election for this plan already exists")
		}
		s.LogError(ctx, err, "Failed to save waived plan enrollment",
			slog.String("enrollment_id", enrollmentID),
			slog.String("plan_id", req.PlanID))
		return nil, err
	}

	event := domain.EnrollmentEvent{
		EventID:          uuid.NewString(),
		EmployeeID:       enrollment.EmployeeID,
		EventType:        domain.EventWaiver,
		EffectiveDate:    period.CoverageEffectiveDate,
		PlanEnrollmentID: &pe.PlanEnrollmentID,
		Reason:           req.Reason,
		ProcessedBy:      &access.UserID,
		ProcessedAt:      now,
	}
	if err := s.enrollmentRepo.SaveEnrollmentEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to append waiver event",
			slog.String("plan_enrollment_id", pe.PlanEnrollmentID))
	}

	s.LogInfo(ctx, "Plan waived",
		slog.String("plan_enrollment_id", pe.PlanEnrollmentID),
		slog.String("plan_id", req.PlanID))
	return &pe, nil
}

// ListPlanEnrollments retrieves the elections under an enrollment.
func (s *enrollmentService) ListPlanEnrollments(ctx context.Context, access domain.AccessContext, enrollmentID string) ([]domain.PlanEnrollment, error) {
	if _, err := s.FindEnrollmentByID(ctx, access, enrollmentID); err != nil {
		return nil, err
	}
	elections, err := s.enrollmentRepo.ListPlanEnrollmentsByEnrollmentID(ctx, enrollmentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plan enrollments",
			slog.String("enrollment_id", enrollmentID))
		return nil, err
	}
	if elections == nil {
		return []domain.PlanEnrollment{}, nil
	}
	return elections, nil
}

// TerminatePlanEnrollment ends an enrolled election effective the given date
// and appends a termination event naming the operator.
func (s *enrollmentService) TerminatePlanEnrollment(ctx context.Context, access domain.AccessContext, planEnrollmentID string, req dto.TerminatePlanEnrollmentRequest) (*domain.PlanEnrollment, error) {
	pe, err := s.enrollmentRepo.FindPlanEnrollmentByID(ctx, planEnrollmentID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.FindEnrollmentByID(ctx, access, pe.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeEnrollmentWrite(ctx, access, enrollment); err != nil {
		return nil, err
	}

	if err := pe.Terminate(req.TerminationDate); err != nil {
		return nil, err
	}
	now := time.Now()
	pe.Touch(access.UserID, now)
	if err := s.enrollmentRepo.UpdatePlanEnrollment(ctx, *pe); err != nil {
		s.LogError(ctx, err, "Failed to terminate plan enrollment",
			slog.String("plan_enrollment_id", planEnrollmentID))
		return nil, err
	}

	event := domain.EnrollmentEvent{
		EventID:          uuid.NewString(),
		EmployeeID:       enrollment.EmployeeID,
		EventType:        domain.EventTermination,
		EffectiveDate:    req.TerminationDate,
		PlanEnrollmentID: &pe.PlanEnrollmentID,
		Reason:           req.Reason,
		ProcessedBy:      &access.UserID,
		ProcessedAt:      now,
	}
	if err := s.enrollmentRepo.SaveEnrollmentEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to append termination event",
			slog.String("plan_enrollment_id", planEnrollmentID))
	}

	s.LogInfo(ctx, "Plan enrollment terminated",
		slog.String("plan_enrollment_id", planEnrollmentID),
		slog.Time("termination_date", req.TerminationDate))
	return pe, nil
}

// ListEventsByEmployee retrieves the enrollment events of an employee.
func (s *enrollmentService) ListEventsByEmployee(ctx context.Context, access domain.AccessContext, employeeID string) ([]domain.EnrollmentEvent, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	visible, err := s.accessSvc.FilterEmployees(ctx, access, []domain.Employee{*employee})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("employee", employeeID)
	}

	events, err := s.enrollmentRepo.ListEnrollmentEventsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list enrollment events",
			slog.String("employee_id", employeeID))
		return nil, err
	}
	if events == nil {
		return []domain.EnrollmentEvent{}, nil
	}
	return events, nil
}

// visibleEmployer loads an employer and verifies the actor may see it.
func (s *enrollmentService) visibleEmployer(ctx context.Context, access domain.AccessContext, employerID string) (*domain.Employer, error) {
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
	return employer, nil
}

// validateCoveredDependents checks every covered dependent belongs to the
// enrolling employee.
func (s *enrollmentService) validateCoveredDependents(ctx context.Context, employeeID string, dependentIDs []string) error {
	for _, id := range dependentIDs {
		dep, err := s.employeeRepo.FindDependentByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("unknown dependent: " + id)
			}
			return err
		}
		if dep.EmployeeID != employeeID {
			return apperrors.NewValidationFailedError("dependent does not belong to this employee")
		}
	}
	return nil
}
