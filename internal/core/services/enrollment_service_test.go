package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/core/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EnrollmentServiceTestSuite struct {
	suite.Suite
	enrollmentRepo *fakeEnrollmentRepo
	employeeRepo   *fakeEmployeeRepo
	brokerRepo     *fakeBrokerRepo
	carrierRepo    *fakeCarrierRepo
	accessSvc      *fakeAccessSvc
	service        portssvc.EnrollmentSvcFacade
}

func (s *EnrollmentServiceTestSuite) SetupTest() {
	s.enrollmentRepo = &fakeEnrollmentRepo{}
	s.employeeRepo = &fakeEmployeeRepo{}
	s.brokerRepo = &fakeBrokerRepo{}
	s.carrierRepo = &fakeCarrierRepo{}
	s.accessSvc = &fakeAccessSvc{}
	s.service = services.NewEnrollmentService(s.enrollmentRepo, s.employeeRepo, s.brokerRepo, s.carrierRepo, s.accessSvc)
}

// wireEmployeeAndEmployer makes the authorization chain resolve: enrollment's
// employee belongs to an employer in the actor's organization.
func (s *EnrollmentServiceTestSuite) wireEmployeeAndEmployer() {
	s.employeeRepo.FindEmployeeByIDFn = func(ctx context.Context, employeeID string) (*domain.Employee, error) {
		return &domain.Employee{EmployeeID: employeeID, EmployerID: "er-1"}, nil
	}
	s.brokerRepo.FindEmployerByIDFn = func(ctx context.Context, employerID string) (*domain.Employer, error) {
		return &domain.Employer{EmployerID: employerID, OrganizationID: "org-emp"}, nil
	}
}

func adminAccess() domain.AccessContext {
	return accessFor(domain.RoleEmployerAdmin, "org-emp")
}

// --- Enrollment transitions ---

func (s *EnrollmentServiceTestSuite) TestStartEnrollment_Success() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentNotStarted}, nil
	}
	var updated *domain.EmployeeEnrollment
	s.enrollmentRepo.UpdateEnrollmentFn = func(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
		updated = &enrollment
		return nil
	}

	got, err := s.service.StartEnrollment(ctx, adminAccess(), "enr-1")

	s.Require().NoError(err)
	s.Equal(domain.EnrollmentInProgress, got.Status)
	s.NotNil(got.StartedAt)
	s.Require().NotNil(updated)
	s.Equal(domain.EnrollmentInProgress, updated.Status)
	s.Equal("actor-1", updated.LastUpdatedBy)
}

func (s *EnrollmentServiceTestSuite) TestSubmitEnrollment_AppendsEvent() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentInProgress}, nil
	}
	var events []domain.EnrollmentEvent
	s.enrollmentRepo.SaveEnrollmentEventFn = func(ctx context.Context, event domain.EnrollmentEvent) error {
		events = append(events, event)
		return nil
	}

	got, err := s.service.SubmitEnrollment(ctx, adminAccess(), "enr-1")

	s.Require().NoError(err)
	s.Equal(domain.EnrollmentSubmitted, got.Status)
	s.Require().Len(events, 1)
	s.Equal(domain.EventEnrollment, events[0].EventType)
	s.Equal("emp-1", events[0].EmployeeID)
	s.Require().NotNil(events[0].ProcessedBy)
	s.Equal("actor-1", *events[0].ProcessedBy)
}

func (s *EnrollmentServiceTestSuite) TestApproveEnrollment_RecordsApprover() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentSubmitted}, nil
	}

	got, err := s.service.ApproveEnrollment(ctx, adminAccess(), "enr-1")

	s.Require().NoError(err)
	s.Equal(domain.EnrollmentApproved, got.Status)
	s.Require().NotNil(got.ApprovedBy)
	s.Equal("actor-1", *got.ApprovedBy)
}

func (s *EnrollmentServiceTestSuite) TestApproveEnrollment_IllegalFromInProgress() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentInProgress}, nil
	}
	s.enrollmentRepo.UpdateEnrollmentFn = func(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
		s.Fail("illegal transition must not persist")
		return nil
	}

	_, err := s.service.ApproveEnrollment(ctx, adminAccess(), "enr-1")

	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *EnrollmentServiceTestSuite) TestTransition_DeniedByAccess() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentNotStarted}, nil
	}
	s.accessSvc.RequirePermissionFn = func(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) error {
		return apperrors.ErrForbidden
	}

	_, err := s.service.StartEnrollment(ctx, adminAccess(), "enr-1")

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *EnrollmentServiceTestSuite) TestEmployeeActsOnOwnEnrollmentOnly() {
	ctx := context.Background()
	selfUser := "user-self"
	s.employeeRepo.FindEmployeeByIDFn = func(ctx context.Context, employeeID string) (*domain.Employee, error) {
		return &domain.Employee{EmployeeID: employeeID, EmployerID: "er-1", UserID: &selfUser}, nil
	}
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentNotStarted}, nil
	}

	own := domain.AccessContext{UserID: selfUser, Role: domain.RoleEmployee, OrganizationID: strPtr("org-emp")}
	_, err := s.service.StartEnrollment(ctx, own, "enr-1")
	s.Require().NoError(err)

	other := domain.AccessContext{UserID: "user-other", Role: domain.RoleEmployee, OrganizationID: strPtr("org-emp")}
	_, err = s.service.StartEnrollment(ctx, other, "enr-1")
	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

// --- Enrollment creation ---

func (s *EnrollmentServiceTestSuite) TestCreateEnrollment_RequiresActivePeriod() {
	ctx := context.Background()
	s.enrollmentRepo.FindPeriodByIDFn = func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
		return &domain.EnrollmentPeriod{PeriodID: periodID, EmployerID: "er-1", Status: domain.PeriodStatusPending}, nil
	}

	_, err := s.service.CreateEnrollment(ctx, adminAccess(), dto.CreateEnrollmentRequest{EmployeeID: "emp-1", PeriodID: "per-1"})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *EnrollmentServiceTestSuite) TestCreateEnrollment_DuplicateConflict() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindPeriodByIDFn = func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
		return &domain.EnrollmentPeriod{PeriodID: periodID, EmployerID: "er-1", Status: domain.PeriodStatusActive}, nil
	}
	s.enrollmentRepo.SaveEnrollmentFn = func(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
		return apperrors.ErrDuplicate
	}

	_, err := s.service.CreateEnrollment(ctx, adminAccess(), dto.CreateEnrollmentRequest{EmployeeID: "emp-1", PeriodID: "per-1"})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *EnrollmentServiceTestSuite) TestCreateEnrollment_RejectsForeignEmployee() {
	ctx := context.Background()
	s.enrollmentRepo.FindPeriodByIDFn = func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
		return &domain.EnrollmentPeriod{PeriodID: periodID, EmployerID: "er-1", Status: domain.PeriodStatusActive}, nil
	}
	s.employeeRepo.FindEmployeeByIDFn = func(ctx context.Context, employeeID string) (*domain.Employee, error) {
		return &domain.Employee{EmployeeID: employeeID, EmployerID: "er-someone-else"}, nil
	}

	_, err := s.service.CreateEnrollment(ctx, adminAccess(), dto.CreateEnrollmentRequest{EmployeeID: "emp-1", PeriodID: "per-1"})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

// --- Plan elections ---

func (s *EnrollmentServiceTestSuite) electionFixture() {
	s.wireEmployeeAndEmployer()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", PeriodID: "per-1", Status: domain.EnrollmentInProgress}, nil
	}
	s.enrollmentRepo.FindPeriodByIDFn = func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
		return &domain.EnrollmentPeriod{
			PeriodID:              periodID,
			EmployerID:            "er-1",
			Status:                domain.PeriodStatusActive,
			AllowWaive:            true,
			CoverageEffectiveDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil
	}
	s.carrierRepo.FindOfferingFn = func(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error) {
		return &domain.EmployerOffering{
			OfferingID:        "off-1",
			EmployerID:        employerID,
			PlanID:            planID,
			IsActive:          true,
			ContributionMode:  domain.ContributionPercent,
			ContributionValue: decimal.NewFromInt(50),
		}, nil
	}
	s.carrierRepo.FindPremiumFn = func(ctx context.Context, planID string, tier domain.CoverageTier, onDate time.Time) (*domain.PlanPremium, error) {
		return &domain.PlanPremium{
			PremiumID:      "prem-1",
			PlanID:         planID,
			CoverageTier:   tier,
			MonthlyPremium: decimal.NewFromInt(400),
		}, nil
	}
}

func (s *EnrollmentServiceTestSuite) TestElectPlan_SplitsPremiumPerOffering() {
	ctx := context.Background()
	s.electionFixture()
	var saved *domain.PlanEnrollment
	s.enrollmentRepo.SavePlanEnrollmentFn = func(ctx context.Context, pe domain.PlanEnrollment) error {
		saved = &pe
		return nil
	}

	got, err := s.service.ElectPlan(ctx, adminAccess(), "enr-1", dto.ElectPlanRequest{
		PlanID:       "plan-1",
		CoverageTier: string(domain.TierFamily),
	})

	s.Require().NoError(err)
	s.Equal(domain.PlanEnrollmentEnrolled, got.Status)
	s.Equal(domain.TierFamily, got.CoverageTier)
	s.True(got.MonthlyPremium.Equal(decimal.NewFromInt(400)))
	s.True(got.EmployerContribution.Equal(decimal.NewFromInt(200)))
	s.True(got.EmployeeContribution.Equal(decimal.NewFromInt(200)))
	s.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), got.EffectiveDate)
	s.Require().NotNil(saved)
	s.Equal(got.PlanEnrollmentID, saved.PlanEnrollmentID)
}

func (s *EnrollmentServiceTestSuite) TestElectPlan_ValidatesCoveredDependents() {
	ctx := context.Background()
	s.electionFixture()
	s.employeeRepo.FindDependentByIDFn = func(ctx context.Context, dependentID string) (*domain.Dependent, error) {
		return &domain.Dependent{DependentID: dependentID, EmployeeID: "emp-other"}, nil
	}

	_, err := s.service.ElectPlan(ctx, adminAccess(), "enr-1", dto.ElectPlanRequest{
		PlanID:              "plan-1",
		CoverageTier:        string(domain.TierFamily),
		CoveredDependentIDs: []string{"dep-1"},
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *EnrollmentServiceTestSuite) TestElectPlan_RequiresInProgressEnrollment() {
	ctx := context.Background()
	s.electionFixture()
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", PeriodID: "per-1", Status: domain.EnrollmentSubmitted}, nil
	}

	_, err := s.service.ElectPlan(ctx, adminAccess(), "enr-1", dto.ElectPlanRequest{
		PlanID:       "plan-1",
		CoverageTier: string(domain.TierEmployeeOnly),
	})

	s.Require().ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (s *EnrollmentServiceTestSuite) TestElectPlan_RejectsInactiveOffering() {
	ctx := context.Background()
	s.electionFixture()
	s.carrierRepo.FindOfferingFn = func(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error) {
		return &domain.EmployerOffering{OfferingID: "off-1", IsActive: false}, nil
	}

	_, err := s.service.ElectPlan(ctx, adminAccess(), "enr-1", dto.ElectPlanRequest{
		PlanID:       "plan-1",
		CoverageTier: string(domain.TierEmployeeOnly),
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *EnrollmentServiceTestSuite) TestWaivePlan_DisallowedByPeriod() {
	ctx := context.Background()
	s.electionFixture()
	s.enrollmentRepo.FindPeriodByIDFn = func(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
		return &domain.EnrollmentPeriod{PeriodID: periodID, EmployerID: "er-1", Status: domain.PeriodStatusActive, AllowWaive: false}, nil
	}

	_, err := s.service.WaivePlan(ctx, adminAccess(), "enr-1", dto.WaivePlanRequest{PlanID: "plan-1"})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *EnrollmentServiceTestSuite) TestWaivePlan_AppendsWaiverEvent() {
	ctx := context.Background()
	s.electionFixture()
	var events []domain.EnrollmentEvent
	s.enrollmentRepo.SaveEnrollmentEventFn = func(ctx context.Context, event domain.EnrollmentEvent) error {
		events = append(events, event)
		return nil
	}

	got, err := s.service.WaivePlan(ctx, adminAccess(), "enr-1", dto.WaivePlanRequest{PlanID: "plan-1", Reason: "covered by spouse"})

	s.Require().NoError(err)
	s.Equal(domain.PlanEnrollmentWaived, got.Status)
	s.True(got.MonthlyPremium.IsZero())
	s.Require().Len(events, 1)
	s.Equal(domain.EventWaiver, events[0].EventType)
	s.Equal("covered by spouse", events[0].Reason)
}

func (s *EnrollmentServiceTestSuite) TestTerminatePlanEnrollment_AppendsTerminationEvent() {
	ctx := context.Background()
	s.wireEmployeeAndEmployer()
	termDate := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)
	s.enrollmentRepo.FindPlanEnrollmentByIDFn = func(ctx context.Context, planEnrollmentID string) (*domain.PlanEnrollment, error) {
		return &domain.PlanEnrollment{PlanEnrollmentID: planEnrollmentID, EnrollmentID: "enr-1", Status: domain.PlanEnrollmentEnrolled}, nil
	}
	s.enrollmentRepo.FindEnrollmentByIDFn = func(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
		return &domain.EmployeeEnrollment{EnrollmentID: enrollmentID, EmployeeID: "emp-1", Status: domain.EnrollmentApproved}, nil
	}
	var events []domain.EnrollmentEvent
	s.enrollmentRepo.SaveEnrollmentEventFn = func(ctx context.Context, event domain.EnrollmentEvent) error {
		events = append(events, event)
		return nil
	}

	got, err := s.service.TerminatePlanEnrollment(ctx, adminAccess(), "pe-1", dto.TerminatePlanEnrollmentRequest{
		TerminationDate: termDate,
		Reason:          "employment ended",
	})

	s.Require().NoError(err)
	s.Equal(domain.PlanEnrollmentTerminated, got.Status)
	s.Require().NotNil(got.TerminationDate)
	s.Equal(termDate, *got.TerminationDate)
	s.Require().Len(events, 1)
	s.Equal(domain.EventTermination, events[0].EventType)
	s.Equal(termDate, events[0].EffectiveDate)
}

// --- Batch expiry ---

func (s *EnrollmentServiceTestSuite) TestExpireOverduePeriods() {
	ctx := context.Background()
	now := time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC)
	s.enrollmentRepo.ListActivePeriodsEndedBeforeFn = func(ctx context.Context, cutoff time.Time) ([]domain.EnrollmentPeriod, error) {
		s.Equal(now, cutoff)
		return []domain.EnrollmentPeriod{
			{PeriodID: "per-1", Status: domain.PeriodStatusActive, EndDate: now.AddDate(0, 0, -3)},
		}, nil
	}
	s.enrollmentRepo.ListUnfinishedEnrollmentsByPeriodIDFn = func(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error) {
		return []domain.EmployeeEnrollment{
			{EnrollmentID: "enr-1", Status: domain.EnrollmentNotStarted},
			{EnrollmentID: "enr-2", Status: domain.EnrollmentSubmitted},
		}, nil
	}
	var closedPeriods []domain.EnrollmentPeriod
	s.enrollmentRepo.UpdatePeriodFn = func(ctx context.Context, period domain.EnrollmentPeriod) error {
		closedPeriods = append(closedPeriods, period)
		return nil
	}
	var expiredEnrollments []domain.EmployeeEnrollment
	s.enrollmentRepo.UpdateEnrollmentFn = func(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
		expiredEnrollments = append(expiredEnrollments, enrollment)
		return nil
	}

	count, err := s.service.ExpireOverduePeriods(ctx, now)

	s.Require().NoError(err)
	s.Equal(2, count)
	s.Require().Len(closedPeriods, 1)
	s.Equal(domain.PeriodStatusClosed, closedPeriods[0].Status)
	s.Require().Len(expiredEnrollments, 2)
	for _, enr := range expiredEnrollments {
		s.Equal(domain.EnrollmentExpired, enr.Status)
	}
}

func (s *EnrollmentServiceTestSuite) TestExpireOverduePeriods_NothingToDo() {
	ctx := context.Background()

	count, err := s.service.ExpireOverduePeriods(ctx, time.Now())

	s.Require().NoError(err)
	s.Zero(count)
}

func TestEnrollmentService(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceTestSuite))
}
