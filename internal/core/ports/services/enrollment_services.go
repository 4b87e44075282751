package services

import (
	"context"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// PeriodSvc manages enrollment periods.
type PeriodSvc interface {
	// CreatePeriod opens a new (pending) enrollment period for an employer.
	CreatePeriod(ctx context.Context, access domain.AccessContext, req dto.CreatePeriodRequest) (*domain.EnrollmentPeriod, error)

	// FindPeriodByID retrieves a specific enrollment period by its ID.
	FindPeriodByID(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error)

	// ListPeriodsByEmployer retrieves the enrollment periods of an employer.
	ListPeriodsByEmployer(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.EnrollmentPeriod, error)

	// ActivatePeriod transitions a pending period to active.
	ActivatePeriod(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error)

	// ClosePeriod transitions an active period to closed.
	ClosePeriod(ctx context.Context, access domain.AccessContext, periodID string) (*domain.EnrollmentPeriod, error)

	// ExpireOverduePeriods closes active periods past their end date and
	// expires their unfinished enrollments. Invoked by the batch command,
	// never by a timer inside the server.
	ExpireOverduePeriods(ctx context.Context, now time.Time) (int, error)
}

// EmployeeEnrollmentSvc drives the per-employee enrollment state machine.
type EmployeeEnrollmentSvc interface {
	// CreateEnrollment creates a not_started enrollment for an employee in a
	// period. Duplicate (employee, period) pairs fail with apperrors.ErrDuplicate.
	CreateEnrollment(ctx context.Context, access domain.AccessContext, req dto.CreateEnrollmentRequest) (*domain.EmployeeEnrollment, error)

	// FindEnrollmentByID retrieves a specific enrollment by its ID.
	FindEnrollmentByID(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error)

	// ListEnrollmentsByPeriod retrieves the enrollments of a period the
	// actor may see.
	ListEnrollmentsByPeriod(ctx context.Context, access domain.AccessContext, periodID string) ([]domain.EmployeeEnrollment, error)

	// StartEnrollment transitions not_started -> in_progress.
	StartEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error)

	// SubmitEnrollment transitions in_progress -> submitted and appends an
	// enrollment event of kind enrollment.
	SubmitEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error)

	// ApproveEnrollment transitions submitted -> approved, recording the
	// approver.
	ApproveEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error)

	// DeclineEnrollment is the administrative terminal transition.
	DeclineEnrollment(ctx context.Context, access domain.AccessContext, enrollmentID string) (*domain.EmployeeEnrollment, error)
}

// PlanElectionSvc manages plan-level elections under an enrollment.
type PlanElectionSvc interface {
	// ElectPlan enrolls the employee in an offered plan at a coverage tier,
	// computing the premium and contribution split and recording covered
	// dependents. Legal only while the enrollment is in_progress.
	ElectPlan(ctx context.Context, access domain.AccessContext, enrollmentID string, req dto.ElectPlanRequest) (*domain.PlanEnrollment, error)

	// WaivePlan records a waived election, permitted only when the period
	// allows waiving. Appends a waiver enrollment event.
	WaivePlan(ctx context.Context, access domain.AccessContext, enrollmentID string, req dto.WaivePlanRequest) (*domain.PlanEnrollment, error)

	// ListPlanEnrollments retrieves the elections under an enrollment.
	ListPlanEnrollments(ctx context.Context, access domain.AccessContext, enrollmentID string) ([]domain.PlanEnrollment, error)

	// TerminatePlanEnrollment ends an enrolled election effective the given
	// date and appends a termination enrollment event naming the operator.
	TerminatePlanEnrollment(ctx context.Context, access domain.AccessContext, planEnrollmentID string, req dto.TerminatePlanEnrollmentRequest) (*domain.PlanEnrollment, error)
}

// EnrollmentEventSvc reads the append-only enrollment event log.
type EnrollmentEventSvc interface {
	// ListEventsByEmployee retrieves the enrollment events of an employee.
	ListEventsByEmployee(ctx context.Context, access domain.AccessContext, employeeID string) ([]domain.EnrollmentEvent, error)
}

// EnrollmentSvcFacade combines all enrollment-related service interfaces
type EnrollmentSvcFacade interface {
	PeriodSvc
	EmployeeEnrollmentSvc
	PlanElectionSvc
	EnrollmentEventSvc
}
