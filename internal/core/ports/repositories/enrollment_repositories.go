package repositories

import (
	"context"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// PeriodReader defines read operations for enrollment periods
type PeriodReader interface {
	// FindPeriodByID retrieves a specific enrollment period by its ID.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error)

	// ListPeriodsByEmployerID retrieves all enrollment periods of an employer.
	ListPeriodsByEmployerID(ctx context.Context, employerID string) ([]domain.EnrollmentPeriod, error)

	// ListActivePeriodsEndedBefore retrieves active periods whose end date is
	// before the cutoff. Used by the batch expiry command.
	ListActivePeriodsEndedBefore(ctx context.Context, cutoff time.Time) ([]domain.EnrollmentPeriod, error)
}

// PeriodWriter defines write operations for enrollment periods
type PeriodWriter interface {
	// SavePeriod persists a new enrollment period.
	SavePeriod(ctx context.Context, period domain.EnrollmentPeriod) error

	// UpdatePeriod persists changes to an existing enrollment period.
	UpdatePeriod(ctx context.Context, period domain.EnrollmentPeriod) error
}

// EnrollmentReader defines read operations for employee enrollments
type EnrollmentReader interface {
	// FindEnrollmentByID retrieves a specific employee enrollment by its ID.
	FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error)

	// FindEnrollmentByEmployeeAndPeriod retrieves the enrollment of an
	// employee in a period.
	FindEnrollmentByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*domain.EmployeeEnrollment, error)

	// ListEnrollmentsByPeriodID retrieves all enrollments of a period.
	ListEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error)

	// ListEnrollmentsByEmployeeID retrieves all enrollments of an employee.
	ListEnrollmentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EmployeeEnrollment, error)

	// ListUnfinishedEnrollmentsByPeriodID retrieves enrollments of a period
	// that are not in a terminal state.
	ListUnfinishedEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error)
}

// EnrollmentWriter defines write operations for employee enrollments
type EnrollmentWriter interface {
	// SaveEnrollment persists a new employee enrollment. A second creation
	// for the same (employee, period) pair fails with apperrors.ErrDuplicate.
	SaveEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error

	// UpdateEnrollment persists changes to an existing employee enrollment.
	UpdateEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error
}

// PlanEnrollmentManager defines operations for plan-level elections
type PlanEnrollmentManager interface {
	// FindPlanEnrollmentByID retrieves a specific plan enrollment by its ID.
	FindPlanEnrollmentByID(ctx context.Context, planEnrollmentID string) (*domain.PlanEnrollment, error)

	// ListPlanEnrollmentsByEnrollmentID retrieves all elections under an
	// employee enrollment, including covered dependent IDs.
	ListPlanEnrollmentsByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.PlanEnrollment, error)

	// SavePlanEnrollment persists a new plan enrollment and its covered
	// dependents atomically.
	SavePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error

	// UpdatePlanEnrollment persists changes to an existing plan enrollment.
	UpdatePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error
}

// EnrollmentEventWriter defines append-only operations for enrollment events
type EnrollmentEventWriter interface {
	// SaveEnrollmentEvent appends an enrollment event. Events are never
	// mutated or deleted.
	SaveEnrollmentEvent(ctx context.Context, event domain.EnrollmentEvent) error

	// ListEnrollmentEventsByEmployeeID retrieves the events of an employee,
	// most recent first.
	ListEnrollmentEventsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EnrollmentEvent, error)
}

// EnrollmentRepositoryFacade combines all enrollment-related repository interfaces
type EnrollmentRepositoryFacade interface {
	PeriodReader
	PeriodWriter
	EnrollmentReader
	EnrollmentWriter
	PlanEnrollmentManager
	EnrollmentEventWriter
}

// EnrollmentRepositoryWithTx extends EnrollmentRepositoryFacade with transaction capabilities
type EnrollmentRepositoryWithTx interface {
	EnrollmentRepositoryFacade
	TransactionManager
}
