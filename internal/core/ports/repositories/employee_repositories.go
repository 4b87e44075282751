package repositories

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// EmployeeReader defines read operations for employee census data
type EmployeeReader interface {
	// FindEmployeeByID retrieves a specific employee by their ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByUserID retrieves the employee record linked to a portal user.
	FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error)

	// ListEmployeesByEmployerID retrieves all employees of one employer.
	ListEmployeesByEmployerID(ctx context.Context, employerID string) ([]domain.Employee, error)

	// ListEmployeesByEmployerIDs retrieves all employees of the given employers.
	ListEmployeesByEmployerIDs(ctx context.Context, employerIDs []string) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee census data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee persists changes to an existing employee.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
}

// DependentManager defines operations for employee dependents
type DependentManager interface {
	// FindDependentByID retrieves a specific dependent by their ID.
	FindDependentByID(ctx context.Context, dependentID string) (*domain.Dependent, error)

	// ListDependentsByEmployeeID retrieves all dependents of an employee.
	ListDependentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.Dependent, error)

	// SaveDependent persists a new dependent.
	SaveDependent(ctx context.Context, dependent domain.Dependent) error

	// UpdateDependent persists changes to an existing dependent.
	UpdateDependent(ctx context.Context, dependent domain.Dependent) error

	// DeleteDependent removes a dependent.
	DeleteDependent(ctx context.Context, dependentID string) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	DependentManager
}

// EmployeeRepositoryWithTx extends EmployeeRepositoryFacade with transaction capabilities
type EmployeeRepositoryWithTx interface {
	EmployeeRepositoryFacade
	TransactionManager
}
