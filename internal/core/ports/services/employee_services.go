package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// EmployeeSvcFacade manages employer census records and their dependents.
type EmployeeSvcFacade interface {
	// CreateEmployee persists a new employee under an employer.
	CreateEmployee(ctx context.Context, access domain.AccessContext, req dto.CreateEmployeeRequest) (*domain.Employee, error)

	// FindEmployeeByID retrieves a specific employee by their ID.
	FindEmployeeByID(ctx context.Context, access domain.AccessContext, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves the employees of an employer the actor may see.
	// An empty employerID lists across all accessible employers.
	ListEmployees(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.Employee, error)

	// UpdateEmployee persists changes to an existing employee.
	UpdateEmployee(ctx context.Context, access domain.AccessContext, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error)

	// AddDependent adds a dependent to an employee and appends a
	// dependent_add enrollment event.
	AddDependent(ctx context.Context, access domain.AccessContext, employeeID string, req dto.CreateDependentRequest) (*domain.Dependent, error)

	// ListDependents retrieves the dependents of an employee.
	ListDependents(ctx context.Context, access domain.AccessContext, employeeID string) ([]domain.Dependent, error)

	// RemoveDependent deletes a dependent and appends a dependent_remove
	// enrollment event.
	RemoveDependent(ctx context.Context, access domain.AccessContext, employeeID, dependentID string) error
}
