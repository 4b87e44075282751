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
)

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	employeeRepo   portsrepo.EmployeeRepositoryWithTx
	brokerRepo     portsrepo.BrokerRepositoryFacade
	enrollmentRepo portsrepo.EnrollmentEventWriter
	accessSvc      portssvc.AccessSvcFacade
}

// NewEmployeeService creates a new employee service with the provided dependencies
func NewEmployeeService(
	employeeRepo portsrepo.EmployeeRepositoryWithTx,
	brokerRepo portsrepo.BrokerRepositoryFacade,
	enrollmentRepo portsrepo.EnrollmentEventWriter,
	accessSvc portssvc.AccessSvcFacade,
) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo:   employeeRepo,
		brokerRepo:     brokerRepo,
		enrollmentRepo: enrollmentRepo,
		accessSvc:      accessSvc,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// CreateEmployee persists a new census record under an employer.
func (s *employeeService) CreateEmployee(ctx context.Context, access domain.AccessContext, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	employer, err := s.brokerRepo.FindEmployerByID(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionCreate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	employee := domain.Employee{
		EmployeeID:     uuid.NewString(),
		EmployerID:     req.EmployerID,
		EmployeeNumber: req.EmployeeNumber,

		FirstName:     req.FirstName,
		LastName:      req.LastName,
		MiddleInitial: req.MiddleInitial,
		SSN:           req.SSN,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		MaritalStatus: domain.MaritalStatus(req.MaritalStatus),

		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,

		HireDate:         req.HireDate,
		JobTitle:         req.JobTitle,
		Department:       req.Department,
		Salary:           req.Salary,
		HoursPerWeek:     req.HoursPerWeek,
		EmploymentStatus: "active",

		MedicalCoverageTier: domain.CoverageTier(req.MedicalCoverageTier),
		DentalCoverageTier:  domain.CoverageTier(req.DentalCoverageTier),
		VisionCoverageTier:  domain.CoverageTier(req.VisionCoverageTier),

		AuditFields: domain.NewAuditFields(access.UserID, time.Now()),
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("an employee with this number already exists for the employer")
		}
		s.LogError(ctx, err, "Failed to save employee",
			slog.String("employee_id", employee.EmployeeID))
		return nil, err
	}

	s.LogInfo(ctx, "Employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("employer_id", employee.EmployerID))
	return &employee, nil
}

// FindEmployeeByID retrieves a specific employee. Records outside the actor's
// visibility look like missing records.
func (s *employeeService) FindEmployeeByID(ctx context.Context, access domain.AccessContext, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find employee",
				slog.String("employee_id", employeeID))
		}
		return nil, err
	}

	visible, err := s.accessSvc.FilterEmployees(ctx, access, []domain.Employee{*employee})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("employee", employeeID)
	}
	return employee, nil
}

// ListEmployees retrieves the employees of an employer the actor may see. An
// empty employerID lists across all accessible employers.
func (s *employeeService) ListEmployees(ctx context.Context, access domain.AccessContext, employerID string) ([]domain.Employee, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionRead, nil); err != nil {
		return nil, err
	}

	var employees []domain.Employee
	var err error
	if employerID != "" {
		employees, err = s.employeeRepo.ListEmployeesByEmployerID(ctx, employerID)
	} else {
		employers, lerr := s.brokerRepo.ListEmployers(ctx)
		if lerr != nil {
			return nil, lerr
		}
		accessible, ferr := s.accessSvc.FilterEmployers(ctx, access, employers)
		if ferr != nil {
			return nil, ferr
		}
		ids := make([]string, 0, len(accessible))
		for _, e := range accessible {
			ids = append(ids, e.EmployerID)
		}
		if len(ids) == 0 {
			return []domain.Employee{}, nil
		}
		employees, err = s.employeeRepo.ListEmployeesByEmployerIDs(ctx, ids)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list employees",
			slog.String("employer_id", employerID))
		return nil, err
	}
	return s.accessSvc.FilterEmployees(ctx, access, employees)
}

// UpdateEmployee persists changes to an existing census record.
func (s *employeeService) UpdateEmployee(ctx context.Context, access domain.AccessContext, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	employee, err := s.FindEmployeeByID(ctx, access, employeeID)
	if err != nil {
		return nil, err
	}

	employer, err := s.brokerRepo.FindEmployerByID(ctx, employee.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}
	if req.EmploymentStatus != nil {
		employee.EmploymentStatus = *req.EmploymentStatus
	}
	if req.MedicalCoverageTier != nil {
		employee.MedicalCoverageTier = domain.CoverageTier(*req.MedicalCoverageTier)
	}
	if req.DentalCoverageTier != nil {
		employee.DentalCoverageTier = domain.CoverageTier(*req.DentalCoverageTier)
	}
	if req.VisionCoverageTier != nil {
		employee.VisionCoverageTier = domain.CoverageTier(*req.VisionCoverageTier)
	}
	employee.Touch(access.UserID, time.Now())

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		s.LogError(ctx, err, "Failed to update employee",
			slog.String("employee_id", employeeID))
		return nil, err
	}
	return employee, nil
}

// AddDependent adds a dependent to an employee and appends a dependent_add
// enrollment event.
func (s *employeeService) AddDependent(ctx context.Context, access domain.AccessContext, employeeID string, req dto.CreateDependentRequest) (*domain.Dependent, error) {
	employee, err := s.FindEmployeeByID(ctx, access, employeeID)
	if err != nil {
		return nil, err
	}

	employer, err := s.brokerRepo.FindEmployerByID(ctx, employee.EmployerID)
	if err != nil {
		return nil, err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return nil, err
	}

	now := time.Now()
	dependent := domain.Dependent{
		DependentID:  uuid.NewString(),
		EmployeeID:   employeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		SSN:          req.SSN,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Relationship: domain.Relationship(req.Relationship),

		MedicalCoverage: req.MedicalCoverage,
		DentalCoverage:  req.DentalCoverage,
		VisionCoverage:  req.VisionCoverage,

		AuditFields: domain.NewAuditFields(access.UserID, now),
	}

	if err := s.employeeRepo.SaveDependent(ctx, dependent); err != nil {
		s.LogError(ctx, err, "Failed to save dependent",
			slog.String("employee_id", employeeID))
		return nil, err
	}

	s.appendEvent(ctx, domain.EnrollmentEvent{
		EventID:       uuid.NewString(),
		EmployeeID:    employeeID,
		EventType:     domain.EventDependentAdd,
		EffectiveDate: now,
		Reason:        string(dependent.Relationship) + " added",
		ProcessedBy:   &access.UserID,
		ProcessedAt:   now,
	})

	s.LogInfo(ctx, "Dependent added",
		slog.String("dependent_id", dependent.DependentID),
		slog.String("employee_id", employeeID))
	return &dependent, nil
}

// ListDependents retrieves the dependents of an employee.
func (s *employeeService) ListDependents(ctx context.Context, access domain.AccessContext, employeeID string) ([]domain.Dependent, error) {
	if _, err := s.FindEmployeeByID(ctx, access, employeeID); err != nil {
		return nil, err
	}

	dependents, err := s.employeeRepo.ListDependentsByEmployeeID(ctx, employeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list dependents",
			slog.String("employee_id", employeeID))
		return nil, err
	}
	if dependents == nil {
		return []domain.Dependent{}, nil
	}
	return dependents, nil
}

// RemoveDependent deletes a dependent and appends a dependent_remove
// enrollment event.
func (s *employeeService) RemoveDependent(ctx context.Context, access domain.AccessContext, employeeID, dependentID string) error {
	employee, err := s.FindEmployeeByID(ctx, access, employeeID)
	if err != nil {
		return err
	}

	employer, err := s.brokerRepo.FindEmployerByID(ctx, employee.EmployerID)
	if err != nil {
		return err
	}
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionUpdate, &employer.OrganizationID); err != nil {
		return err
	}

	dependent, err := s.employeeRepo.FindDependentByID(ctx, dependentID)
	if err != nil {
		return err
	}
	if dependent.EmployeeID != employeeID {
		return apperrors.NewNotFoundError("dependent", dependentID)
	}

	if err := s.employeeRepo.DeleteDependent(ctx, dependentID); err != nil {
		s.LogError(ctx, err, "Failed to delete dependent",
			slog.String("dependent_id", dependentID))
		return err
	}

	now := time.Now()
	s.appendEvent(ctx, domain.EnrollmentEvent{
		EventID:       uuid.NewString(),
		EmployeeID:    employeeID,
		EventType:     domain.EventDependentRemove,
		EffectiveDate: now,
		Reason:        string(dependent.Relationship) + " removed",
		ProcessedBy:   &access.UserID,
		ProcessedAt:   now,
	})

	s.LogInfo(ctx, "Dependent removed",
		slog.String("dependent_id", dependentID),
		slog.String("employee_id", employeeID))
	return nil
}

// appendEvent records an enrollment event, logging and swallowing failures:
// the census change already committed.
func (s *employeeService) appendEvent(ctx context.Context, event domain.EnrollmentEvent) {
	if err := s.enrollmentRepo.SaveEnrollmentEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to append enrollment event",
			slog.String("employee_id", event.EmployeeID),
			slog.String("event_type", string(event.EventType)))
	}
}
