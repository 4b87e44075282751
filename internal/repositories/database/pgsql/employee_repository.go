package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(db *pgxpool.Pool) portsrepo.EmployeeRepositoryWithTx {
	return &PgxEmployeeRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.EmployeeRepositoryWithTx = (*PgxEmployeeRepository)(nil)

const selectEmployeeColumns = `
	employee_id, employer_id, employee_number, user_id,
	first_name, last_name, middle_initial, ssn, date_of_birth, gender, marital_status,
	email, phone, address_line1, address_line2, city, state, zip_code,
	hire_date, job_title, department, salary, hours_per_week, employment_status,
	medical_coverage_tier, dental_coverage_tier, vision_coverage_tier,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.EmployeeID,
		&e.EmployerID,
		&e.EmployeeNumber,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.MiddleInitial,
		&e.SSN,
		&e.DateOfBirth,
		&e.Gender,
		&e.MaritalStatus,
		&e.Email,
		&e.Phone,
		&e.AddressLine1,
		&e.AddressLine2,
		&e.City,
		&e.State,
		&e.ZipCode,
		&e.HireDate,
		&e.JobTitle,
		&e.Department,
		&e.Salary,
		&e.HoursPerWeek,
		&e.EmploymentStatus,
		&e.MedicalCoverageTier,
		&e.DentalCoverageTier,
		&e.VisionCoverageTier,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employee row: %w", err)
	}
	return &e, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (
			employee_id, employer_id, employee_number, user_id,
			first_name, last_name, middle_initial, ssn, date_of_birth, gender, marital_status,
			email, phone, address_line1, address_line2, city, state, zip_code,
			hire_date, job_title, department, salary, hours_per_week, employment_status,
			medical_coverage_tier, dental_coverage_tier, vision_coverage_tier,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31);
	`
	_, err := r.Pool.Exec(ctx, query,
		employee.EmployeeID,
		employee.EmployerID,
		employee.EmployeeNumber,
		employee.UserID,
		employee.FirstName,
		employee.LastName,
		employee.MiddleInitial,
		employee.SSN,
		employee.DateOfBirth,
		employee.Gender,
		employee.MaritalStatus,
		employee.Email,
		employee.Phone,
		employee.AddressLine1,
		employee.AddressLine2,
		employee.City,
		employee.State,
		employee.ZipCode,
		employee.HireDate,
		employee.JobTitle,
		employee.Department,
		employee.Salary,
		employee.HoursPerWeek,
		employee.EmploymentStatus,
		employee.MedicalCoverageTier,
		employee.DentalCoverageTier,
		employee.VisionCoverageTier,
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees
		SET user_id = $1, first_name = $2, last_name = $3, middle_initial = $4, marital_status = $5,
		    email = $6, phone = $7, address_line1 = $8, address_line2 = $9, city = $10, state = $11, zip_code = $12,
		    job_title = $13, department = $14, salary = $15, hours_per_week = $16, employment_status = $17,
		    medical_coverage_tier = $18, dental_coverage_tier = $19, vision_coverage_tier = $20,
		    last_updated_at = $21, last_updated_by = $22
		WHERE employee_id = $23;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		employee.UserID,
		employee.FirstName,
		employee.LastName,
		employee.MiddleInitial,
		employee.MaritalStatus,
		employee.Email,
		employee.Phone,
		employee.AddressLine1,
		employee.AddressLine2,
		employee.City,
		employee.State,
		employee.ZipCode,
		employee.JobTitle,
		employee.Department,
		employee.Salary,
		employee.HoursPerWeek,
		employee.EmploymentStatus,
		employee.MedicalCoverageTier,
		employee.DentalCoverageTier,
		employee.VisionCoverageTier,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
		employee.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE employee_id = $1;`
	return scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
}

func (r *PgxEmployeeRepository) FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE user_id = $1;`
	return scanEmployee(r.Pool.QueryRow(ctx, query, userID))
}

func (r *PgxEmployeeRepository) ListEmployeesByEmployerID(ctx context.Context, employerID string) ([]domain.Employee, error) {
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE employer_id = $1 ORDER BY last_name, first_name;`
	return r.listEmployees(ctx, query, employerID)
}

func (r *PgxEmployeeRepository) ListEmployeesByEmployerIDs(ctx context.Context, employerIDs []string) ([]domain.Employee, error) {
	if len(employerIDs) == 0 {
		return []domain.Employee{}, nil
	}
	query := `SELECT ` + selectEmployeeColumns + ` FROM employees WHERE employer_id = ANY($1) ORDER BY last_name, first_name;`
	return r.listEmployees(ctx, query, employerIDs)
}

func (r *PgxEmployeeRepository) listEmployees(ctx context.Context, query string, args ...any) ([]domain.Employee, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", rows.Err())
	}
	return employees, nil
}

const selectDependentColumns = `
	dependent_id, employee_id, first_name, last_name, middle_initial, ssn, date_of_birth, gender, relationship,
	medical_coverage, dental_coverage, vision_coverage,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanDependent(row pgx.Row) (*domain.Dependent, error) {
	var d domain.Dependent
	err := row.Scan(
		&d.DependentID,
		&d.EmployeeID,
		&d.FirstName,
		&d.LastName,
		&d.MiddleInitial,
		&d.SSN,
		&d.DateOfBirth,
		&d.Gender,
		&d.Relationship,
		&d.MedicalCoverage,
		&d.DentalCoverage,
		&d.VisionCoverage,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan dependent row: %w", err)
	}
	return &d, nil
}

func (r *PgxEmployeeRepository) SaveDependent(ctx context.Context, dependent domain.Dependent) error {
	query := `
		INSERT INTO dependents (dependent_id, employee_id, first_name, last_name, middle_initial, ssn, date_of_birth, gender, relationship, medical_coverage, dental_coverage, vision_coverage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		dependent.DependentID,
		dependent.EmployeeID,
		dependent.FirstName,
		dependent.LastName,
		dependent.MiddleInitial,
		dependent.SSN,
		dependent.DateOfBirth,
		dependent.Gender,
		dependent.Relationship,
		dependent.MedicalCoverage,
		dependent.DentalCoverage,
		dependent.VisionCoverage,
		dependent.CreatedAt,
		dependent.CreatedBy,
		dependent.LastUpdatedAt,
		dependent.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save dependent: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateDependent(ctx context.Context, dependent domain.Dependent) error {
	query := `
		UPDATE dependents
		SET first_name = $1, last_name = $2, middle_initial = $3, relationship = $4,
		    medical_coverage = $5, dental_coverage = $6, vision_coverage = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE dependent_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		dependent.FirstName,
		dependent.LastName,
		dependent.MiddleInitial,
		dependent.Relationship,
		dependent.MedicalCoverage,
		dependent.DentalCoverage,
		dependent.VisionCoverage,
		dependent.LastUpdatedAt,
		dependent.LastUpdatedBy,
		dependent.DependentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dependent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEmployeeRepository) FindDependentByID(ctx context.Context, dependentID string) (*domain.Dependent, error) {
	query := `SELECT ` + selectDependentColumns + ` FROM dependents WHERE dependent_id = $1;`
	return scanDependent(r.Pool.QueryRow(ctx, query, dependentID))
}

func (r *PgxEmployeeRepository) ListDependentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.Dependent, error) {
	query := `SELECT ` + selectDependentColumns + ` FROM dependents WHERE employee_id = $1 ORDER BY date_of_birth;`
	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependents: %w", err)
	}
	defer rows.Close()

	dependents := []domain.Dependent{}
	for rows.Next() {
		d, err := scanDependent(rows)
		if err != nil {
			return nil, err
		}
		dependents = append(dependents, *d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating dependent rows: %w", rows.Err())
	}
	return dependents, nil
}

func (r *PgxEmployeeRepository) DeleteDependent(ctx context.Context, dependentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM dependents WHERE dependent_id = $1;`, dependentID)
	if err != nil {
		return fmt.Errorf("failed to delete dependent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
