package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEnrollmentRepository struct {
	BaseRepository
}

func newPgxEnrollmentRepository(db *pgxpool.Pool) portsrepo.EnrollmentRepositoryWithTx {
	return &PgxEnrollmentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.EnrollmentRepositoryWithTx = (*PgxEnrollmentRepository)(nil)

const selectPeriodColumns = `
	period_id, employer_id, name, period_type, status,
	start_date, end_date, coverage_effective_date, allow_waive, require_all_plans,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPeriod(row pgx.Row) (*domain.EnrollmentPeriod, error) {
	var p domain.EnrollmentPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.EmployerID,
		&p.Name,
		&p.PeriodType,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.CoverageEffectiveDate,
		&p.AllowWaive,
		&p.RequireAllPlans,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan enrollment period row: %w", err)
	}
	return &p, nil
}

func (r *PgxEnrollmentRepository) SavePeriod(ctx context.Context, period domain.EnrollmentPeriod) error {
	query := `
		INSERT INTO enrollment_periods (period_id, employer_id, name, period_type, status, start_date, end_date, coverage_effective_date, allow_waive, require_all_plans, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.EmployerID,
		period.Name,
		period.PeriodType,
		period.Status,
		period.StartDate,
		period.EndDate,
		period.CoverageEffectiveDate,
		period.AllowWaive,
		period.RequireAllPlans,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save enrollment period: %w", err)
	}
	return nil
}

func (r *PgxEnrollmentRepository) UpdatePeriod(ctx context.Context, period domain.EnrollmentPeriod) error {
	query := `
		UPDATE enrollment_periods
		SET name = $1, status = $2, start_date = $3, end_date = $4, coverage_effective_date = $5,
		    allow_waive = $6, require_all_plans = $7, last_updated_at = $8, last_updated_by = $9
		WHERE period_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		period.Name,
		period.Status,
		period.StartDate,
		period.EndDate,
		period.CoverageEffectiveDate,
		period.AllowWaive,
		period.RequireAllPlans,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
		period.PeriodID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enrollment period: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEnrollmentRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.EnrollmentPeriod, error) {
	query := `SELECT ` + selectPeriodColumns + ` FROM enrollment_periods WHERE period_id = $1;`
	return scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
}

func (r *PgxEnrollmentRepository) ListPeriodsByEmployerID(ctx context.Context, employerID string) ([]domain.EnrollmentPeriod, error) {
	query := `SELECT ` + selectPeriodColumns + ` FROM enrollment_periods WHERE employer_id = $1 ORDER BY start_date DESC;`
	return r.listPeriods(ctx, query, employerID)
}

func (r *PgxEnrollmentRepository) ListActivePeriodsEndedBefore(ctx context.Context, cutoff time.Time) ([]domain.EnrollmentPeriod, error) {
	query := `SELECT ` + selectPeriodColumns + ` FROM enrollment_periods WHERE status = 'active' AND end_date < $1 ORDER BY end_date;`
	return r.listPeriods(ctx, query, cutoff)
}

func (r *PgxEnrollmentRepository) listPeriods(ctx context.Context, query string, args ...any) ([]domain.EnrollmentPeriod, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.EnrollmentPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment period rows: %w", rows.Err())
	}
	return periods, nil
}

const selectEnrollmentColumns = `
	enrollment_id, employee_id, period_id, status,
	started_at, submitted_at, approved_at, approved_by,
	notes, waived_coverage, waiver_reason,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEnrollment(row pgx.Row) (*domain.EmployeeEnrollment, error) {
	var e domain.EmployeeEnrollment
	err := row.Scan(
		&e.EnrollmentID,
		&e.EmployeeID,
		&e.PeriodID,
		&e.Status,
		&e.StartedAt,
		&e.SubmittedAt,
		&e.ApprovedAt,
		&e.ApprovedBy,
		&e.Notes,
		&e.WaivedCoverage,
		&e.WaiverReason,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
	}
	return &e, nil
}

func (r *PgxEnrollmentRepository) SaveEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
	query := `
		INSERT INTO employee_enrollments (enrollment_id, employee_id, period_id, status, started_at, submitted_at, approved_at, approved_by, notes, waived_coverage, waiver_reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		enrollment.EnrollmentID,
		enrollment.EmployeeID,
		enrollment.PeriodID,
		enrollment.Status,
		enrollment.StartedAt,
		enrollment.SubmittedAt,
		enrollment.ApprovedAt,
		enrollment.ApprovedBy,
		enrollment.Notes,
		enrollment.WaivedCoverage,
		enrollment.WaiverReason,
		enrollment.CreatedAt,
		enrollment.CreatedBy,
		enrollment.LastUpdatedAt,
		enrollment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save enrollment: %w", err)
	}
	return nil
}

func (r *PgxEnrollmentRepository) UpdateEnrollment(ctx context.Context, enrollment domain.EmployeeEnrollment) error {
	query := `
		UPDATE employee_enrollments
		SET status = $1, started_at = $2, submitted_at = $3, approved_at = $4, approved_by = $5,
		    notes = $6, waived_coverage = $7, waiver_reason = $8, last_updated_at = $9, last_updated_by = $10
		WHERE enrollment_id = $11;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		enrollment.Status,
		enrollment.StartedAt,
		enrollment.SubmittedAt,
		enrollment.ApprovedAt,
		enrollment.ApprovedBy,
		enrollment.Notes,
		enrollment.WaivedCoverage,
		enrollment.WaiverReason,
		enrollment.LastUpdatedAt,
		enrollment.LastUpdatedBy,
		enrollment.EnrollmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEnrollmentRepository) FindEnrollmentByID(ctx context.Context, enrollmentID string) (*domain.EmployeeEnrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM employee_enrollments WHERE enrollment_id = $1;`
	return scanEnrollment(r.Pool.QueryRow(ctx, query, enrollmentID))
}

func (r *PgxEnrollmentRepository) FindEnrollmentByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (*domain.EmployeeEnrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM employee_enrollments WHERE employee_id = $1 AND period_id = $2;`
	return scanEnrollment(r.Pool.QueryRow(ctx, query, employeeID, periodID))
}

func (r *PgxEnrollmentRepository) ListEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM employee_enrollments WHERE period_id = $1 ORDER BY created_at;`
	return r.listEnrollments(ctx, query, periodID)
}

func (r *PgxEnrollmentRepository) ListEnrollmentsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EmployeeEnrollment, error) {
	query := `SELECT ` + selectEnrollmentColumns + ` FROM employee_enrollments WHERE employee_id = $1 ORDER BY created_at DESC;`
	return r.listEnrollments(ctx, query, employeeID)
}

func (r *PgxEnrollmentRepository) ListUnfinishedEnrollmentsByPeriodID(ctx context.Context, periodID string) ([]domain.EmployeeEnrollment, error) {
	query := `
		SELECT ` + selectEnrollmentColumns + `
		FROM employee_enrollments
		WHERE period_id = $1 AND status NOT IN ('approved', 'declined', 'expired')
		ORDER BY created_at;
	`
	return r.listEnrollments(ctx, query, periodID)
}

func (r *PgxEnrollmentRepository) listEnrollments(ctx context.Context, query string, args ...any) ([]domain.EmployeeEnrollment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []domain.EmployeeEnrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", rows.Err())
	}
	return enrollments, nil
}

const selectPlanEnrollmentColumns = `
	plan_enrollment_id, enrollment_id, plan_id, status,
	coverage_tier, monthly_premium, employee_contribution, employer_contribution,
	effective_date, termination_date,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPlanEnrollment(row pgx.Row) (*domain.PlanEnrollment, error) {
	var pe domain.PlanEnrollment
	err := row.Scan(
		&pe.PlanEnrollmentID,
		&pe.EnrollmentID,
		&pe.PlanID,
		&pe.Status,
		&pe.CoverageTier,
		&pe.MonthlyPremium,
		&pe.EmployeeContribution,
		&pe.EmployerContribution,
		&pe.EffectiveDate,
		&pe.TerminationDate,
		&pe.CreatedAt,
		&pe.CreatedBy,
		&pe.LastUpdatedAt,
		&pe.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan plan enrollment row: %w", err)
	}
	return &pe, nil
}

// SavePlanEnrollment writes the election and its covered-dependent rows in one
// transaction.
func (r *PgxEnrollmentRepository) SavePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO plan_enrollments (plan_enrollment_id, enrollment_id, plan_id, status, coverage_tier, monthly_premium, employee_contribution, employer_contribution, effective_date, termination_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		pe.PlanEnrollmentID,
		pe.EnrollmentID,
		pe.PlanID,
		pe.Status,
		pe.CoverageTier,
		pe.MonthlyPremium,
		pe.EmployeeContribution,
		pe.EmployerContribution,
		pe.EffectiveDate,
		pe.TerminationDate,
		pe.CreatedAt,
		pe.CreatedBy,
		pe.LastUpdatedAt,
		pe.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save plan enrollment: %w", err)
	}

	for _, dependentID := range pe.CoveredDependentIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO plan_enrollment_dependents (plan_enrollment_id, dependent_id) VALUES ($1, $2);`,
			pe.PlanEnrollmentID, dependentID,
		)
		if err != nil {
			return fmt.Errorf("failed to save covered dependent: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit plan enrollment: %w", err)
	}
	return nil
}

func (r *PgxEnrollmentRepository) UpdatePlanEnrollment(ctx context.Context, pe domain.PlanEnrollment) error {
	query := `
		UPDATE plan_enrollments
		SET status = $1, termination_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE plan_enrollment_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		pe.Status,
		pe.TerminationDate,
		pe.LastUpdatedAt,
		pe.LastUpdatedBy,
		pe.PlanEnrollmentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEnrollmentRepository) FindPlanEnrollmentByID(ctx context.Context, planEnrollmentID string) (*domain.PlanEnrollment, error) {
	query := `SELECT ` + selectPlanEnrollmentColumns + ` FROM plan_enrollments WHERE plan_enrollment_id = $1;`
	pe, err := scanPlanEnrollment(r.Pool.QueryRow(ctx, query, planEnrollmentID))
	if err != nil {
		return nil, err
	}
	deps, err := r.coveredDependentIDs(ctx, pe.PlanEnrollmentID)
	if err != nil {
		return nil, err
	}
	pe.CoveredDependentIDs = deps
	return pe, nil
}

func (r *PgxEnrollmentRepository) ListPlanEnrollmentsByEnrollmentID(ctx context.Context, enrollmentID string) ([]domain.PlanEnrollment, error) {
	query := `SELECT ` + selectPlanEnrollmentColumns + ` FROM plan_enrollments WHERE enrollment_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan enrollments: %w", err)
	}
	defer rows.Close()

	elections := []domain.PlanEnrollment{}
	for rows.Next() {
		pe, err := scanPlanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		elections = append(elections, *pe)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan enrollment rows: %w", rows.Err())
	}

	for i := range elections {
		deps, err := r.coveredDependentIDs(ctx, elections[i].PlanEnrollmentID)
		if err != nil {
			return nil, err
		}
		elections[i].CoveredDependentIDs = deps
	}
	return elections, nil
}

func (r *PgxEnrollmentRepository) coveredDependentIDs(ctx context.Context, planEnrollmentID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT dependent_id FROM plan_enrollment_dependents WHERE plan_enrollment_id = $1 ORDER BY dependent_id;`,
		planEnrollmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query covered dependents: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan covered dependent ID: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating covered dependent rows: %w", rows.Err())
	}
	return ids, nil
}

func (r *PgxEnrollmentRepository) SaveEnrollmentEvent(ctx context.Context, event domain.EnrollmentEvent) error {
	query := `
		INSERT INTO enrollment_events (event_id, employee_id, event_type, effective_date, plan_enrollment_id, previous_coverage_tier, new_coverage_tier, reason, processed_by, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		event.EventID,
		event.EmployeeID,
		event.EventType,
		event.EffectiveDate,
		event.PlanEnrollmentID,
		event.PreviousCoverageTier,
		event.NewCoverageTier,
		event.Reason,
		event.ProcessedBy,
		event.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save enrollment event: %w", err)
	}
	return nil
}

func (r *PgxEnrollmentRepository) ListEnrollmentEventsByEmployeeID(ctx context.Context, employeeID string) ([]domain.EnrollmentEvent, error) {
	query := `
		SELECT event_id, employee_id, event_type, effective_date, plan_enrollment_id, previous_coverage_tier, new_coverage_tier, reason, processed_by, processed_at
		FROM enrollment_events
		WHERE employee_id = $1
		ORDER BY processed_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment events: %w", err)
	}
	defer rows.Close()

	events := []domain.EnrollmentEvent{}
	for rows.Next() {
		var ev domain.EnrollmentEvent
		err := rows.Scan(
			&ev.EventID,
			&ev.EmployeeID,
			&ev.EventType,
			&ev.EffectiveDate,
			&ev.PlanEnrollmentID,
			&ev.PreviousCoverageTier,
			&ev.NewCoverageTier,
			&ev.Reason,
			&ev.ProcessedBy,
			&ev.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment event row: %w", err)
		}
		events = append(events, ev)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating enrollment event rows: %w", rows.Err())
	}
	return events, nil
}
