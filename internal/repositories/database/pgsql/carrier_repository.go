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

type PgxCarrierRepository struct {
	BaseRepository
}

func newPgxCarrierRepository(db *pgxpool.Pool) portsrepo.CarrierRepositoryWithTx {
	return &PgxCarrierRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CarrierRepositoryWithTx = (*PgxCarrierRepository)(nil)

const selectCarrierColumns = `
	carrier_id, organization_id, name, code, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCarrier(row pgx.Row) (*domain.Carrier, error) {
	var c domain.Carrier
	err := row.Scan(
		&c.CarrierID,
		&c.OrganizationID,
		&c.Name,
		&c.Code,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan carrier row: %w", err)
	}
	return &c, nil
}

func (r *PgxCarrierRepository) SaveCarrier(ctx context.Context, carrier domain.Carrier) error {
	query := `
		INSERT INTO carriers (carrier_id, organization_id, name, code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		carrier.CarrierID,
		carrier.OrganizationID,
		carrier.Name,
		carrier.Code,
		carrier.IsActive,
		carrier.CreatedAt,
		carrier.CreatedBy,
		carrier.LastUpdatedAt,
		carrier.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save carrier: %w", err)
	}
	return nil
}

func (r *PgxCarrierRepository) UpdateCarrier(ctx context.Context, carrier domain.Carrier) error {
	query := `
		UPDATE carriers
		SET name = $1, code = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE carrier_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		carrier.Name,
		carrier.Code,
		carrier.IsActive,
		carrier.LastUpdatedAt,
		carrier.LastUpdatedBy,
		carrier.CarrierID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update carrier: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCarrierRepository) FindCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error) {
	query := `SELECT ` + selectCarrierColumns + ` FROM carriers WHERE carrier_id = $1;`
	return scanCarrier(r.Pool.QueryRow(ctx, query, carrierID))
}

func (r *PgxCarrierRepository) ListCarriers(ctx context.Context, onlyActive bool) ([]domain.Carrier, error) {
	query := `SELECT ` + selectCarrierColumns + ` FROM carriers WHERE ($1 = false OR is_active = true) ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query carriers: %w", err)
	}
	defer rows.Close()

	carriers := []domain.Carrier{}
	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, err
		}
		carriers = append(carriers, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating carrier rows: %w", rows.Err())
	}
	return carriers, nil
}

const selectPlanColumns = `
	plan_id, carrier_id, name, plan_type, external_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var p domain.Plan
	err := row.Scan(
		&p.PlanID,
		&p.CarrierID,
		&p.Name,
		&p.PlanType,
		&p.ExternalCode,
		&p.IsActive,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan plan row: %w", err)
	}
	return &p, nil
}

func (r *PgxCarrierRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		INSERT INTO plans (plan_id, carrier_id, name, plan_type, external_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		plan.PlanID,
		plan.CarrierID,
		plan.Name,
		plan.PlanType,
		plan.ExternalCode,
		plan.IsActive,
		plan.CreatedAt,
		plan.CreatedBy,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func (r *PgxCarrierRepository) UpdatePlan(ctx context.Context, plan domain.Plan) error {
	query := `
		UPDATE plans
		SET name = $1, plan_type = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE plan_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		plan.Name,
		plan.PlanType,
		plan.IsActive,
		plan.LastUpdatedAt,
		plan.LastUpdatedBy,
		plan.PlanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCarrierRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	query := `SELECT ` + selectPlanColumns + ` FROM plans WHERE plan_id = $1;`
	return scanPlan(r.Pool.QueryRow(ctx, query, planID))
}

func (r *PgxCarrierRepository) ListPlansByCarrierID(ctx context.Context, carrierID string) ([]domain.Plan, error) {
	query := `SELECT ` + selectPlanColumns + ` FROM plans WHERE carrier_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, carrierID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", rows.Err())
	}
	return plans, nil
}

const selectPremiumColumns = `
	premium_id, plan_id, coverage_tier, monthly_premium, effective_date, end_date,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPremium(row pgx.Row) (*domain.PlanPremium, error) {
	var p domain.PlanPremium
	err := row.Scan(
		&p.PremiumID,
		&p.PlanID,
		&p.CoverageTier,
		&p.MonthlyPremium,
		&p.EffectiveDate,
		&p.EndDate,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan plan premium row: %w", err)
	}
	return &p, nil
}

func (r *PgxCarrierRepository) SavePremium(ctx context.Context, premium domain.PlanPremium) error {
	query := `
		INSERT INTO plan_premiums (premium_id, plan_id, coverage_tier, monthly_premium, effective_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		premium.PremiumID,
		premium.PlanID,
		premium.CoverageTier,
		premium.MonthlyPremium,
		premium.EffectiveDate,
		premium.EndDate,
		premium.CreatedAt,
		premium.CreatedBy,
		premium.LastUpdatedAt,
		premium.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save plan premium: %w", err)
	}
	return nil
}

// FindPremium picks the most recently effective premium covering onDate. An
// open end_date means the premium is still in effect.
func (r *PgxCarrierRepository) FindPremium(ctx context.Context, planID string, tier domain.CoverageTier, onDate time.Time) (*domain.PlanPremium, error) {
	query := `
		SELECT ` + selectPremiumColumns + `
		FROM plan_premiums
		WHERE plan_id = $1 AND coverage_tier = $2
		  AND effective_date <= $3
		  AND (end_date IS NULL OR end_date >= $3)
		ORDER BY effective_date DESC
		LIMIT 1;
	`
	return scanPremium(r.Pool.QueryRow(ctx, query, planID, tier, onDate))
}

func (r *PgxCarrierRepository) ListPremiumsByPlanID(ctx context.Context, planID string) ([]domain.PlanPremium, error) {
	query := `SELECT ` + selectPremiumColumns + ` FROM plan_premiums WHERE plan_id = $1 ORDER BY coverage_tier, effective_date;`
	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan premiums: %w", err)
	}
	defer rows.Close()

	premiums := []domain.PlanPremium{}
	for rows.Next() {
		p, err := scanPremium(rows)
		if err != nil {
			return nil, err
		}
		premiums = append(premiums, *p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan premium rows: %w", rows.Err())
	}
	return premiums, nil
}

const selectOfferingColumns = `
	offering_id, employer_id, plan_id, is_active, contribution_mode, contribution_value,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanOffering(row pgx.Row) (*domain.EmployerOffering, error) {
	var o domain.EmployerOffering
	err := row.Scan(
		&o.OfferingID,
		&o.EmployerID,
		&o.PlanID,
		&o.IsActive,
		&o.ContributionMode,
		&o.ContributionValue,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan offering row: %w", err)
	}
	return &o, nil
}

func (r *PgxCarrierRepository) SaveOffering(ctx context.Context, offering domain.EmployerOffering) error {
	query := `
		INSERT INTO employer_offerings (offering_id, employer_id, plan_id, is_active, contribution_mode, contribution_value, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		offering.OfferingID,
		offering.EmployerID,
		offering.PlanID,
		offering.IsActive,
		offering.ContributionMode,
		offering.ContributionValue,
		offering.CreatedAt,
		offering.CreatedBy,
		offering.LastUpdatedAt,
		offering.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save offering: %w", err)
	}
	return nil
}

func (r *PgxCarrierRepository) UpdateOffering(ctx context.Context, offering domain.EmployerOffering) error {
	query := `
		UPDATE employer_offerings
		SET is_active = $1, contribution_mode = $2, contribution_value = $3, last_updated_at = $4, last_updated_by = $5
		WHERE offering_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		offering.IsActive,
		offering.ContributionMode,
		offering.ContributionValue,
		offering.LastUpdatedAt,
		offering.LastUpdatedBy,
		offering.OfferingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update offering: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCarrierRepository) FindOfferingByID(ctx context.Context, offeringID string) (*domain.EmployerOffering, error) {
	query := `SELECT ` + selectOfferingColumns + ` FROM employer_offerings WHERE offering_id = $1;`
	return scanOffering(r.Pool.QueryRow(ctx, query, offeringID))
}

func (r *PgxCarrierRepository) FindOffering(ctx context.Context, employerID, planID string) (*domain.EmployerOffering, error) {
	query := `SELECT ` + selectOfferingColumns + ` FROM employer_offerings WHERE employer_id = $1 AND plan_id = $2;`
	return scanOffering(r.Pool.QueryRow(ctx, query, employerID, planID))
}

func (r *PgxCarrierRepository) ListOfferingsByEmployerID(ctx context.Context, employerID string) ([]domain.EmployerOffering, error) {
	query := `SELECT ` + selectOfferingColumns + ` FROM employer_offerings WHERE employer_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offerings: %w", err)
	}
	defer rows.Close()

	offerings := []domain.EmployerOffering{}
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, *o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating offering rows: %w", rows.Err())
	}
	return offerings, nil
}
