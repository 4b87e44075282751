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

type PgxBrokerRepository struct {
	BaseRepository
}

func newPgxBrokerRepository(db *pgxpool.Pool) portsrepo.BrokerRepositoryWithTx {
	return &PgxBrokerRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.BrokerRepositoryWithTx = (*PgxBrokerRepository)(nil)

const selectBrokerColumns = `
	broker_id, organization_id, agency_name, license_number, phone, email, address,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanBroker(row pgx.Row) (*domain.Broker, error) {
	var b domain.Broker
	err := row.Scan(
		&b.BrokerID,
		&b.OrganizationID,
		&b.AgencyName,
		&b.LicenseNumber,
		&b.Phone,
		&b.Email,
		&b.Address,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan broker row: %w", err)
	}
	return &b, nil
}

func (r *PgxBrokerRepository) SaveBroker(ctx context.Context, broker domain.Broker) error {
	query := `
		INSERT INTO brokers (broker_id, organization_id, agency_name, license_number, phone, email, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		broker.BrokerID,
		broker.OrganizationID,
		broker.AgencyName,
		broker.LicenseNumber,
		broker.Phone,
		broker.Email,
		broker.Address,
		broker.CreatedAt,
		broker.CreatedBy,
		broker.LastUpdatedAt,
		broker.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save broker: %w", err)
	}
	return nil
}

func (r *PgxBrokerRepository) UpdateBroker(ctx context.Context, broker domain.Broker) error {
	query := `
		UPDATE brokers
		SET agency_name = $1, license_number = $2, phone = $3, email = $4, address = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE broker_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		broker.AgencyName,
		broker.LicenseNumber,
		broker.Phone,
		broker.Email,
		broker.Address,
		broker.LastUpdatedAt,
		broker.LastUpdatedBy,
		broker.BrokerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update broker: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBrokerRepository) FindBrokerByID(ctx context.Context, brokerID string) (*domain.Broker, error) {
	query := `SELECT ` + selectBrokerColumns + ` FROM brokers WHERE broker_id = $1;`
	return scanBroker(r.Pool.QueryRow(ctx, query, brokerID))
}

func (r *PgxBrokerRepository) FindBrokerByOrganizationID(ctx context.Context, organizationID string) (*domain.Broker, error) {
	query := `SELECT ` + selectBrokerColumns + ` FROM brokers WHERE organization_id = $1;`
	return scanBroker(r.Pool.QueryRow(ctx, query, organizationID))
}

func (r *PgxBrokerRepository) ListBrokers(ctx context.Context) ([]domain.Broker, error) {
	query := `SELECT ` + selectBrokerColumns + ` FROM brokers ORDER BY agency_name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query brokers: %w", err)
	}
	defer rows.Close()

	brokers := []domain.Broker{}
	for rows.Next() {
		b, err := scanBroker(rows)
		if err != nil {
			return nil, err
		}
		brokers = append(brokers, *b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating broker rows: %w", rows.Err())
	}
	return brokers, nil
}

const selectEmployerColumns = `
	employer_id, broker_id, organization_id, name, ein, size, effective_date, renewal_date, status,
	contact_name, contact_email, contact_phone, address,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEmployer(row pgx.Row) (*domain.Employer, error) {
	var e domain.Employer
	err := row.Scan(
		&e.EmployerID,
		&e.BrokerID,
		&e.OrganizationID,
		&e.Name,
		&e.EIN,
		&e.Size,
		&e.EffectiveDate,
		&e.RenewalDate,
		&e.Status,
		&e.ContactName,
		&e.ContactEmail,
		&e.ContactPhone,
		&e.Address,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employer row: %w", err)
	}
	return &e, nil
}

func (r *PgxBrokerRepository) SaveEmployer(ctx context.Context, employer domain.Employer) error {
	query := `
		INSERT INTO employers (employer_id, broker_id, organization_id, name, ein, size, effective_date, renewal_date, status, contact_name, contact_email, contact_phone, address, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		employer.EmployerID,
		employer.BrokerID,
		employer.OrganizationID,
		employer.Name,
		employer.EIN,
		employer.Size,
		employer.EffectiveDate,
		employer.RenewalDate,
		employer.Status,
		employer.ContactName,
		employer.ContactEmail,
		employer.ContactPhone,
		employer.Address,
		employer.CreatedAt,
		employer.CreatedBy,
		employer.LastUpdatedAt,
		employer.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save employer: %w", err)
	}
	return nil
}

func (r *PgxBrokerRepository) UpdateEmployer(ctx context.Context, employer domain.Employer) error {
	query := `
		UPDATE employers
		SET name = $1, size = $2, renewal_date = $3, status = $4,
		    contact_name = $5, contact_email = $6, contact_phone = $7, address = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE employer_id = $11;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		employer.Name,
		employer.Size,
		employer.RenewalDate,
		employer.Status,
		employer.ContactName,
		employer.ContactEmail,
		employer.ContactPhone,
		employer.Address,
		employer.LastUpdatedAt,
		employer.LastUpdatedBy,
		employer.EmployerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBrokerRepository) FindEmployerByID(ctx context.Context, employerID string) (*domain.Employer, error) {
	query := `SELECT ` + selectEmployerColumns + ` FROM employers WHERE employer_id = $1;`
	return scanEmployer(r.Pool.QueryRow(ctx, query, employerID))
}

func (r *PgxBrokerRepository) FindEmployersByIDs(ctx context.Context, employerIDs []string) ([]domain.Employer, error) {
	if len(employerIDs) == 0 {
		return []domain.Employer{}, nil
	}
	query := `SELECT ` + selectEmployerColumns + ` FROM employers WHERE employer_id = ANY($1);`
	return r.listEmployers(ctx, query, employerIDs)
}

func (r *PgxBrokerRepository) ListEmployersByBrokerID(ctx context.Context, brokerID string) ([]domain.Employer, error) {
	query := `SELECT ` + selectEmployerColumns + ` FROM employers WHERE broker_id = $1 ORDER BY name;`
	return r.listEmployers(ctx, query, brokerID)
}

func (r *PgxBrokerRepository) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	query := `SELECT ` + selectEmployerColumns + ` FROM employers ORDER BY name;`
	return r.listEmployers(ctx, query)
}

// ListEmployerOrgIDsByBrokerOrg returns the organization IDs of every
// employer sponsored by the broker operating as brokerOrgID. This is the
// single inheritance hop for broker-family access.
func (r *PgxBrokerRepository) ListEmployerOrgIDsByBrokerOrg(ctx context.Context, brokerOrgID string) ([]string, error) {
	query := `
		SELECT e.organization_id
		FROM employers e
		JOIN brokers b ON b.broker_id = e.broker_id
		WHERE b.organization_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, brokerOrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query employer organizations: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employer organization ID: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employer organization rows: %w", rows.Err())
	}
	return ids, nil
}

func (r *PgxBrokerRepository) listEmployers(ctx context.Context, query string, args ...any) ([]domain.Employer, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employers: %w", err)
	}
	defer rows.Close()

	employers := []domain.Employer{}
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		employers = append(employers, *e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating employer rows: %w", rows.Err())
	}
	return employers, nil
}
