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

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(db *pgxpool.Pool) portsrepo.OrganizationRepositoryWithTx {
	return &PgxOrganizationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.OrganizationRepositoryWithTx = (*PgxOrganizationRepository)(nil)

const selectOrganizationColumns = `
	organization_id, name, slug, org_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var org domain.Organization
	err := row.Scan(
		&org.OrganizationID,
		&org.Name,
		&org.Slug,
		&org.Type,
		&org.IsActive,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan organization row: %w", err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (organization_id, name, slug, org_type, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.Slug,
		org.Type,
		org.IsActive,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, slug = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		org.Name,
		org.Slug,
		org.IsActive,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
		org.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + selectOrganizationColumns + ` FROM organizations WHERE organization_id = $1;`
	return scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
}

func (r *PgxOrganizationRepository) FindOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	query := `SELECT ` + selectOrganizationColumns + ` FROM organizations WHERE slug = $1;`
	return scanOrganization(r.Pool.QueryRow(ctx, query, slug))
}

func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context, onlyActive bool) ([]domain.Organization, error) {
	query := `SELECT ` + selectOrganizationColumns + ` FROM organizations WHERE ($1 = false OR is_active = true) ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", rows.Err())
	}
	return orgs, nil
}

func (r *PgxOrganizationRepository) ListActiveOrganizationIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT organization_id FROM organizations WHERE is_active = true;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active organization IDs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan organization ID: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating organization ID rows: %w", rows.Err())
	}
	return ids, nil
}

const selectMembershipColumns = `membership_id, user_id, organization_id, role, created_at, updated_at`

func scanMembership(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(
		&m.MembershipID,
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan membership row: %w", err)
	}
	return &m, nil
}

// CreateMembership inserts the membership and its audit event in one
// transaction. The (user, organization) uniqueness is enforced by the
// database, not application locking.
func (r *PgxOrganizationRepository) CreateMembership(ctx context.Context, membership domain.Membership, audit domain.AuditEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO memberships (membership_id, user_id, organization_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, query,
		membership.MembershipID,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.CreatedAt,
		membership.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	if err := insertAuditEventTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateMembershipRole changes the role and records the role_change audit
// event atomically.
func (r *PgxOrganizationRepository) UpdateMembershipRole(ctx context.Context, membershipID string, role domain.Role, audit domain.AuditEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `UPDATE memberships SET role = $1, updated_at = now() WHERE membership_id = $2;`, role, membershipID)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditEventTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteMembership removes the membership and records the
// membership_deleted audit event atomically.
func (r *PgxOrganizationRepository) DeleteMembership(ctx context.Context, membershipID string, audit domain.AuditEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `DELETE FROM memberships WHERE membership_id = $1;`, membershipID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditEventTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE user_id = $1 AND organization_id = $2;`
	return scanMembership(r.Pool.QueryRow(ctx, query, userID, organizationID))
}

func (r *PgxOrganizationRepository) FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE membership_id = $1;`
	return scanMembership(r.Pool.QueryRow(ctx, query, membershipID))
}

func (r *PgxOrganizationRepository) ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE user_id = $1 ORDER BY created_at;`
	return r.listMemberships(ctx, query, userID)
}

func (r *PgxOrganizationRepository) ListMembershipsByOrganizationID(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	query := `SELECT ` + selectMembershipColumns + ` FROM memberships WHERE organization_id = $1 ORDER BY created_at;`
	return r.listMemberships(ctx, query, organizationID)
}

func (r *PgxOrganizationRepository) listMemberships(ctx context.Context, query string, arg any) ([]domain.Membership, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", rows.Err())
	}
	return memberships, nil
}
