package pgsql

import (
	"context"
	"fmt"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	db *pgxpool.Pool
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const insertAuditEventSQL = `
	INSERT INTO audit_events (audit_event_id, event_kind, user_id, organization_id, ip_address, user_agent, created_at, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// insertAuditEventTx appends an audit event inside an existing transaction.
// Used by repositories whose primary write must commit together with its
// audit record.
func insertAuditEventTx(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) error {
	_, err := tx.Exec(ctx, insertAuditEventSQL,
		event.AuditEventID,
		event.EventKind,
		event.UserID,
		event.OrganizationID,
		event.IPAddress,
		event.UserAgent,
		event.CreatedAt,
		event.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.db.Exec(ctx, insertAuditEventSQL,
		event.AuditEventID,
		event.EventKind,
		event.UserID,
		event.OrganizationID,
		event.IPAddress,
		event.UserAgent,
		event.CreatedAt,
		event.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit event: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEvents(ctx context.Context, filter portsrepo.AuditEventFilter) ([]domain.AuditEvent, error) {
	query := `
		SELECT audit_event_id, event_kind, user_id, organization_id, ip_address, user_agent, created_at, metadata
		FROM audit_events
		WHERE ($1::text IS NULL OR event_kind = $1)
		  AND ($2::text IS NULL OR user_id = $2)
		  AND ($3::text IS NULL OR organization_id = $3)
		ORDER BY created_at DESC
		LIMIT $4;
	`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var kind *string
	if filter.EventKind != nil {
		k := string(*filter.EventKind)
		kind = &k
	}

	rows, err := r.db.Query(ctx, query, kind, filter.UserID, filter.OrganizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	events := []domain.AuditEvent{}
	for rows.Next() {
		var event domain.AuditEvent
		err := rows.Scan(
			&event.AuditEventID,
			&event.EventKind,
			&event.UserID,
			&event.OrganizationID,
			&event.IPAddress,
			&event.UserAgent,
			&event.CreatedAt,
			&event.Metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit event row: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit event rows: %w", rows.Err())
	}
	return events, nil
}

func (r *PgxAuditRepository) DeleteAuditEvent(ctx context.Context, auditEventID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM audit_events WHERE audit_event_id = $1;`, auditEventID)
	if err != nil {
		return fmt.Errorf("failed to delete audit event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
