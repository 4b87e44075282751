package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
)

// AuditEntry is the caller-supplied part of an audit record. Client IP and
// user agent are taken from the request metadata in the context when present.
type AuditEntry struct {
	EventKind      domain.AuditEventKind
	UserID         *string
	OrganizationID *string
	Metadata       map[string]any
}

// AuditSvcFacade records and queries the append-only audit trail.
type AuditSvcFacade interface {
	// Record appends an audit event. Best-effort: a logging failure is
	// logged and swallowed, never blocking the guarded operation.
	Record(ctx context.Context, entry AuditEntry)

	// BuildEvent materializes an entry into a persistable event, filling in
	// ID, timestamp, and request metadata. Used by repositories that commit
	// the audit row in the same transaction as the primary write.
	BuildEvent(ctx context.Context, entry AuditEntry) domain.AuditEvent

	// ListEvents retrieves audit events. Superuser only.
	ListEvents(ctx context.Context, access domain.AccessContext, filter portsrepo.AuditEventFilter) ([]domain.AuditEvent, error)

	// DeleteEvent removes an audit event. Superuser only; compliance cleanup.
	DeleteEvent(ctx context.Context, access domain.AccessContext, auditEventID string) error
}
