package repositories

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// AuditEventFilter narrows audit event listings.
type AuditEventFilter struct {
	EventKind      *domain.AuditEventKind
	UserID         *string
	OrganizationID *string
	Limit          int
}

// AuditRepositoryFacade defines operations for the append-only audit log.
type AuditRepositoryFacade interface {
	// SaveAuditEvent appends an audit event.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error

	// ListAuditEvents retrieves audit events matching the filter, most
	// recent first.
	ListAuditEvents(ctx context.Context, filter AuditEventFilter) ([]domain.AuditEvent, error)

	// DeleteAuditEvent removes an audit event. Restricted to superusers;
	// compliance cleanup only.
	DeleteAuditEvent(ctx context.Context, auditEventID string) error
}
