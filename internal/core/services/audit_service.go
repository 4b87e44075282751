package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/middleware"
	"github.com/google/uuid"
)

// auditService implements the AuditSvcFacade interface
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new audit service with the provided dependencies
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// BuildEvent materializes an entry into a persistable event, filling in ID,
// timestamp, and the client metadata captured by the request middleware.
func (s *auditService) BuildEvent(ctx context.Context, entry portssvc.AuditEntry) domain.AuditEvent {
	event := domain.AuditEvent{
		AuditEventID:   uuid.NewString(),
		EventKind:      entry.EventKind,
		UserID:         entry.UserID,
		OrganizationID: entry.OrganizationID,
		CreatedAt:      time.Now(),
		Metadata:       entry.Metadata,
	}
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	meta := middleware.GetRequestMetaFromCtx(ctx)
	if meta.IPAddress != "" {
		event.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		event.UserAgent = &meta.UserAgent
	}
	return event
}

// Record appends an audit event. Best-effort: a storage failure is logged and
// swallowed so a denied request still gets its 403 instead of a 500.
func (s *auditService) Record(ctx context.Context, entry portssvc.AuditEntry) {
	event := s.BuildEvent(ctx, entry)
	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("event_kind", string(event.EventKind)))
		return
	}
	s.LogDebug(ctx, "Audit event recorded",
		slog.String("audit_event_id", event.AuditEventID),
		slog.String("event_kind", string(event.EventKind)))
}

// ListEvents retrieves audit events matching the filter. Superuser only.
func (s *auditService) ListEvents(ctx context.Context, access domain.AccessContext, filter portsrepo.AuditEventFilter) ([]domain.AuditEvent, error) {
	if !access.Superuser() {
		s.Record(ctx, portssvc.AuditEntry{
			EventKind: domain.AuditPermissionDenied,
			UserID:    &access.UserID,
			Metadata: map[string]any{
				"resource": string(domain.ResourceAuditEvents),
				"action":   string(domain.ActionRead),
				"role":     string(access.EffectiveRole()),
				"reason":   domain.DenyReasonNotSuperuser,
			},
		})
		return nil, apperrors.ErrForbidden
	}

	events, err := s.auditRepo.ListAuditEvents(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit events")
		return nil, err
	}
	if events == nil {
		return []domain.AuditEvent{}, nil
	}
	return events, nil
}

// DeleteEvent removes an audit event. Superuser only; compliance cleanup.
func (s *auditService) DeleteEvent(ctx context.Context, access domain.AccessContext, auditEventID string) error {
	if !access.Superuser() {
		s.Record(ctx, portssvc.AuditEntry{
			EventKind: domain.AuditPermissionDenied,
			UserID:    &access.UserID,
			Metadata: map[string]any{
				"resource": string(domain.ResourceAuditEvents),
				"action":   string(domain.ActionDelete),
				"role":     string(access.EffectiveRole()),
				"reason":   domain.DenyReasonNotSuperuser,
			},
		})
		return apperrors.ErrForbidden
	}

	if err := s.auditRepo.DeleteAuditEvent(ctx, auditEventID); err != nil {
		s.LogError(ctx, err, "Failed to delete audit event",
			slog.String("audit_event_id", auditEventID))
		return err
	}
	s.LogInfo(ctx, "Audit event deleted",
		slog.String("audit_event_id", auditEventID),
		slog.String("deleted_by", access.UserID))
	return nil
}
