package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// AuditEventResponse mirrors the audit record shape of the API:
// {event_kind, actor_id|null, organization_id|null, ip_address|null,
// user_agent|null, created_at, metadata}.
type AuditEventResponse struct {
	AuditEventID   string         `json:"audit_event_id"`
	EventKind      string         `json:"event_kind"`
	ActorID        *string        `json:"actor_id"`
	OrganizationID *string        `json:"organization_id"`
	IPAddress      *string        `json:"ip_address"`
	UserAgent      *string        `json:"user_agent"`
	CreatedAt      time.Time      `json:"created_at"`
	Metadata       map[string]any `json:"metadata"`
}

// ToAuditEventResponse maps a domain audit event to its response DTO.
func ToAuditEventResponse(e *domain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		AuditEventID:   e.AuditEventID,
		EventKind:      string(e.EventKind),
		ActorID:        e.UserID,
		OrganizationID: e.OrganizationID,
		IPAddress:      e.IPAddress,
		UserAgent:      e.UserAgent,
		CreatedAt:      e.CreatedAt,
		Metadata:       e.Metadata,
	}
}

// ToListAuditEventsResponse maps a slice of audit events.
func ToListAuditEventsResponse(es []domain.AuditEvent) []AuditEventResponse {
	out := make([]AuditEventResponse, 0, len(es))
	for i := range es {
		out = append(out, ToAuditEventResponse(&es[i]))
	}
	return out
}
