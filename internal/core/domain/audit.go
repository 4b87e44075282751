package domain

import "time"

// AuditEventKind classifies security-relevant events.
type AuditEventKind string

const (
	AuditLogin             AuditEventKind = "login"
	AuditLogout            AuditEventKind = "logout"
	AuditSignup            AuditEventKind = "signup"
	AuditPasswordChange    AuditEventKind = "password_change"
	AuditRoleChange        AuditEventKind = "role_change"
	AuditMembershipCreated AuditEventKind = "membership_created"
	AuditMembershipDeleted AuditEventKind = "membership_deleted"
	AuditPermissionDenied  AuditEventKind = "permission_denied"
	AuditDataExport        AuditEventKind = "data_export"
)

// Denial reason tags recorded in permission_denied metadata.
const (
	DenyReasonNoMembership     = "no_membership"
	DenyReasonInsufficientRole = "insufficient_role"
	DenyReasonNotSuperuser     = "not_superuser"
)

// AuditEvent is an append-only record of a security-relevant action. Events
// are write-once; deletion is restricted to superusers for compliance cleanup.
type AuditEvent struct {
	AuditEventID   string         `json:"auditEventID"` // Primary Key (UUID)
	EventKind      AuditEventKind `json:"eventKind"`
	UserID         *string        `json:"userID,omitempty"`
	OrganizationID *string        `json:"organizationID,omitempty"`
	IPAddress      *string        `json:"ipAddress,omitempty"`
	UserAgent      *string        `json:"userAgent,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	Metadata       map[string]any `json:"metadata"`
}
