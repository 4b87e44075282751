package domain

import "time"

// User represents an authenticated actor in the system.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PasswordHash string `json:"-"`
	IsSuperuser  bool   `json:"isSuperuser"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete

	// Profile is the legacy single-role access profile. It is optional and
	// consulted only when the user has no memberships; see AccessContext
	// resolution in the access service.
	Profile *AccessProfile `json:"profile,omitempty" db:"-"`

	// Memberships holds the user's per-organization role bindings. Loaded on
	// demand, not by every repository query.
	Memberships []Membership `json:"memberships,omitempty" db:"-"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AccessProfile is the legacy one-role-per-user access record. Kept for
// backward compatibility with census data imported from the previous system;
// new access grants go through Membership.
type AccessProfile struct {
	UserID         string  `json:"userID"`
	Role           Role    `json:"role"`
	OrganizationID *string `json:"organizationID,omitempty"`
	Title          string  `json:"title,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	AuditFields
}
