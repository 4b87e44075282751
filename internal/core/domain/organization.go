package domain

import (
	"regexp"
	"strings"
	"time"
)

// OrganizationType distinguishes the tenant kinds in the benefits supply chain.
type OrganizationType string

const (
	OrgTypeBroker   OrganizationType = "broker"
	OrgTypeEmployer OrganizationType = "employer"
	OrgTypeCarrier  OrganizationType = "carrier"
)

// IsValid reports whether the value is a known organization type.
func (t OrganizationType) IsValid() bool {
	switch t {
	case OrgTypeBroker, OrgTypeEmployer, OrgTypeCarrier:
		return true
	}
	return false
}

// Organization is a tenant: the isolation boundary for data access.
type Organization struct {
	OrganizationID string           `json:"organizationID"` // Primary Key (UUID)
	Name           string           `json:"name"`           // Unique
	Slug           string           `json:"slug"`           // Unique, derived from Name
	Type           OrganizationType `json:"type"`
	IsActive       bool             `json:"isActive"`
	AuditFields
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from an organization name.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// Membership binds a user to an organization with a role. Unique per
// (user, organization); enforced by the data store, not application locking.
type Membership struct {
	MembershipID   string    `json:"membershipID"`
	UserID         string    `json:"userID"`
	OrganizationID string    `json:"organizationID"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
