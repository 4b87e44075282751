package dto

import (
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// CreateOrganizationRequest defines the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=broker employer carrier"`
}

// UpdateOrganizationRequest defines the payload for updating an organization.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateMembershipRequest defines the payload for binding a user to an organization.
type CreateMembershipRequest struct {
	UserID string `json:"userID" binding:"required,uuid"`
	Role   string `json:"role" binding:"required"`
}

// ChangeMembershipRoleRequest defines the payload for a membership role change.
type ChangeMembershipRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// OrganizationResponse defines the organization data returned to clients.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Type           string    `json:"type"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse maps a domain organization to its response DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Slug:           o.Slug,
		Type:           string(o.Type),
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}

// ToListOrganizationsResponse maps a slice of organizations.
func ToListOrganizationsResponse(orgs []domain.Organization) []OrganizationResponse {
	out := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		out = append(out, ToOrganizationResponse(&orgs[i]))
	}
	return out
}

// MembershipResponse defines the membership data returned to clients.
type MembershipResponse struct {
	MembershipID   string    `json:"membershipID"`
	UserID         string    `json:"userID"`
	OrganizationID string    `json:"organizationID"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToMembershipResponse maps a domain membership to its response DTO.
func ToMembershipResponse(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		MembershipID:   m.MembershipID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}

// ToListMembershipsResponse maps a slice of memberships.
func ToListMembershipsResponse(ms []domain.Membership) []MembershipResponse {
	out := make([]MembershipResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToMembershipResponse(&ms[i]))
	}
	return out
}
