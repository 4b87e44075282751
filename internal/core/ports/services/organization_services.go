package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, access domain.AccessContext, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves the organizations the actor may see.
	ListOrganizations(ctx context.Context, access domain.AccessContext) ([]domain.Organization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with a derived slug.
	CreateOrganization(ctx context.Context, access domain.AccessContext, req dto.CreateOrganizationRequest) (*domain.Organization, error)

	// UpdateOrganization persists changes to an existing organization.
	UpdateOrganization(ctx context.Context, access domain.AccessContext, organizationID string, req dto.UpdateOrganizationRequest) (*domain.Organization, error)

	// DeactivateOrganization soft-disables an organization. Organizations
	// are never hard deleted.
	DeactivateOrganization(ctx context.Context, access domain.AccessContext, organizationID string) error
}

// MembershipSvc defines operations for organization memberships
type MembershipSvc interface {
	// CreateMembership binds a user to an organization with a role. The
	// membership write and its audit event commit together; a duplicate
	// (user, organization) pair fails with apperrors.ErrDuplicate.
	CreateMembership(ctx context.Context, access domain.AccessContext, organizationID string, req dto.CreateMembershipRequest) (*domain.Membership, error)

	// ChangeMembershipRole updates a membership's role, emitting one
	// role_change audit event with old and new role in its metadata.
	ChangeMembershipRole(ctx context.Context, access domain.AccessContext, organizationID, membershipID string, newRole domain.Role) (*domain.Membership, error)

	// RemoveMembership deletes a membership with its membership_deleted
	// audit event.
	RemoveMembership(ctx context.Context, access domain.AccessContext, organizationID, membershipID string) error

	// ListMemberships retrieves memberships of an organization.
	ListMemberships(ctx context.Context, access domain.AccessContext, organizationID string) ([]domain.Membership, error)
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	MembershipSvc
}
