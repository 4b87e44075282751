package repositories

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindOrganizationBySlug retrieves a specific organization by its slug.
	FindOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error)

	// ListOrganizations retrieves organizations, optionally restricted to
	// active ones.
	ListOrganizations(ctx context.Context, onlyActive bool) ([]domain.Organization, error)

	// ListActiveOrganizationIDs retrieves the IDs of all active organizations.
	ListActiveOrganizationIDs(ctx context.Context) ([]string, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// UpdateOrganization persists changes to an existing organization.
	UpdateOrganization(ctx context.Context, org domain.Organization) error
}

// MembershipManager defines operations for managing organization memberships.
// Writes that must deterministically produce an audit record take the audit
// event as a parameter and persist both rows in one transaction.
type MembershipManager interface {
	// CreateMembership persists a new membership and its membership_created
	// audit event atomically. A second creation for the same
	// (user, organization) pair fails with apperrors.ErrDuplicate.
	CreateMembership(ctx context.Context, membership domain.Membership, audit domain.AuditEvent) error

	// UpdateMembershipRole changes a membership's role and records the
	// role_change audit event atomically.
	UpdateMembershipRole(ctx context.Context, membershipID string, role domain.Role, audit domain.AuditEvent) error

	// DeleteMembership removes a membership and records the
	// membership_deleted audit event atomically.
	DeleteMembership(ctx context.Context, membershipID string, audit domain.AuditEvent) error

	// FindMembership retrieves the membership of a user in an organization.
	FindMembership(ctx context.Context, userID, organizationID string) (*domain.Membership, error)

	// FindMembershipByID retrieves a membership by its ID.
	FindMembershipByID(ctx context.Context, membershipID string) (*domain.Membership, error)

	// ListMembershipsByUserID retrieves all memberships of a user.
	ListMembershipsByUserID(ctx context.Context, userID string) ([]domain.Membership, error)

	// ListMembershipsByOrganizationID retrieves all memberships of an organization.
	ListMembershipsByOrganizationID(ctx context.Context, organizationID string) ([]domain.Membership, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
	MembershipManager
}

// OrganizationRepositoryWithTx extends OrganizationRepositoryFacade with transaction capabilities
type OrganizationRepositoryWithTx interface {
	OrganizationRepositoryFacade
	TransactionManager
}
