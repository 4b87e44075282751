package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// AccessResolverSvc resolves an actor's access context and accessible tenants.
type AccessResolverSvc interface {
	// ResolveAccess computes the actor's effective role and organization.
	// Memberships win over the legacy profile; a user with neither resolves to
	// a context with no role (deny-by-default downstream), never an error.
	ResolveAccess(ctx context.Context, userID string) (domain.AccessContext, error)

	// AccessibleOrganizations computes the set of organization IDs the actor
	// may act within: all active organizations for superusers, own broker
	// organization plus sponsored employer organizations for broker-family
	// roles, the actor's own organization otherwise, empty without one.
	AccessibleOrganizations(ctx context.Context, access domain.AccessContext) ([]string, error)

	// CanManageUser reports whether the actor may manage the target user
	// under the role hierarchy (strictly higher level, same organization
	// unless superuser).
	CanManageUser(ctx context.Context, access domain.AccessContext, targetUserID string) (bool, error)
}

// PermissionEvaluatorSvc answers allow/deny questions from the static
// role-permission table plus organization-context rules.
type PermissionEvaluatorSvc interface {
	// HasPermission checks the permission table and, for organization-scoped
	// actions with an organization context, the actor's tenant access. Pure:
	// no audit side effect.
	HasPermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) bool

	// RequirePermission is the guarded variant used by endpoints: every
	// denial emits exactly one permission_denied audit event carrying the
	// requested resource/action, the actor's role, and a reason tag, then
	// returns apperrors.ErrForbidden.
	RequirePermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) error

	// UserPermissions returns the actor's full resource -> actions mapping,
	// surfaced in the X-User-Permissions response header.
	UserPermissions(access domain.AccessContext) map[domain.Resource][]domain.Action
}

// CollectionFilterSvc narrows collections to the records the actor may see,
// mirroring the evaluator's organization rules. A user with no resolvable
// role gets an empty result, never an error.
type CollectionFilterSvc interface {
	// FilterEmployees keeps employees the actor may see: the employee role
	// sees only its own record, everyone else sees employees whose employer
	// belongs to an accessible organization.
	FilterEmployees(ctx context.Context, access domain.AccessContext, employees []domain.Employee) ([]domain.Employee, error)

	// FilterEmployers keeps employers the actor may see: broker-family sees
	// employers under its broker organization, employer-family sees its own.
	FilterEmployers(ctx context.Context, access domain.AccessContext, employers []domain.Employer) ([]domain.Employer, error)

	// FilterEnrollments keeps enrollments the actor may see: the employee
	// role sees only its own, others see enrollments of accessible employers.
	FilterEnrollments(ctx context.Context, access domain.AccessContext, enrollments []domain.EmployeeEnrollment) ([]domain.EmployeeEnrollment, error)

	// FilterOrganizations is the default fallback: keeps organizations in the
	// actor's accessible set.
	FilterOrganizations(ctx context.Context, access domain.AccessContext, orgs []domain.Organization) ([]domain.Organization, error)
}

// AccessSvcFacade combines all access-control service interfaces
type AccessSvcFacade interface {
	AccessResolverSvc
	PermissionEvaluatorSvc
	CollectionFilterSvc
}
