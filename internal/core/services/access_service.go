package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
)

// accessService implements the AccessSvcFacade interface: resolver,
// permission evaluator, and collection filter share one implementation so
// they cannot disagree about what the actor may see.
type accessService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryFacade
	orgRepo      portsrepo.OrganizationRepositoryFacade
	brokerRepo   portsrepo.BrokerRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewAccessService creates a new access service with the provided dependencies
func NewAccessService(
	userRepo portsrepo.UserRepositoryFacade,
	orgRepo portsrepo.OrganizationRepositoryFacade,
	brokerRepo portsrepo.BrokerRepositoryFacade,
	employeeRepo portsrepo.EmployeeRepositoryFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.AccessSvcFacade {
	return &accessService{
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		brokerRepo:   brokerRepo,
		employeeRepo: employeeRepo,
		auditSvc:     auditSvc,
	}
}

var _ portssvc.AccessSvcFacade = (*accessService)(nil)

// ResolveAccess computes the actor's effective role and organization.
// Memberships are authoritative; the legacy profile is consulted only when
// the user has no memberships at all. A user with neither resolves to a
// context with no role, which denies everything downstream.
func (s *accessService) ResolveAccess(ctx context.Context, userID string) (domain.AccessContext, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user for access resolution",
				slog.String("user_id", userID))
		}
		return domain.AccessContext{}, err
	}

	access := domain.AccessContext{
		UserID:      user.UserID,
		IsSuperuser: user.IsSuperuser,
	}

	memberships, err := s.orgRepo.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships for access resolution",
			slog.String("user_id", userID))
		return domain.AccessContext{}, err
	}

	if len(memberships) > 0 {
		primary := primaryMembership(memberships)
		access.Role = primary.Role
		orgID := primary.OrganizationID
		access.OrganizationID = &orgID
		return access, nil
	}

	profile, err := s.userRepo.FindAccessProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return access, nil
		}
		s.LogError(ctx, err, "Failed to load access profile",
			slog.String("user_id", userID))
		return domain.AccessContext{}, err
	}

	access.Role = profile.Role
	access.OrganizationID = profile.OrganizationID
	return access, nil
}

// primaryMembership picks the membership that defines the actor's effective
// role: highest role level wins, ties broken by earliest creation so the
// result is stable.
func primaryMembership(memberships []domain.Membership) domain.Membership {
	sorted := append([]domain.Membership(nil), memberships...)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := sorted[i].Role.Level(), sorted[j].Role.Level()
		if li != lj {
			return li > lj
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted[0]
}

// AccessibleOrganizations computes the set of organization IDs the actor may
// act within. Broker-family roles inherit their sponsored employers'
// organizations, one hop only: an employer's own partners are never reachable
// through the broker.
func (s *accessService) AccessibleOrganizations(ctx context.Context, access domain.AccessContext) ([]string, error) {
	if access.Superuser() {
		ids, err := s.orgRepo.ListActiveOrganizationIDs(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to list active organizations")
			return nil, err
		}
		return ids, nil
	}

	if !access.HasResolvableRole() || access.OrganizationID == nil {
		return []string{}, nil
	}

	ownOrg := *access.OrganizationID
	if !access.Role.IsBrokerFamily() {
		return []string{ownOrg}, nil
	}

	employerOrgs, err := s.brokerRepo.ListEmployerOrgIDsByBrokerOrg(ctx, ownOrg)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sponsored employer organizations",
			slog.String("broker_org_id", ownOrg))
		return nil, err
	}

	result := make([]string, 0, len(employerOrgs)+1)
	result = append(result, ownOrg)
	for _, id := range employerOrgs {
		if id != ownOrg {
			result = append(result, id)
		}
	}
	return result, nil
}

// CanManageUser reports whether the actor may manage the target user:
// superusers manage anyone, everyone else needs a strictly higher role level
// than the target and a shared organization.
func (s *accessService) CanManageUser(ctx context.Context, access domain.AccessContext, targetUserID string) (bool, error) {
	if access.Superuser() {
		return true, nil
	}
	if !access.HasResolvableRole() {
		return false, nil
	}

	target, err := s.ResolveAccess(ctx, targetUserID)
	if err != nil {
		return false, err
	}
	if target.Superuser() {
		return false, nil
	}
	if access.EffectiveRole().Level() <= target.EffectiveRole().Level() {
		return false, nil
	}
	if access.OrganizationID == nil || target.OrganizationID == nil {
		return false, nil
	}
	return *access.OrganizationID == *target.OrganizationID, nil
}

// HasPermission checks the permission table and, for organization-scoped
// actions with an organization context, the actor's tenant access. Pure: no
// audit side effect, usable in loops and filters.
func (s *accessService) HasPermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) bool {
	allowed, _ := s.evaluate(ctx, access, resource, action, organizationID)
	return allowed
}

// RequirePermission is the guarded variant: every denial emits exactly one
// permission_denied audit event before returning ErrForbidden.
func (s *accessService) RequirePermission(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) error {
	allowed, reason := s.evaluate(ctx, access, resource, action, organizationID)
	if allowed {
		return nil
	}

	metadata := map[string]any{
		"resource": string(resource),
		"action":   string(action),
		"role":     string(access.EffectiveRole()),
		"reason":   reason,
	}
	if organizationID != nil {
		metadata["organization_id"] = *organizationID
	}
	s.auditSvc.Record(ctx, portssvc.AuditEntry{
		EventKind:      domain.AuditPermissionDenied,
		UserID:         &access.UserID,
		OrganizationID: organizationID,
		Metadata:       metadata,
	})
	s.LogInfo(ctx, "Permission denied",
		slog.String("user_id", access.UserID),
		slog.String("resource", string(resource)),
		slog.String("action", string(action)),
		slog.String("reason", reason))
	return apperrors.NewPermissionDeniedError(string(resource), string(action))
}

// evaluate applies the decision rules in order: superuser bypass, resolvable
// role, static table, then organization scope. The reason tag names the first
// rule that failed.
func (s *accessService) evaluate(ctx context.Context, access domain.AccessContext, resource domain.Resource, action domain.Action, organizationID *string) (bool, string) {
	if access.Superuser() {
		return true, ""
	}
	if !access.HasResolvableRole() {
		return false, domain.DenyReasonNoMembership
	}
	if !domain.RoleAllows(access.EffectiveRole(), resource, action) {
		return false, domain.DenyReasonInsufficientRole
	}
	if domain.OrgScopedActions[action] && organizationID != nil {
		orgSet, err := s.accessibleOrgSet(ctx, access)
		if err != nil {
			return false, domain.DenyReasonNoMembership
		}
		if !orgSet[*organizationID] {
			return false, domain.DenyReasonNoMembership
		}
	}
	return true, ""
}

// UserPermissions returns the actor's full resource -> actions mapping.
// Superusers get every resource with every action; the static table never
// holds a super_admin row.
func (s *accessService) UserPermissions(access domain.AccessContext) map[domain.Resource][]domain.Action {
	if access.Superuser() {
		return domain.SuperAdminPermissions()
	}
	if !access.HasResolvableRole() {
		return map[domain.Resource][]domain.Action{}
	}
	return domain.PermissionsForRole(access.EffectiveRole())
}

func (s *accessService) accessibleOrgSet(ctx context.Context, access domain.AccessContext) (map[string]bool, error) {
	ids, err := s.AccessibleOrganizations(ctx, access)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// FilterEmployees keeps employees the actor may see. The employee role sees
// only its own record; everyone else sees employees whose employer belongs
// to an accessible organization.
func (s *accessService) FilterEmployees(ctx context.Context, access domain.AccessContext, employees []domain.Employee) ([]domain.Employee, error) {
	if access.Superuser() {
		return employees, nil
	}
	if !access.HasResolvableRole() {
		return []domain.Employee{}, nil
	}

	if access.EffectiveRole() == domain.RoleEmployee {
		own, err := s.ownEmployeeID(ctx, access.UserID)
		if err != nil {
			return nil, err
		}
		result := []domain.Employee{}
		for _, emp := range employees {
			if own != "" && emp.EmployeeID == own {
				result = append(result, emp)
			}
		}
		return result, nil
	}

	orgSet, err := s.accessibleOrgSet(ctx, access)
	if err != nil {
		return nil, err
	}
	employerOrgs, err := s.employerOrgIndex(ctx, employeeEmployerIDs(employees))
	if err != nil {
		return nil, err
	}

	result := []domain.Employee{}
	for _, emp := range employees {
		if orgSet[employerOrgs[emp.EmployerID]] {
			result = append(result, emp)
		}
	}
	return result, nil
}

// FilterEmployers keeps employers whose tenant organization is accessible.
func (s *accessService) FilterEmployers(ctx context.Context, access domain.AccessContext, employers []domain.Employer) ([]domain.Employer, error) {
	if access.Superuser() {
		return employers, nil
	}
	if !access.HasResolvableRole() {
		return []domain.Employer{}, nil
	}

	orgSet, err := s.accessibleOrgSet(ctx, access)
	if err != nil {
		return nil, err
	}
	result := []domain.Employer{}
	for _, employer := range employers {
		if orgSet[employer.OrganizationID] {
			result = append(result, employer)
		}
	}
	return result, nil
}

// FilterEnrollments keeps enrollments the actor may see: the employee role
// sees only its own, others see enrollments of employees under accessible
// employers.
func (s *accessService) FilterEnrollments(ctx context.Context, access domain.AccessContext, enrollments []domain.EmployeeEnrollment) ([]domain.EmployeeEnrollment, error) {
	if access.Superuser() {
		return enrollments, nil
	}
	if !access.HasResolvableRole() {
		return []domain.EmployeeEnrollment{}, nil
	}

	if access.EffectiveRole() == domain.RoleEmployee {
		own, err := s.ownEmployeeID(ctx, access.UserID)
		if err != nil {
			return nil, err
		}
		result := []domain.EmployeeEnrollment{}
		for _, enr := range enrollments {
			if own != "" && enr.EmployeeID == own {
				result = append(result, enr)
			}
		}
		return result, nil
	}

	orgSet, err := s.accessibleOrgSet(ctx, access)
	if err != nil {
		return nil, err
	}

	// Employee -> employer org resolution, memoized per distinct employee.
	employeeOrg := map[string]string{}
	employerOrg := map[string]string{}
	result := []domain.EmployeeEnrollment{}
	for _, enr := range enrollments {
		org, seen := employeeOrg[enr.EmployeeID]
		if !seen {
			emp, err := s.employeeRepo.FindEmployeeByID(ctx, enr.EmployeeID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					employeeOrg[enr.EmployeeID] = ""
					continue
				}
				return nil, err
			}
			org, seen = employerOrg[emp.EmployerID]
			if !seen {
				idx, err := s.employerOrgIndex(ctx, []string{emp.EmployerID})
				if err != nil {
					return nil, err
				}
				org = idx[emp.EmployerID]
				employerOrg[emp.EmployerID] = org
			}
			employeeOrg[enr.EmployeeID] = org
		}
		if org != "" && orgSet[org] {
			result = append(result, enr)
		}
	}
	return result, nil
}

// FilterOrganizations keeps organizations in the actor's accessible set.
func (s *accessService) FilterOrganizations(ctx context.Context, access domain.AccessContext, orgs []domain.Organization) ([]domain.Organization, error) {
	if access.Superuser() {
		return orgs, nil
	}
	if !access.HasResolvableRole() {
		return []domain.Organization{}, nil
	}

	orgSet, err := s.accessibleOrgSet(ctx, access)
	if err != nil {
		return nil, err
	}
	result := []domain.Organization{}
	for _, org := range orgs {
		if orgSet[org.OrganizationID] {
			result = append(result, org)
		}
	}
	return result, nil
}

// ownEmployeeID resolves the employee record linked to a portal user, empty
// when none exists.
func (s *accessService) ownEmployeeID(ctx context.Context, userID string) (string, error) {
	emp, err := s.employeeRepo.FindEmployeeByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return emp.EmployeeID, nil
}

// employerOrgIndex maps employer IDs to their tenant organization IDs.
func (s *accessService) employerOrgIndex(ctx context.Context, employerIDs []string) (map[string]string, error) {
	if len(employerIDs) == 0 {
		return map[string]string{}, nil
	}
	employers, err := s.brokerRepo.FindEmployersByIDs(ctx, employerIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve employer organizations")
		return nil, err
	}
	index := make(map[string]string, len(employers))
	for _, employer := range employers {
		index[employer.EmployerID] = employer.OrganizationID
	}
	return index, nil
}

func employeeEmployerIDs(employees []domain.Employee) []string {
	seen := map[string]bool{}
	ids := []string{}
	for _, emp := range employees {
		if !seen[emp.EmployerID] {
			seen[emp.EmployerID] = true
			ids = append(ids, emp.EmployerID)
		}
	}
	return ids
}
