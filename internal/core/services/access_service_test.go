package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type AccessServiceTestSuite struct {
	suite.Suite
	userRepo     *fakeUserRepo
	orgRepo      *fakeOrgRepo
	brokerRepo   *fakeBrokerRepo
	employeeRepo *fakeEmployeeRepo
	auditSvc     *recordingAuditSvc
	service      portssvc.AccessSvcFacade
}

func (s *AccessServiceTestSuite) SetupTest() {
	s.userRepo = &fakeUserRepo{}
	s.orgRepo = &fakeOrgRepo{}
	s.brokerRepo = &fakeBrokerRepo{}
	s.employeeRepo = &fakeEmployeeRepo{}
	s.auditSvc = &recordingAuditSvc{}
	s.service = services.NewAccessService(s.userRepo, s.orgRepo, s.brokerRepo, s.employeeRepo, s.auditSvc)
}

func strPtr(v string) *string { return &v }

func accessFor(role domain.Role, orgID string) domain.AccessContext {
	return domain.AccessContext{
		UserID:         "actor-1",
		Role:           role,
		OrganizationID: strPtr(orgID),
	}
}

// --- ResolveAccess ---

func (s *AccessServiceTestSuite) TestResolveAccess_MembershipsWinOverProfile() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}
	s.orgRepo.ListMembershipsByUserIDFn = func(ctx context.Context, userID string) ([]domain.Membership, error) {
		return []domain.Membership{
			{MembershipID: "m1", UserID: userID, OrganizationID: "org-low", Role: domain.RoleEmployerHR, CreatedAt: time.Now().Add(-time.Hour)},
			{MembershipID: "m2", UserID: userID, OrganizationID: "org-high", Role: domain.RoleBrokerAdmin, CreatedAt: time.Now()},
		}, nil
	}
	s.userRepo.FindAccessProfileByUserIDFn = func(ctx context.Context, userID string) (*domain.AccessProfile, error) {
		s.Fail("profile must not be consulted when memberships exist")
		return nil, nil
	}

	access, err := s.service.ResolveAccess(ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.RoleBrokerAdmin, access.Role)
	s.Require().NotNil(access.OrganizationID)
	s.Equal("org-high", *access.OrganizationID)
}

func (s *AccessServiceTestSuite) TestResolveAccess_FallsBackToProfile() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}
	s.userRepo.FindAccessProfileByUserIDFn = func(ctx context.Context, userID string) (*domain.AccessProfile, error) {
		return &domain.AccessProfile{UserID: userID, Role: domain.RoleEmployerAdmin, OrganizationID: strPtr("org-legacy")}, nil
	}

	access, err := s.service.ResolveAccess(ctx, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.RoleEmployerAdmin, access.Role)
	s.Require().NotNil(access.OrganizationID)
	s.Equal("org-legacy", *access.OrganizationID)
}

func (s *AccessServiceTestSuite) TestResolveAccess_NoMembershipNoProfile() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}

	access, err := s.service.ResolveAccess(ctx, "user-1")

	s.Require().NoError(err)
	s.False(access.HasResolvableRole())
	s.Nil(access.OrganizationID)
}

// --- AccessibleOrganizations ---

func (s *AccessServiceTestSuite) TestAccessibleOrganizations_SuperuserSeesAllActive() {
	ctx := context.Background()
	s.orgRepo.ListActiveOrganizationIDsFn = func(ctx context.Context) ([]string, error) {
		return []string{"org-a", "org-b", "org-c"}, nil
	}

	ids, err := s.service.AccessibleOrganizations(ctx, domain.AccessContext{UserID: "root", IsSuperuser: true})

	s.Require().NoError(err)
	s.Equal([]string{"org-a", "org-b", "org-c"}, ids)
}

func (s *AccessServiceTestSuite) TestAccessibleOrganizations_BrokerInheritsOneHop() {
	ctx := context.Background()
	s.brokerRepo.ListEmployerOrgIDsByBrokerOrgFn = func(ctx context.Context, brokerOrgID string) ([]string, error) {
		s.Equal("org-broker", brokerOrgID)
		return []string{"org-emp-1", "org-emp-2"}, nil
	}

	ids, err := s.service.AccessibleOrganizations(ctx, accessFor(domain.RoleBrokerUser, "org-broker"))

	s.Require().NoError(err)
	s.Equal([]string{"org-broker", "org-emp-1", "org-emp-2"}, ids)
}

func (s *AccessServiceTestSuite) TestAccessibleOrganizations_EmployerSeesOnlyOwn() {
	ctx := context.Background()
	s.brokerRepo.ListEmployerOrgIDsByBrokerOrgFn = func(ctx context.Context, brokerOrgID string) ([]string, error) {
		s.Fail("employer roles must not traverse the broker edge")
		return nil, nil
	}

	ids, err := s.service.AccessibleOrganizations(ctx, accessFor(domain.RoleEmployerAdmin, "org-emp"))

	s.Require().NoError(err)
	s.Equal([]string{"org-emp"}, ids)
}

func (s *AccessServiceTestSuite) TestAccessibleOrganizations_NoRoleIsEmpty() {
	ctx := context.Background()

	ids, err := s.service.AccessibleOrganizations(ctx, domain.AccessContext{UserID: "nobody"})

	s.Require().NoError(err)
	s.Empty(ids)
}

// --- Permission evaluation ---

func (s *AccessServiceTestSuite) TestRequirePermission_SuperuserBypassesTable() {
	ctx := context.Background()

	err := s.service.RequirePermission(ctx, domain.AccessContext{UserID: "root", IsSuperuser: true},
		domain.ResourceAuditEvents, domain.ActionDelete, nil)

	s.NoError(err)
	s.Empty(s.auditSvc.Entries)
}

func (s *AccessServiceTestSuite) TestRequirePermission_SuperAdminMembershipBypassesTable() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID, IsSuperuser: false}, nil
	}
	s.orgRepo.ListMembershipsByUserIDFn = func(ctx context.Context, userID string) ([]domain.Membership, error) {
		return []domain.Membership{
			{MembershipID: "m1", UserID: userID, OrganizationID: "org-hq", Role: domain.RoleSuperAdmin, CreatedAt: time.Now()},
		}, nil
	}

	access, err := s.service.ResolveAccess(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(domain.RoleSuperAdmin, access.Role)

	// The bypass must not depend on the account flag; a super_admin role
	// granted through a membership is just as absolute.
	s.True(s.service.HasPermission(ctx, access, domain.ResourceEmployees, domain.ActionRead, nil))
	s.NoError(s.service.RequirePermission(ctx, access, domain.ResourceAuditEvents, domain.ActionDelete, nil))
	s.Empty(s.auditSvc.Entries)
}

func (s *AccessServiceTestSuite) TestAccessibleOrganizations_SuperAdminRoleSeesAllActive() {
	ctx := context.Background()
	s.orgRepo.ListActiveOrganizationIDsFn = func(ctx context.Context) ([]string, error) {
		return []string{"org-a", "org-b"}, nil
	}

	access := accessFor(domain.RoleSuperAdmin, "org-hq")
	ids, err := s.service.AccessibleOrganizations(ctx, access)

	s.Require().NoError(err)
	s.Equal([]string{"org-a", "org-b"}, ids)
}

func (s *AccessServiceTestSuite) TestRequirePermission_DenialEmitsOneAuditEvent() {
	ctx := context.Background()
	access := accessFor(domain.RoleEmployee, "org-emp")

	err := s.service.RequirePermission(ctx, access, domain.ResourceEmployers, domain.ActionCreate, nil)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	var denied *apperrors.PermissionDeniedError
	s.Require().ErrorAs(err, &denied)
	s.Equal(string(domain.ResourceEmployers), denied.Resource)
	s.Equal(string(domain.ActionCreate), denied.Action)
	s.Require().Len(s.auditSvc.Entries, 1)
	entry := s.auditSvc.Entries[0]
	s.Equal(domain.AuditPermissionDenied, entry.EventKind)
	s.Equal(domain.DenyReasonInsufficientRole, entry.Metadata["reason"])
	s.Equal(string(domain.ResourceEmployers), entry.Metadata["resource"])
	s.Equal(string(domain.ActionCreate), entry.Metadata["action"])
}

func (s *AccessServiceTestSuite) TestRequirePermission_NoRoleDeniedWithReason() {
	ctx := context.Background()

	err := s.service.RequirePermission(ctx, domain.AccessContext{UserID: "nobody"},
		domain.ResourceEmployees, domain.ActionRead, nil)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.DenyReasonNoMembership, s.auditSvc.Entries[0].Metadata["reason"])
}

func (s *AccessServiceTestSuite) TestRequirePermission_OrgScopeDeniesForeignTenant() {
	ctx := context.Background()
	access := accessFor(domain.RoleEmployerAdmin, "org-mine")

	err := s.service.RequirePermission(ctx, access, domain.ResourceEmployees, domain.ActionCreate, strPtr("org-other"))

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.DenyReasonNoMembership, s.auditSvc.Entries[0].Metadata["reason"])
}

func (s *AccessServiceTestSuite) TestHasPermission_OrgScopedAllowWithinTenant() {
	ctx := context.Background()
	access := accessFor(domain.RoleEmployerAdmin, "org-mine")

	s.True(s.service.HasPermission(ctx, access, domain.ResourceEmployees, domain.ActionCreate, strPtr("org-mine")))
	s.False(s.service.HasPermission(ctx, access, domain.ResourceEmployees, domain.ActionCreate, strPtr("org-other")))
	s.Empty(s.auditSvc.Entries, "HasPermission must not audit")
}

func (s *AccessServiceTestSuite) TestHasPermission_BrokerReachesSponsoredEmployerOrg() {
	ctx := context.Background()
	s.brokerRepo.ListEmployerOrgIDsByBrokerOrgFn = func(ctx context.Context, brokerOrgID string) ([]string, error) {
		return []string{"org-emp-1"}, nil
	}
	access := accessFor(domain.RoleBrokerAdmin, "org-broker")

	s.True(s.service.HasPermission(ctx, access, domain.ResourceEmployees, domain.ActionUpdate, strPtr("org-emp-1")))
	s.False(s.service.HasPermission(ctx, access, domain.ResourceEmployees, domain.ActionUpdate, strPtr("org-emp-unrelated")))
}

func (s *AccessServiceTestSuite) TestUserPermissions_EmptyWithoutRole() {
	s.Empty(s.service.UserPermissions(domain.AccessContext{UserID: "nobody"}))
	s.NotEmpty(s.service.UserPermissions(accessFor(domain.RoleBrokerUser, "org-b")))
}

func (s *AccessServiceTestSuite) TestUserPermissions_SuperuserGetsEveryResource() {
	flagged := s.service.UserPermissions(domain.AccessContext{UserID: "root", IsSuperuser: true})
	resolved := s.service.UserPermissions(accessFor(domain.RoleSuperAdmin, "org-hq"))

	for _, perms := range []map[domain.Resource][]domain.Action{flagged, resolved} {
		s.Contains(perms, domain.ResourceAuditEvents)
		s.Contains(perms, domain.ResourceBilling)
		s.Contains(perms[domain.ResourceAuditEvents], domain.ActionDelete)
		s.Len(perms, 11)
	}
}

// --- CanManageUser ---

func (s *AccessServiceTestSuite) TestCanManageUser_HierarchyAndTenancy() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}
	s.orgRepo.ListMembershipsByUserIDFn = func(ctx context.Context, userID string) ([]domain.Membership, error) {
		return []domain.Membership{
			{MembershipID: "m", UserID: userID, OrganizationID: "org-emp", Role: domain.RoleEmployerHR, CreatedAt: time.Now()},
		}, nil
	}

	admin := accessFor(domain.RoleEmployerAdmin, "org-emp")
	ok, err := s.service.CanManageUser(ctx, admin, "target-1")
	s.Require().NoError(err)
	s.True(ok, "employer admin manages HR in the same organization")

	peer := accessFor(domain.RoleEmployerHR, "org-emp")
	ok, err = s.service.CanManageUser(ctx, peer, "target-1")
	s.Require().NoError(err)
	s.False(ok, "equal level never manages")

	foreign := accessFor(domain.RoleEmployerAdmin, "org-other")
	ok, err = s.service.CanManageUser(ctx, foreign, "target-1")
	s.Require().NoError(err)
	s.False(ok, "different organization never manages")
}

func (s *AccessServiceTestSuite) TestCanManageUser_SuperuserManagesAnyone() {
	ctx := context.Background()

	ok, err := s.service.CanManageUser(ctx, domain.AccessContext{UserID: "root", IsSuperuser: true}, "whoever")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.service.CanManageUser(ctx, accessFor(domain.RoleSuperAdmin, "org-hq"), "whoever")
	s.Require().NoError(err)
	s.True(ok, "role-resolved super_admin manages anyone too")
}

// --- Collection filters ---

func (s *AccessServiceTestSuite) TestFilterEmployers_KeepsAccessibleOnly() {
	ctx := context.Background()
	employers := []domain.Employer{
		{EmployerID: "e1", OrganizationID: "org-mine"},
		{EmployerID: "e2", OrganizationID: "org-other"},
	}

	got, err := s.service.FilterEmployers(ctx, accessFor(domain.RoleEmployerAdmin, "org-mine"), employers)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("e1", got[0].EmployerID)
}

func (s *AccessServiceTestSuite) TestFilterEmployers_NoRoleEmptyNotError() {
	ctx := context.Background()
	employers := []domain.Employer{{EmployerID: "e1", OrganizationID: "org-a"}}

	got, err := s.service.FilterEmployers(ctx, domain.AccessContext{UserID: "nobody"}, employers)

	s.Require().NoError(err)
	s.Empty(got)
}

func (s *AccessServiceTestSuite) TestFilterEmployees_EmployeeSeesOwnRecordOnly() {
	ctx := context.Background()
	s.employeeRepo.FindEmployeeByUserIDFn = func(ctx context.Context, userID string) (*domain.Employee, error) {
		return &domain.Employee{EmployeeID: "emp-self", EmployerID: "er-1"}, nil
	}
	employees := []domain.Employee{
		{EmployeeID: "emp-self", EmployerID: "er-1"},
		{EmployeeID: "emp-coworker", EmployerID: "er-1"},
	}

	got, err := s.service.FilterEmployees(ctx, accessFor(domain.RoleEmployee, "org-emp"), employees)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("emp-self", got[0].EmployeeID)
}

func (s *AccessServiceTestSuite) TestFilterEmployees_OrgScopedForManagers() {
	ctx := context.Background()
	s.brokerRepo.FindEmployersByIDsFn = func(ctx context.Context, employerIDs []string) ([]domain.Employer, error) {
		return []domain.Employer{
			{EmployerID: "er-mine", OrganizationID: "org-emp"},
			{EmployerID: "er-other", OrganizationID: "org-foreign"},
		}, nil
	}
	employees := []domain.Employee{
		{EmployeeID: "a", EmployerID: "er-mine"},
		{EmployeeID: "b", EmployerID: "er-other"},
	}

	got, err := s.service.FilterEmployees(ctx, accessFor(domain.RoleEmployerHR, "org-emp"), employees)

	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("a", got[0].EmployeeID)
}

func (s *AccessServiceTestSuite) TestFilterOrganizations_SuperuserKeepsAll() {
	ctx := context.Background()
	orgs := []domain.Organization{{OrganizationID: "o1"}, {OrganizationID: "o2"}}

	got, err := s.service.FilterOrganizations(ctx, domain.AccessContext{UserID: "root", IsSuperuser: true}, orgs)

	s.Require().NoError(err)
	s.Len(got, 2)
}

func TestAccessService(t *testing.T) {
	suite.Run(t, new(AccessServiceTestSuite))
}
