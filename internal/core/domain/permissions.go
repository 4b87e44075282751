package domain

import "strings"

// Role is the closed set of access roles. Roles form a strict hierarchy used
// for can-manage comparisons, and each role maps to a static table of
// resource -> allowed actions.
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleCarrierAdmin  Role = "carrier_admin"
	RoleCarrierUser   Role = "carrier_user"
	RoleBrokerAdmin   Role = "broker_admin"
	RoleBrokerUser    Role = "broker_user"
	RoleEmployerAdmin Role = "employer_admin"
	RoleEmployerHR    Role = "employer_hr"
	RoleEmployee      Role = "employee"
	RoleReadonlyUser  Role = "readonly_user"
)

// roleLevels orders roles for hierarchy comparisons. Higher wins.
var roleLevels = map[Role]int{
	RoleEmployee:      1,
	RoleEmployerHR:    2,
	RoleEmployerAdmin: 3,
	RoleBrokerUser:    4,
	RoleBrokerAdmin:   5,
	RoleCarrierUser:   6,
	RoleCarrierAdmin:  7,
	RoleSuperAdmin:    10,
}

// Level returns the role's hierarchy level, 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// IsSuperuser reports whether the role bypasses all permission checks.
func (r Role) IsSuperuser() bool {
	return r == RoleSuperAdmin
}

// IsBrokerFamily reports whether the role belongs to a broker organization.
// Broker-family roles inherit access to the employers their broker sponsors.
func (r Role) IsBrokerFamily() bool {
	return strings.HasPrefix(string(r), "broker_")
}

// IsEmployerFamily reports whether the role belongs to an employer organization.
func (r Role) IsEmployerFamily() bool {
	return strings.HasPrefix(string(r), "employer_")
}

// Resource names a permission-guarded resource class.
type Resource string

const (
	ResourceEmployees     Resource = "employees"
	ResourceEmployers     Resource = "employers"
	ResourcePlans         Resource = "plans"
	ResourceEnrollments   Resource = "enrollments"
	ResourceUsers         Resource = "users"
	ResourceRoles         Resource = "roles"
	ResourceOrganizations Resource = "organizations"
	ResourceSettings      Resource = "settings"
	ResourceReports       Resource = "reports"
	ResourceBilling       Resource = "billing"
	ResourceAuditEvents   Resource = "audit_events"
)

// Action names an operation on a resource.
type Action string

const (
	ActionCreate      Action = "create"
	ActionRead        Action = "read"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionManage      Action = "manage"
	ActionExport      Action = "export"
	ActionViewAll     Action = "view_all"
	ActionViewOrg     Action = "view_org"
	ActionViewOwn     Action = "view_own"
	ActionUpdateOwn   Action = "update_own"
	ActionViewCarrier Action = "view_carrier"
)

// OrgScopedActions are the actions whose grant additionally depends on the
// organization context supplied with the permission check.
var OrgScopedActions = map[Action]bool{
	ActionCreate: true,
	ActionUpdate: true,
	ActionDelete: true,
	ActionManage: true,
}

// rolePermissions is the single static role -> resource -> actions table.
// It is data, constructed once and never mutated at runtime; access goes
// through PermissionsForRole, which hands out copies. super_admin is allowed
// everything without consulting the table.
var rolePermissions = map[Role]map[Resource][]Action{
	RoleBrokerAdmin: {
		ResourceEmployees:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceEmployers:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourcePlans:       {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceEnrollments: {ActionRead, ActionUpdate, ActionExport},
		ResourceUsers:       {ActionCreate, ActionRead, ActionUpdate},
		ResourceReports:     {ActionRead, ActionExport, ActionViewOrg},
		ResourceSettings:    {ActionRead, ActionUpdate},
	},
	RoleBrokerUser: {
		ResourceEmployees:   {ActionRead, ActionUpdate},
		ResourceEmployers:   {ActionRead, ActionUpdate},
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionRead, ActionUpdate},
		ResourceReports:     {ActionRead},
	},
	RoleEmployerAdmin: {
		ResourceEmployees:   {ActionCreate, ActionRead, ActionUpdate},
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionRead},
		ResourceUsers:       {ActionCreate, ActionRead, ActionUpdate},
		ResourceReports:     {ActionRead, ActionViewOwn},
		ResourceSettings:    {ActionRead, ActionUpdate},
	},
	RoleEmployerHR: {
		ResourceEmployees:   {ActionRead, ActionUpdate},
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionRead},
		ResourceReports:     {ActionRead, ActionViewOwn},
	},
	RoleEmployee: {
		ResourceEmployees:   {ActionViewOwn},
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionViewOwn, ActionUpdateOwn},
	},
	RoleCarrierAdmin: {
		ResourcePlans:       {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceEnrollments: {ActionRead},
		ResourceReports:     {ActionRead, ActionViewCarrier},
	},
	RoleCarrierUser: {
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionRead},
		ResourceReports:     {ActionRead},
	},
	RoleReadonlyUser: {
		ResourceEmployees:   {ActionRead},
		ResourceEmployers:   {ActionRead},
		ResourcePlans:       {ActionRead},
		ResourceEnrollments: {ActionRead},
		ResourceReports:     {ActionRead},
	},
}

// allResources lists every guarded resource class.
var allResources = []Resource{
	ResourceEmployees,
	ResourceEmployers,
	ResourcePlans,
	ResourceEnrollments,
	ResourceUsers,
	ResourceRoles,
	ResourceOrganizations,
	ResourceSettings,
	ResourceReports,
	ResourceBilling,
	ResourceAuditEvents,
}

// allActions lists every action in the permission model.
var allActions = []Action{
	ActionCreate,
	ActionRead,
	ActionUpdate,
	ActionDelete,
	ActionManage,
	ActionExport,
	ActionViewAll,
	ActionViewOrg,
	ActionViewOwn,
	ActionUpdateOwn,
	ActionViewCarrier,
}

// SuperAdminPermissions returns every resource mapped to every action. The
// superuser bypass is computed, not stored: super_admin never appears in the
// static table, so its full grant is derived here when callers need the
// mapping itself rather than a yes/no check.
func SuperAdminPermissions() map[Resource][]Action {
	out := make(map[Resource][]Action, len(allResources))
	for _, res := range allResources {
		out[res] = append([]Action(nil), allActions...)
	}
	return out
}

// PermissionsForRole returns the resource -> actions mapping for a role.
// Unknown roles get an empty mapping (deny-by-default). The returned map is a
// copy; callers can't mutate the table.
func PermissionsForRole(role Role) map[Resource][]Action {
	src, ok := rolePermissions[role]
	if !ok {
		return map[Resource][]Action{}
	}
	out := make(map[Resource][]Action, len(src))
	for res, actions := range src {
		out[res] = append([]Action(nil), actions...)
	}
	return out
}

// RoleAllows reports whether the static table grants action on resource for
// role. It does not apply the super_admin bypass or organization scoping;
// those live in the access service.
func RoleAllows(role Role, resource Resource, action Action) bool {
	for _, a := range rolePermissions[role][resource] {
		if a == action {
			return true
		}
	}
	return false
}
