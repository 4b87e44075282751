package domain

// AccessContext is the actor's resolved role and organization, computed once
// at the access-evaluator boundary and carried through the whole operation so
// permission checks and collection filtering can't disagree mid-request.
//
// Resolution rule (single source of truth): the user's memberships are
// authoritative; the legacy access profile is consulted only when the user
// has no memberships at all.
type AccessContext struct {
	UserID         string  `json:"userID"`
	IsSuperuser    bool    `json:"isSuperuser"`
	Role           Role    `json:"role,omitempty"`
	OrganizationID *string `json:"organizationID,omitempty"`
}

// HasResolvableRole reports whether any role could be resolved for the actor.
func (a AccessContext) HasResolvableRole() bool {
	return a.IsSuperuser || a.Role.IsValid()
}

// Superuser reports whether the actor bypasses permission checks entirely.
// The bypass applies regardless of how superuser status was acquired: the
// account flag, or a super_admin role resolved from a membership or the
// legacy profile.
func (a AccessContext) Superuser() bool {
	return a.IsSuperuser || a.Role.IsSuperuser()
}

// EffectiveRole returns the role used for table lookups; superusers resolve
// to super_admin even without a profile or membership.
func (a AccessContext) EffectiveRole() Role {
	if a.IsSuperuser {
		return RoleSuperAdmin
	}
	return a.Role
}
