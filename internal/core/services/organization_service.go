package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portsrepo "github.com/benefitkit/benefits_admin_app/internal/core/ports/repositories"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/google/uuid"
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	orgRepo   portsrepo.OrganizationRepositoryWithTx
	accessSvc portssvc.AccessSvcFacade
	auditSvc  portssvc.AuditSvcFacade
}

// NewOrganizationService creates a new organization service with the provided dependencies
func NewOrganizationService(
	orgRepo portsrepo.OrganizationRepositoryWithTx,
	accessSvc portssvc.AccessSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo:   orgRepo,
		accessSvc: accessSvc,
		auditSvc:  auditSvc,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// FindOrganizationByID retrieves a specific organization by its ID.
func (s *organizationService) FindOrganizationByID(ctx context.Context, access domain.AccessContext, organizationID string) (*domain.Organization, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionRead, nil); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}

	visible, err := s.accessSvc.FilterOrganizations(ctx, access, []domain.Organization{*org})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		// Hidden tenants look like missing tenants.
		return nil, apperrors.NewNotFoundError("organization", organizationID)
	}
	return org, nil
}

// ListOrganizations retrieves the organizations the actor may see.
func (s *organizationService) ListOrganizations(ctx context.Context, access domain.AccessContext) ([]domain.Organization, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionRead, nil); err != nil {
		return nil, err
	}

	orgs, err := s.orgRepo.ListOrganizations(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations")
		return nil, err
	}
	return s.accessSvc.FilterOrganizations(ctx, access, orgs)
}

// CreateOrganization persists a new organization with a derived slug.
func (s *organizationService) CreateOrganization(ctx context.Context, access domain.AccessContext, req dto.CreateOrganizationRequest) (*domain.Organization, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionCreate, nil); err != nil {
		return nil, err
	}

	orgType := domain.OrganizationType(req.Type)
	if !orgType.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown organization type: " + req.Type)
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		Slug:           domain.Slugify(req.Name),
		Type:           orgType,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(access.UserID, now),
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization",
			slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("organization_id", org.OrganizationID),
		slog.String("type", string(org.Type)))
	return &org, nil
}

// UpdateOrganization persists changes to an existing organization.
func (s *organizationService) UpdateOrganization(ctx context.Context, access domain.AccessContext, organizationID string, req dto.UpdateOrganizationRequest) (*domain.Organization, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionUpdate, &organizationID); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
		org.Slug = domain.Slugify(*req.Name)
	}
	if req.IsActive != nil {
		org.IsActive = *req.IsActive
	}
	org.Touch(access.UserID, time.Now())

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to update organization",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	return org, nil
}

// DeactivateOrganization soft-disables an organization. Organizations are
// never hard deleted; audit events keep referencing them.
func (s *organizationService) DeactivateOrganization(ctx context.Context, access domain.AccessContext, organizationID string) error {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceOrganizations, domain.ActionDelete, &organizationID); err != nil {
		return err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return err
	}
	if !org.IsActive {
		return nil
	}

	org.IsActive = false
	org.Touch(access.UserID, time.Now())
	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to deactivate organization",
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "Organization deactivated",
		slog.String("organization_id", organizationID))
	return nil
}

// CreateMembership binds a user to an organization with a role. The
// membership row and its membership_created audit event commit together.
func (s *organizationService) CreateMembership(ctx context.Context, access domain.AccessContext, organizationID string, req dto.CreateMembershipRequest) (*domain.Membership, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceUsers, domain.ActionManage, &organizationID); err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role: " + req.Role)
	}
	if _, err := s.orgRepo.FindOrganizationByID(ctx, organizationID); err != nil {
		return nil, err
	}

	now := time.Now()
	membership := domain.Membership{
		MembershipID:   uuid.NewString(),
		UserID:         req.UserID,
		OrganizationID: organizationID,
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	audit := s.auditSvc.BuildEvent(ctx, portssvc.AuditEntry{
		EventKind:      domain.AuditMembershipCreated,
		UserID:         &access.UserID,
		OrganizationID: &organizationID,
		Metadata: map[string]any{
			"membership_id":  membership.MembershipID,
			"target_user_id": req.UserID,
			"role":           string(role),
		},
	})

	if err := s.orgRepo.CreateMembership(ctx, membership, audit); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("user is already a member of this organization")
		}
		s.LogError(ctx, err, "Failed to create membership",
			slog.String("organization_id", organizationID),
			slog.String("target_user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Membership created",
		slog.String("membership_id", membership.MembershipID),
		slog.String("organization_id", organizationID),
		slog.String("role", string(role)))
	return &membership, nil
}

// ChangeMembershipRole updates a membership's role, emitting one role_change
// audit event with the old and new role in its metadata.
func (s *organizationService) ChangeMembershipRole(ctx context.Context, access domain.AccessContext, organizationID, membershipID string, newRole domain.Role) (*domain.Membership, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceUsers, domain.ActionManage, &organizationID); err != nil {
		return nil, err
	}
	if !newRole.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role: " + string(newRole))
	}

	membership, err := s.orgRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("membership", membershipID)
	}
	if membership.Role == newRole {
		return membership, nil
	}

	audit := s.auditSvc.BuildEvent(ctx, portssvc.AuditEntry{
		EventKind:      domain.AuditRoleChange,
		UserID:         &access.UserID,
		OrganizationID: &organizationID,
		Metadata: map[string]any{
			"membership_id":  membershipID,
			"target_user_id": membership.UserID,
			"old_role":       string(membership.Role),
			"new_role":       string(newRole),
		},
	})

	if err := s.orgRepo.UpdateMembershipRole(ctx, membershipID, newRole, audit); err != nil {
		s.LogError(ctx, err, "Failed to change membership role",
			slog.String("membership_id", membershipID))
		return nil, err
	}

	membership.Role = newRole
	membership.UpdatedAt = time.Now()
	s.LogInfo(ctx, "Membership role changed",
		slog.String("membership_id", membershipID),
		slog.String("new_role", string(newRole)))
	return membership, nil
}

// RemoveMembership deletes a membership together with its
// membership_deleted audit event.
func (s *organizationService) RemoveMembership(ctx context.Context, access domain.AccessContext, organizationID, membershipID string) error {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceUsers, domain.ActionManage, &organizationID); err != nil {
		return err
	}

	membership, err := s.orgRepo.FindMembershipByID(ctx, membershipID)
	if err != nil {
		return err
	}
	if membership.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("membership", membershipID)
	}

	audit := s.auditSvc.BuildEvent(ctx, portssvc.AuditEntry{
		EventKind:      domain.AuditMembershipDeleted,
		UserID:         &access.UserID,
		OrganizationID: &organizationID,
		Metadata: map[string]any{
			"membership_id":  membershipID,
			"target_user_id": membership.UserID,
			"role":           string(membership.Role),
		},
	})

	if err := s.orgRepo.DeleteMembership(ctx, membershipID, audit); err != nil {
		s.LogError(ctx, err, "Failed to delete membership",
			slog.String("membership_id", membershipID))
		return err
	}

	s.LogInfo(ctx, "Membership deleted",
		slog.String("membership_id", membershipID),
		slog.String("organization_id", organizationID))
	return nil
}

// ListMemberships retrieves memberships of an organization.
func (s *organizationService) ListMemberships(ctx context.Context, access domain.AccessContext, organizationID string) ([]domain.Membership, error) {
	if err := s.accessSvc.RequirePermission(ctx, access, domain.ResourceUsers, domain.ActionRead, nil); err != nil {
		return nil, err
	}

	visible, err := s.accessSvc.FilterOrganizations(ctx, access, []domain.Organization{{OrganizationID: organizationID}})
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, apperrors.NewNotFoundError("organization", organizationID)
	}

	memberships, err := s.orgRepo.ListMembershipsByOrganizationID(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if memberships == nil {
		return []domain.Membership{}, nil
	}
	return memberships, nil
}
