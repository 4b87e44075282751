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
	"github.com/benefitkit/benefits_admin_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryWithTx
	accessSvc portssvc.AccessResolverSvc
	auditSvc  portssvc.AuditSvcFacade
}

// NewUserService creates a new user service with the provided dependencies
func NewUserService(
	userRepo portsrepo.UserRepositoryWithTx,
	accessSvc portssvc.AccessResolverSvc,
	auditSvc portssvc.AuditSvcFacade,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:  userRepo,
		accessSvc: accessSvc,
		auditSvc:  auditSvc,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// FindUserByID retrieves a specific user by their ID.
func (s *userService) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// FindUserByEmail retrieves a specific user by email.
func (s *userService) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
		}
		return nil, err
	}
	return user, nil
}

// RegisterUser creates a new user with a hashed password and records a
// signup audit event.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		AuditFields:  domain.NewAuditFields(newUserID, now),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}

	s.auditSvc.Record(ctx, portssvc.AuditEntry{
		EventKind: domain.AuditSignup,
		UserID:    &user.UserID,
		Metadata:  map[string]any{"email": user.Email},
	})
	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID))
	return &user, nil
}

// AssignRole sets the target user's legacy profile role. The profile write
// and its role_change audit event commit together; a denied hierarchy check
// leaves both untouched.
func (s *userService) AssignRole(ctx context.Context, access domain.AccessContext, targetUserID string, role domain.Role, organizationID *string) error {
	if !role.IsValid() {
		return apperrors.NewValidationFailedError("unknown role: " + string(role))
	}

	canManage, err := s.accessSvc.CanManageUser(ctx, access, targetUserID)
	if err != nil {
		return err
	}
	if !canManage {
		s.auditSvc.Record(ctx, portssvc.AuditEntry{
			EventKind: domain.AuditPermissionDenied,
			UserID:    &access.UserID,
			Metadata: map[string]any{
				"resource":       string(domain.ResourceRoles),
				"action":         string(domain.ActionManage),
				"role":           string(access.EffectiveRole()),
				"reason":         domain.DenyReasonInsufficientRole,
				"target_user_id": targetUserID,
			},
		})
		return apperrors.ErrForbidden
	}

	target, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	var oldRole domain.Role
	profile, err := s.userRepo.FindAccessProfileByUserID(ctx, targetUserID)
	switch {
	case err == nil:
		oldRole = profile.Role
		profile.Role = role
		profile.OrganizationID = organizationID
		profile.Touch(access.UserID, time.Now())
	case errors.Is(err, apperrors.ErrNotFound):
		profile = &domain.AccessProfile{
			UserID:         target.UserID,
			Role:           role,
			OrganizationID: organizationID,
			AuditFields:    domain.NewAuditFields(access.UserID, time.Now()),
		}
	default:
		s.LogError(ctx, err, "Failed to load access profile",
			slog.String("target_user_id", targetUserID))
		return err
	}

	audit := s.auditSvc.BuildEvent(ctx, portssvc.AuditEntry{
		EventKind:      domain.AuditRoleChange,
		UserID:         &access.UserID,
		OrganizationID: organizationID,
		Metadata: map[string]any{
			"target_user_id": targetUserID,
			"old_role":       string(oldRole),
			"new_role":       string(role),
		},
	})

	if err := s.userRepo.SaveAccessProfile(ctx, *profile, audit); err != nil {
		s.LogError(ctx, err, "Failed to save access profile",
			slog.String("target_user_id", targetUserID))
		return err
	}

	s.LogInfo(ctx, "Role assigned",
		slog.String("target_user_id", targetUserID),
		slog.String("new_role", string(role)))
	return nil
}

// ChangePassword verifies the current password, re-hashes the new one and
// records a password_change audit event. A wrong current password maps to
// ErrUnauthorized and leaves the stored hash untouched.
func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load user for password change",
				slog.String("user_id", userID))
		}
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		s.LogInfo(ctx, "Password change rejected",
			slog.String("user_id", userID))
		return apperrors.ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new password")
		return err
	}

	user.PasswordHash = hash
	user.Touch(userID, time.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update password",
			slog.String("user_id", userID))
		return err
	}

	s.auditSvc.Record(ctx, portssvc.AuditEntry{
		EventKind: domain.AuditPasswordChange,
		UserID:    &user.UserID,
	})
	s.LogInfo(ctx, "Password changed",
		slog.String("user_id", user.UserID))
	return nil
}

// AuthenticateUser verifies email/password and records a login audit event
// on success. Bad credentials always map to ErrUnauthorized so callers can't
// distinguish an unknown email from a wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for authentication")
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogInfo(ctx, "Authentication failed",
			slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	s.auditSvc.Record(ctx, portssvc.AuditEntry{
		EventKind: domain.AuditLogin,
		UserID:    &user.UserID,
	})
	return user, nil
}
