package services

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new user with a hashed password and records a
	// signup audit event.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AssignRole sets the target user's legacy profile role (and optionally
	// organization). The profile write and its role_change audit event are
	// all-or-nothing. The actor must be allowed to manage the target under
	// the role hierarchy.
	AssignRole(ctx context.Context, access domain.AccessContext, targetUserID string, role domain.Role, organizationID *string) error

	// ChangePassword verifies the current password, re-hashes the new one and
	// records a password_change audit event. Returns
	// apperrors.ErrUnauthorized when the current password does not match.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// UserAuthenticatorSvc defines authentication operations
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies email/password and records a login audit
	// event on success. Returns apperrors.ErrUnauthorized on bad credentials.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
