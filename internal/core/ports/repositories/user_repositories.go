package repositories

import (
	"context"

	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindAccessProfileByUserID retrieves the legacy access profile for a
	// user, or apperrors.ErrNotFound when none exists.
	FindAccessProfileByUserID(ctx context.Context, userID string) (*domain.AccessProfile, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser persists changes to an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// SaveAccessProfile upserts the legacy access profile together with its
	// role-change audit event in a single transaction.
	SaveAccessProfile(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// UserRepositoryWithTx extends UserRepositoryFacade with transaction capabilities
type UserRepositoryWithTx interface {
	UserRepositoryFacade
	TransactionManager
}
