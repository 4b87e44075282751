package services_test

import (
	"context"
	"testing"

	"github.com/benefitkit/benefits_admin_app/internal/apperrors"
	"github.com/benefitkit/benefits_admin_app/internal/core/domain"
	portssvc "github.com/benefitkit/benefits_admin_app/internal/core/ports/services"
	"github.com/benefitkit/benefits_admin_app/internal/core/services"
	"github.com/benefitkit/benefits_admin_app/internal/dto"
	"github.com/benefitkit/benefits_admin_app/internal/utils"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo  *fakeUserRepo
	accessSvc *fakeAccessSvc
	auditSvc  *recordingAuditSvc
	service   portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.userRepo = &fakeUserRepo{}
	s.accessSvc = &fakeAccessSvc{}
	s.auditSvc = &recordingAuditSvc{}
	s.service = services.NewUserService(s.userRepo, s.accessSvc, s.auditSvc)
}

func (s *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	var saved *domain.User
	s.userRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = &user
		return nil
	}

	got, err := s.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:     "jordan@acme.example",
		FirstName: "Jordan",
		LastName:  "Reyes",
		Password:  "correct horse battery",
	})

	s.Require().NoError(err)
	s.NotEmpty(got.UserID)
	s.Equal("jordan@acme.example", got.Email)
	s.NotEqual("correct horse battery", got.PasswordHash)
	s.True(utils.CheckPasswordHash("correct horse battery", got.PasswordHash))
	s.Require().NotNil(saved)
	s.Equal(got.UserID, saved.UserID)

	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.AuditSignup, s.auditSvc.Entries[0].EventKind)
	s.Require().NotNil(s.auditSvc.Entries[0].UserID)
	s.Equal(got.UserID, *s.auditSvc.Entries[0].UserID)
}

func (s *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()
	s.userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{UserID: "u-1", Email: email}, nil
	}
	s.userRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		s.Fail("duplicate registration must not persist")
		return nil
	}

	_, err := s.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:     "taken@acme.example",
		FirstName: "A",
		LastName:  "B",
		Password:  "correct horse battery",
	})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.Empty(s.auditSvc.Entries)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	s.Require().NoError(err)
	s.userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{UserID: "u-1", Email: email, PasswordHash: hash}, nil
	}

	got, err := s.service.AuthenticateUser(ctx, "jordan@acme.example", "hunter2hunter2")

	s.Require().NoError(err)
	s.Equal("u-1", got.UserID)
	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.AuditLogin, s.auditSvc.Entries[0].EventKind)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("hunter2hunter2")
	s.Require().NoError(err)
	s.userRepo.FindUserByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{UserID: "u-1", Email: email, PasswordHash: hash}, nil
	}

	_, err = s.service.AuthenticateUser(ctx, "jordan@acme.example", "not the password")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Empty(s.auditSvc.Entries)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	ctx := context.Background()

	_, err := s.service.AuthenticateUser(ctx, "nobody@acme.example", "whatever12345")

	// Unknown email and wrong password must be indistinguishable.
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestChangePassword_Success() {
	ctx := context.Background()
	oldHash, err := utils.HashPassword("old password 123")
	s.Require().NoError(err)
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID, PasswordHash: oldHash}, nil
	}
	var updated *domain.User
	s.userRepo.UpdateUserFn = func(ctx context.Context, user domain.User) error {
		updated = &user
		return nil
	}

	err = s.service.ChangePassword(ctx, "u-1", "old password 123", "new password 456")

	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.True(utils.CheckPasswordHash("new password 456", updated.PasswordHash))
	s.False(utils.CheckPasswordHash("old password 123", updated.PasswordHash))
	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.AuditPasswordChange, s.auditSvc.Entries[0].EventKind)
	s.Require().NotNil(s.auditSvc.Entries[0].UserID)
	s.Equal("u-1", *s.auditSvc.Entries[0].UserID)
}

func (s *UserServiceTestSuite) TestChangePassword_WrongCurrentPassword() {
	ctx := context.Background()
	oldHash, err := utils.HashPassword("old password 123")
	s.Require().NoError(err)
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID, PasswordHash: oldHash}, nil
	}
	s.userRepo.UpdateUserFn = func(ctx context.Context, user domain.User) error {
		s.Fail("a rejected change must not touch the stored hash")
		return nil
	}

	err = s.service.ChangePassword(ctx, "u-1", "wrong guess 789", "new password 456")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Empty(s.auditSvc.Entries)
}

func (s *UserServiceTestSuite) TestAssignRole_CreatesProfileWithAudit() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}
	var savedProfile *domain.AccessProfile
	var savedAudit *domain.AuditEvent
	s.userRepo.SaveAccessProfileFn = func(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error {
		savedProfile = &profile
		savedAudit = &audit
		return nil
	}

	err := s.service.AssignRole(ctx, accessFor(domain.RoleEmployerAdmin, "org-emp"), "u-target", domain.RoleEmployerHR, strPtr("org-emp"))

	s.Require().NoError(err)
	s.Require().NotNil(savedProfile)
	s.Equal(domain.RoleEmployerHR, savedProfile.Role)
	s.Require().NotNil(savedProfile.OrganizationID)
	s.Equal("org-emp", *savedProfile.OrganizationID)
	s.Require().NotNil(savedAudit)
	s.Equal(domain.AuditRoleChange, savedAudit.EventKind)
	s.Equal("u-target", savedAudit.Metadata["target_user_id"])
	s.Equal(string(domain.RoleEmployerHR), savedAudit.Metadata["new_role"])
}

func (s *UserServiceTestSuite) TestAssignRole_UpdatesExistingProfile() {
	ctx := context.Background()
	s.userRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{UserID: userID}, nil
	}
	s.userRepo.FindAccessProfileByUserIDFn = func(ctx context.Context, userID string) (*domain.AccessProfile, error) {
		return &domain.AccessProfile{UserID: userID, Role: domain.RoleEmployee}, nil
	}
	var savedAudit *domain.AuditEvent
	s.userRepo.SaveAccessProfileFn = func(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error {
		savedAudit = &audit
		return nil
	}

	err := s.service.AssignRole(ctx, accessFor(domain.RoleEmployerAdmin, "org-emp"), "u-target", domain.RoleEmployerHR, strPtr("org-emp"))

	s.Require().NoError(err)
	s.Require().NotNil(savedAudit)
	s.Equal(string(domain.RoleEmployee), savedAudit.Metadata["old_role"])
	s.Equal(string(domain.RoleEmployerHR), savedAudit.Metadata["new_role"])
}

func (s *UserServiceTestSuite) TestAssignRole_DeniedByHierarchy() {
	ctx := context.Background()
	s.accessSvc.CanManageUserFn = func(ctx context.Context, access domain.AccessContext, targetUserID string) (bool, error) {
		return false, nil
	}
	s.userRepo.SaveAccessProfileFn = func(ctx context.Context, profile domain.AccessProfile, audit domain.AuditEvent) error {
		s.Fail("denied assignment must not persist")
		return nil
	}

	err := s.service.AssignRole(ctx, accessFor(domain.RoleEmployerHR, "org-emp"), "u-target", domain.RoleEmployerAdmin, strPtr("org-emp"))

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.Require().Len(s.auditSvc.Entries, 1)
	s.Equal(domain.AuditPermissionDenied, s.auditSvc.Entries[0].EventKind)
	s.Equal(domain.DenyReasonInsufficientRole, s.auditSvc.Entries[0].Metadata["reason"])
}

func (s *UserServiceTestSuite) TestAssignRole_UnknownRole() {
	ctx := context.Background()

	err := s.service.AssignRole(ctx, accessFor(domain.RoleEmployerAdmin, "org-emp"), "u-target", domain.Role("wizard"), nil)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
