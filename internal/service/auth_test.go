package service

import (
	"context"
	"testing"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/auth"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.service = NewAuthService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		DB:       s.GetDB(),
		AuthRepo: stores.AuthRepo,
		UserRepo: stores.UserRepo,
	})
}

func (s *AuthServiceSuite) TestSignUp() {
	resp, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.UserID)
	s.NotEmpty(resp.TenantID)

	user, err := s.GetStores().UserRepo.GetByEmail(s.GetContext(), "owner@billfold.test")
	s.NoError(err)
	s.Equal(resp.UserID, user.ID)

	auth, err := s.GetStores().AuthRepo.GetAuthByUserID(s.GetContext(), resp.UserID)
	s.NoError(err)
	s.NotEqual("supersecret", auth.Token, "password must be stored hashed")
}

// brokenAuthStore fails every credential write
type brokenAuthStore struct {
	auth.Repository
}

func (brokenAuthStore) CreateAuth(ctx context.Context, a *auth.Auth) error {
	return ierr.NewError("credentials store unavailable").
		WithHint("Failed to store credentials").
		Mark(ierr.ErrDatabase)
}

func (s *AuthServiceSuite) TestSignUp_FailedCredentialWriteLeavesNoUser() {
	stores := s.GetStores()
	service := NewAuthService(ServiceParams{
		Logger:   s.GetLogger(),
		Config:   s.GetConfig(),
		DB:       s.GetDB(),
		AuthRepo: brokenAuthStore{stores.AuthRepo},
		UserRepo: stores.UserRepo,
	})

	_, err := service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.Error(err)

	// the user write rolls back with the failed credential write, so the
	// email is not burned and a retry can succeed
	_, err = s.GetStores().UserRepo.GetByEmail(s.GetContext(), "owner@billfold.test")
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)
}

func (s *AuthServiceSuite) TestSignUp_DuplicateEmail() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)

	_, err = s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "othersecret",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignUp_ShortPassword() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "short",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestLogin_WrongPassword() {
	_, err := s.service.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "owner@billfold.test",
		Password: "supersecret",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "owner@billfold.test",
		Password: "wrongsecret",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLogin_UnknownEmail() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "nobody@billfold.test",
		Password: "supersecret",
	})
	s.Error(err)
}
