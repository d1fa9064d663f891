package service

import (
	"context"

	"github.com/billfold/billfold/internal/api/dto"
	authProvider "github.com/billfold/billfold/internal/auth"
	"github.com/billfold/billfold/internal/domain/auth"
	"github.com/billfold/billfold/internal/domain/user"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
)

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	authProvider authProvider.Provider
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  authProvider.NewProvider(params.Config),
	}
}

// SignUp creates a new user and returns an auth token
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existingUser, _ := s.UserRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]interface{}{
				"email": req.Email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	tenantID := types.GenerateUUID()

	authResponse, err := s.authProvider.SignUp(ctx, authProvider.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, err
	}

	response := &dto.AuthResponse{
		Token:    authResponse.AuthToken,
		UserID:   authResponse.ID,
		TenantID: tenantID,
	}

	ctx = context.WithValue(ctx, types.CtxTenantID, tenantID)
	ctx = context.WithValue(ctx, types.CtxUserID, authResponse.ID)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		newUser := &user.User{
			ID:        authResponse.ID,
			Email:     req.Email,
			BaseModel: types.GetDefaultBaseModel(ctx),
		}
		if err := s.UserRepo.Create(ctx, newUser); err != nil {
			return err
		}

		authRecord := auth.NewAuth(authResponse.ID, authResponse.ProviderToken)
		if err := s.AuthRepo.CreateAuth(ctx, authRecord); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create authentication record").
				Mark(ierr.ErrDatabase)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up", "user_id", response.UserID)
	return response, nil
}

// Login authenticates a user and returns an auth token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	userAuth, err := s.AuthRepo.GetAuthByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	authResponse, err := s.authProvider.Login(ctx, authProvider.AuthRequest{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Password: req.Password,
	}, userAuth)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to authenticate").
			Mark(ierr.ErrPermissionDenied)
	}

	return &dto.AuthResponse{
		Token:    authResponse.AuthToken,
		UserID:   authResponse.ID,
		TenantID: user.TenantID,
	}, nil
}
