package auth

import (
	"context"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/domain/auth"
)

type AuthRequest struct {
	UserID   string
	TenantID string
	Email    string
	Password string
}

type AuthResponse struct {
	// ProviderToken is the credential stored against the user, a bcrypt hash here
	ProviderToken string
	AuthToken     string
	ID            string
}

type Provider interface {
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewLocalAuth(cfg)
}
