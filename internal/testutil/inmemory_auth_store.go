package testutil

import (
	"context"
	"sync"

	"github.com/billfold/billfold/internal/domain/auth"
	ierr "github.com/billfold/billfold/internal/errors"
)

// InMemoryAuthRepository is an in-memory implementation of the auth.Repository interface
type InMemoryAuthRepository struct {
	mu    sync.Mutex
	auths map[string]*auth.Auth
}

// NewInMemoryAuthRepository creates a new instance of InMemoryAuthRepository
func NewInMemoryAuthRepository() *InMemoryAuthRepository {
	return &InMemoryAuthRepository{
		auths: make(map[string]*auth.Auth),
	}
}

// CreateAuth creates a new auth record in the in-memory store
func (r *InMemoryAuthRepository) CreateAuth(ctx context.Context, auth *auth.Auth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.auths[auth.UserID] = auth
	return nil
}

// UpdateAuth updates an existing auth record in the in-memory store
func (r *InMemoryAuthRepository) UpdateAuth(ctx context.Context, auth *auth.Auth) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.auths[auth.UserID]; !exists {
		return ierr.NewError("auth record not found").
			WithHint("Authentication record not found").
			WithReportableDetails(map[string]interface{}{
				"user_id": auth.UserID,
			}).
			Mark(ierr.ErrNotFound)
	}

	r.auths[auth.UserID] = auth
	return nil
}

// GetAuthByUserID retrieves an auth record by user ID from the in-memory store
func (r *InMemoryAuthRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auth, exists := r.auths[userID]
	if !exists {
		return nil, ierr.NewError("auth record not found").
			WithHint("Authentication record not found").
			WithReportableDetails(map[string]interface{}{
				"user_id": userID,
			}).
			Mark(ierr.ErrNotFound)
	}

	return auth, nil
}

// Clear clears all auth records from the in-memory store
func (r *InMemoryAuthRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.auths = make(map[string]*auth.Auth)
}

// Snapshot captures the current auth records and returns a function that
// restores them, emulating a transaction rollback
func (r *InMemoryAuthRepository) Snapshot() func() {
	r.mu.Lock()
	saved := make(map[string]*auth.Auth, len(r.auths))
	for userID, a := range r.auths {
		saved[userID] = a
	}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.auths = saved
	}
}
