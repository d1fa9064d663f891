package testutil

import (
	"context"
	"sync"

	"github.com/billfold/billfold/internal/domain/user"
	ierr "github.com/billfold/billfold/internal/errors"
)

// InMemoryUserRepository is an in-memory implementation of the user.Repository interface
type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*user.User
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*user.User),
	}
}

// Create creates a new user in the in-memory store
func (r *InMemoryUserRepository) Create(ctx context.Context, user *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ierr.NewError("user already exists").
			WithHint("A user with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	r.users[user.Email] = user
	return nil
}

// GetByEmail retrieves a user by email from the in-memory store
func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}

	return user, nil
}

// GetByID retrieves a user by ID from the in-memory store
func (r *InMemoryUserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").
		WithHint("User not found").
		Mark(ierr.ErrNotFound)
}

// Clear clears all users from the in-memory store
func (r *InMemoryUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]*user.User)
}

// Snapshot captures the current users and returns a function that restores
// them, emulating a transaction rollback
func (r *InMemoryUserRepository) Snapshot() func() {
	r.mu.Lock()
	saved := make(map[string]*user.User, len(r.users))
	for email, u := range r.users {
		saved[email] = u
	}
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.users = saved
	}
}
