package user

import (
	"context"

	"github.com/billfold/billfold/internal/types"
)

// User represents an account that owns clients and invoices
type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	types.BaseModel
}

func NewUser(ctx context.Context, email string) *User {
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     email,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
