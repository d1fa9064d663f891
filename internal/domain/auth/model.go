package auth

import (
	"time"
)

// Auth holds the credential record for a user. Token is the bcrypt hash
// of the password, never the password itself.
type Auth struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Claims are the validated contents of a JWT
type Claims struct {
	UserID   string
	TenantID string
}

func NewAuth(userID, token string) *Auth {
	now := time.Now().UTC()
	return &Auth{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
