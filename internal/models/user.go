package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"password_hash" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Claims - полезная нагрузка access-токена. Subject содержит email пользователя.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the subject the token was issued to.
func (c *Claims) Email() string {
	return c.Subject
}
