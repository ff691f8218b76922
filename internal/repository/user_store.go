package repository

import (
	"context"

	"prompt-refiner/internal/models"
)

// UserStore хранит зарегистрированных пользователей.
// Ключ - нормализованный email.
type UserStore interface {
	// Get returns models.ErrUserNotFound when no user has the email.
	Get(ctx context.Context, email string) (*models.User, error)
	// InsertIfAbsent stores the user unless the email is taken, in which case it
	// returns models.ErrUserAlreadyExists. The check and the write are atomic.
	InsertIfAbsent(ctx context.Context, user *models.User) error
}
