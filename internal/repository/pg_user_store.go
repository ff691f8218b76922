package repository

import (
	"context"
	"errors"
	"fmt"

	"prompt-refiner/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgUserStore implements UserStore
var _ UserStore = (*pgUserStore)(nil)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgUserStore struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgUserStore creates a PostgreSQL-backed UserStore.
// The users table comes from RunMigrations.
func NewPgUserStore(db DBTX, logger *zap.Logger) UserStore {
	return &pgUserStore{
		db:     db,
		logger: logger.Named("PgUserStore"),
	}
}

func (r *pgUserStore) Get(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	var user models.User
	if err := pgxscan.Get(ctx, r.db, &user, query, email); err != nil {
		if pgxscan.NotFound(err) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return &user, nil
}

func (r *pgUserStore) InsertIfAbsent(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`
	tag, err := r.db.Exec(ctx, query, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 - unique_violation (например, совпал id)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Unique constraint violation on user insert", zap.String("constraint", pgErr.ConstraintName))
			return models.ErrUserAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to create duplicate user", zap.String("email", user.Email))
		return models.ErrUserAlreadyExists
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()))
	return nil
}
