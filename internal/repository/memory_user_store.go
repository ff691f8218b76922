package repository

import (
	"context"
	"sync"

	"prompt-refiner/internal/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure MemoryUserStore implements UserStore
var _ UserStore = (*MemoryUserStore)(nil)

// MemoryUserStore keeps users for the lifetime of the process.
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[string]models.User
	logger *zap.Logger
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore(logger *zap.Logger) *MemoryUserStore {
	return &MemoryUserStore{
		users:  make(map[string]models.User),
		logger: logger.Named("MemoryUserStore"),
	}
}

func (s *MemoryUserStore) Get(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) InsertIfAbsent(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		s.logger.Debug("User already exists", zap.String("email", user.Email))
		return models.ErrUserAlreadyExists
	}
	s.users[user.Email] = *user
	return nil
}

// Len returns the number of stored users.
func (s *MemoryUserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
