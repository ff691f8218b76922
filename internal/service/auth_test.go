package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"prompt-refiner/internal/config"
	"prompt-refiner/internal/mocks"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTIssuer:      "prompt-refiner-test",
		PasswordPepper: "pepper",
	}
}

func newTestAuthService(store repository.UserStore) *authServiceImpl {
	return NewAuthService(store, testAuthConfig(), zap.NewNop()).(*authServiceImpl)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("s3cret", "pepper")
	require.NoError(t, err)

	assert.True(t, checkPasswordHash("s3cret", hash, "pepper"))
	assert.False(t, checkPasswordHash("wrong", hash, "pepper"))
	assert.False(t, checkPasswordHash("s3cret", hash, "other-pepper"))

	// Пароль без перца не должен проходить проверку
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))

	require.NoError(t, svc.Register(ctx, "  Alice@Example.com ", "pw"))

	before := time.Now()
	token, err := svc.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email())
	assert.Equal(t, "prompt-refiner-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	assert.WithinDuration(t, before.Add(60*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))

	require.NoError(t, svc.Register(ctx, "bob@example.com", "pw"))
	err := svc.Register(ctx, "BOB@example.com", "other")
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func TestRegister_EmptyInput(t *testing.T) {
	svc := newTestAuthService(mocks.NewMockUserStore(t))

	assert.ErrorIs(t, svc.Register(context.Background(), " ", "pw"), models.ErrInvalidInput)
	assert.ErrorIs(t, svc.Register(context.Background(), "a@example.com", ""), models.ErrInvalidInput)
}

func TestRegister_StoreFailure(t *testing.T) {
	store := mocks.NewMockUserStore(t)
	svc := newTestAuthService(store)
	storeErr := errors.New("connection refused")

	store.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "c@example.com" && u.PasswordHash != "" && u.PasswordHash != "pw"
	})).Return(storeErr).Once()

	err := svc.Register(context.Background(), "c@example.com", "pw")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, models.ErrUserAlreadyExists)
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryUserStore(zap.NewNop())
	svc := newTestAuthService(store)

	const workers = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Register(ctx, "race@example.com", "pw")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, models.ErrUserAlreadyExists):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
	assert.Equal(t, 1, store.Len())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))
	require.NoError(t, svc.Register(ctx, "dave@example.com", "right"))

	token, err := svc.Login(ctx, "dave@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Empty(t, token)

	token, err = svc.Login(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_StoreFailure(t *testing.T) {
	store := mocks.NewMockUserStore(t)
	svc := newTestAuthService(store)

	store.On("Get", mock.Anything, "e@example.com").Return(nil, errors.New("redis down")).Once()

	token, err := svc.Login(context.Background(), "e@example.com", "pw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestVerifyToken_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))
	require.NoError(t, svc.Register(ctx, "eve@example.com", "pw"))
	token, err := svc.Login(ctx, "eve@example.com", "pw")
	require.NoError(t, err)

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))
		other.cfg.JWTSecret = "another-secret"
		_, err := other.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "eve@example.com"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.VerifyToken(ctx, unsigned)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		later := newTestAuthService(repository.NewMemoryUserStore(zap.NewNop()))
		later.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }
		_, err := later.VerifyToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})
}
