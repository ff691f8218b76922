package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"prompt-refiner/internal/config"
	"prompt-refiner/internal/models"
	"prompt-refiner/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed lifetime of an access token.
const TokenTTL = 60 * time.Minute

// AuthService defines registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, tokenString string) (*models.Claims, error)
}

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	store  repository.UserStore
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(store repository.UserStore, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		store:  store,
		cfg:    cfg,
		logger: logger.Named("AuthService"),
		now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. Hashing happens before the atomic insert so two
// concurrent registrations of one email produce exactly one account.
func (s *authServiceImpl) Register(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	log := s.logger.With(zap.String("email", email))
	if email == "" || password == "" {
		log.Warn("Registration attempt with empty email or password")
		return models.ErrInvalidInput
	}

	hashedPassword, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash password during registration", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.InsertIfAbsent(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserAlreadyExists) {
			log.Warn("Registration attempt for existing email")
			return err
		}
		log.Error("Failed to create user via store", zap.Error(err))
		return err
	}

	log.Info("User registered successfully", zap.String("userID", user.ID.String()))
	return nil
}

// Login checks credentials and returns a signed access token.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	log := s.logger.With(zap.String("email", email))

	user, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Сравниваем с фиктивным хешем, чтобы время ответа не выдавало наличие email
			checkPasswordHash(password, s.fakeHash(), s.cfg.PasswordPepper)
			log.Warn("Login failed: user not found")
			return "", models.ErrInvalidCredentials
		}
		log.Error("Login failed: error getting user from store", zap.Error(err))
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Login failed: invalid password")
		return "", models.ErrInvalidCredentials
	}

	token, err := s.createToken(user.Email)
	if err != nil {
		log.Error("Failed to sign access token", zap.Error(err))
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	log.Info("User logged in successfully")
	return token, nil
}

// VerifyToken parses and validates an access token issued by Login.
func (s *authServiceImpl) VerifyToken(_ context.Context, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithIssuer(s.cfg.JWTIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("Token verification failed: expired")
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			s.logger.Debug("Token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		s.logger.Debug("Token verification failed", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) createToken(email string) (string, error) {
	issuedAt := s.now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			Issuer:    s.cfg.JWTIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authServiceImpl) fakeHash() string {
	s.dummyOnce.Do(func() {
		h, err := hashPassword(uuid.NewString(), s.cfg.PasswordPepper)
		if err != nil {
			s.logger.Error("Failed to build dummy password hash", zap.Error(err))
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// applyPepper mixes the server-side pepper into the password with HMAC-SHA256.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the password after applying the pepper.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain text password (after applying pepper) with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
