package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/validation"
)

const msgInvalidCredentials = "invalid email or password"

type AuthService struct {
	userRepository repository.UserRepository
	hasher         PasswordHasher
	emailService   *EmailService
	jwtSecret      string
	jwtExpiry      time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	hasher PasswordHasher,
	emailService *EmailService,
	jwtSecret string,
	jwtExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		emailService:   emailService,
		jwtSecret:      jwtSecret,
		jwtExpiry:      jwtExpiry,
	}
}

// Claims are the JWT claims issued at login and registration.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthResult struct {
	User  model.SafeUser `json:"user"`
	Token string         `json:"token"`
}

// Register creates the user together with a default portfolio and signs them in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = validation.NormalizeEmail(email)

	err := validation.ValidateUsername(username)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, invalid(err)
	}

	_, err = s.userRepository.ByUsername(ctx, username)
	if err == nil {
		return nil, newError(ErrConflict, "username already taken", nil)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	_, err = s.userRepository.ByEmail(ctx, email)
	if err == nil {
		return nil, newError(ErrConflict, "email already registered", nil)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	portfolio := &model.Portfolio{
		Title: model.DefaultPortfolioTitleFor(username),
	}

	err = s.userRepository.CreateWithPortfolio(ctx, user, portfolio)
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return nil, newError(ErrConflict, "username already taken", nil)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, newError(ErrConflict, "email already registered", nil)
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.Username)
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("user registered", "user_id", user.ID)
	return &AuthResult{User: user.Safe(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.userRepository.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, newError(ErrUnauthorized, msgInvalidCredentials, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	err = s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, newError(ErrUnauthorized, msgInvalidCredentials, nil)
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.Safe(), Token: token}, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*model.SafeUser, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	safe := user.Safe()
	return &safe, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFound("user not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = s.hasher.Compare(user.PasswordHash, currentPassword)
	if err != nil {
		return newError(ErrUnauthorized, "current password is incorrect", nil)
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return invalid(err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepository.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

func (s *AuthService) GenerateJWT(userID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyJWT returns the user id of a valid, unexpired HS256 token.
func (s *AuthService) VerifyJWT(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, newError(ErrUnauthorized, "invalid or expired token", err)
	}

	if claims.UserID == 0 {
		return 0, newError(ErrUnauthorized, "invalid or expired token", nil)
	}

	return claims.UserID, nil
}
