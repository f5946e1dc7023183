package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.auth.Register(ctx, "  Ada Lovelace ", " Ada@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", res.User.Username)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int32(1), env.hasher.hashes.Load())

	// Stored credential is a hash, never the plaintext
	user, err := env.users.ByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, env.hasher.Compare(user.PasswordHash, "secret123"))

	portfolio, err := env.portfolios.ByUserID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace's Portfolio", portfolio.Title)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.NotContains(t, string(raw), "password")
}

func TestAuthService_RegisterRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "ada")

	tests := []struct {
		name     string
		username string
		email    string
		password string
		kind     error
	}{
		{"short username", "a", "a@example.com", "secret123", ErrValidation},
		{"bad email", "grace", "grace", "secret123", ErrValidation},
		{"short password", "grace", "grace@example.com", "12345", ErrValidation},
		{"taken username", "ada", "new@example.com", "secret123", ErrConflict},
		{"taken email", "grace", "ADA@example.com", "secret123", ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	// Only the successful registration hashed a password
	assert.Equal(t, int32(1), env.hasher.hashes.Load())
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "ada")

	res, err := env.auth.Login(ctx, "ADA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, res.User.ID)

	userID, err := env.auth.VerifyJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	_, err = env.auth.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid email or password", Message(err, ""))

	_, err = env.auth.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid email or password", Message(err, ""))

	// Logging in never re-hashes
	assert.Equal(t, int32(1), env.hasher.hashes.Load())
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "ada").User.ID

	err := env.auth.ChangePassword(ctx, id, "wrong", "new-secret")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = env.auth.ChangePassword(ctx, id, "secret123", "123")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(1), env.hasher.hashes.Load())

	require.NoError(t, env.auth.ChangePassword(ctx, id, "secret123", "new-secret"))
	assert.Equal(t, int32(2), env.hasher.hashes.Load())

	_, err = env.auth.Login(ctx, "ada@example.com", "new-secret")
	assert.NoError(t, err)

	// Setting an avatar does not touch the credential
	_, err = env.upload.SetAvatar(ctx, id, "/uploads/a.png")
	require.NoError(t, err)
	assert.Equal(t, int32(2), env.hasher.hashes.Load())

	err = env.auth.ChangePassword(ctx, 999, "x", "new-secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_VerifyJWT(t *testing.T) {
	env := newTestEnv(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expiredToken,
		"other secret": otherSecret,
		"no expiry":    noExpiry,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.auth.VerifyJWT(token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}

	token, err := env.auth.GenerateJWT(42)
	require.NoError(t, err)
	id, err := env.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.register(t, "ada").User.ID

	me, err := env.auth.Me(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada", me.Username)

	_, err = env.auth.Me(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
