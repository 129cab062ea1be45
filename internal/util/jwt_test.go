package util

import (
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier(t *testing.T) {
	cfg := config.JWTConfig{Secret: "verifier-secret", Issuer: "auth.example.com", LeewaySeconds: 30}
	v := NewTokenVerifier(cfg)

	user := &model.User{Role: model.Instructor, Email: "i@example.com"}
	user.ID = 9

	t.Run("valid", func(t *testing.T) {
		tok, err := v.IssueToken(user, time.Hour)
		require.NoError(t, err)

		claims, err := v.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, uint(9), claims.UserID)
		assert.Equal(t, model.Instructor, claims.Role)
		assert.Equal(t, "9", claims.Subject)
	})

	t.Run("within leeway", func(t *testing.T) {
		tok, err := v.IssueToken(user, -10*time.Second)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		assert.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := v.IssueToken(user, -time.Hour)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other := NewTokenVerifier(config.JWTConfig{Secret: cfg.Secret, Issuer: "elsewhere"})
		tok, err := other.IssueToken(user, time.Hour)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewTokenVerifier(config.JWTConfig{Secret: "another-secret", Issuer: cfg.Issuer})
		tok, err := other.IssueToken(user, time.Hour)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		tok, err := v.IssueToken(&model.User{Role: model.Student}, time.Hour)
		require.NoError(t, err)
		_, err = v.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
