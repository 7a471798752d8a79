//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"unicart/internal/pkg/config"
	"unicart/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider would.
type JWTHelper struct {
	svc *jwt.Service
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{svc: jwt.NewService(cfg), cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.svc.IssueToken(userID, time.Now())
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns a token that expired well outside the leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	issuedAt := time.Now().Add(-h.cfg.TokenDuration - h.cfg.Leeway - time.Minute)
	token, err := h.svc.IssueToken(userID, issuedAt)
	require.NoError(t, err)
	return token
}

// NewUser returns a fresh user id with a valid bearer token.
func (h *JWTHelper) NewUser(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	return userID, h.GenerateToken(t, userID)
}
