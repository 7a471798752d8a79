//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"unicart/internal/pkg/config"
	"unicart/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = config.JWTConfig{
	Secret:        "test-secret",
	Issuer:        "identity",
	Leeway:        5 * time.Second,
	TokenDuration: time.Hour,
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	svc := jwt.NewService(testCfg)
	userID := uuid.New()
	issuedAt := time.Now().Truncate(time.Second)

	token, err := svc.IssueToken(userID, issuedAt)
	require.NoError(t, err)

	id, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.True(t, id.ExpiresAt.Equal(issuedAt.Add(time.Hour)))
}

func TestAuthenticate_Rejects(t *testing.T) {
	userID := uuid.New()
	sign := func(t *testing.T, method gojwt.SigningMethod, key any, claims gojwt.RegisteredClaims) string {
		t.Helper()
		s, err := gojwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := func() gojwt.RegisteredClaims {
		return gojwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    testCfg.Issuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
		want  error
	}{
		{
			name: "expired beyond leeway",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService(testCfg).IssueToken(userID, time.Now().Add(-2*time.Hour))
				require.NoError(t, err)
				return tok
			},
			want: jwt.ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS256, []byte("other"), valid())
			},
			want: jwt.ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				c := valid()
				c.Issuer = "someone-else"
				return sign(t, gojwt.SigningMethodHS256, []byte(testCfg.Secret), c)
			},
			want: jwt.ErrInvalidToken,
		},
		{
			name: "unexpected algorithm",
			token: func(t *testing.T) string {
				return sign(t, gojwt.SigningMethodHS512, []byte(testCfg.Secret), valid())
			},
			want: jwt.ErrInvalidToken,
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				c := valid()
				c.ExpiresAt = nil
				return sign(t, gojwt.SigningMethodHS256, []byte(testCfg.Secret), c)
			},
			want: jwt.ErrInvalidToken,
		},
		{
			name: "subject is not a user id",
			token: func(t *testing.T) string {
				c := valid()
				c.Subject = "alice"
				return sign(t, gojwt.SigningMethodHS256, []byte(testCfg.Secret), c)
			},
			want: jwt.ErrInvalidToken,
		},
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not.a.jwt" },
			want:  jwt.ErrInvalidToken,
		},
	}

	svc := jwt.NewService(testCfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.token(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthenticate_IssuerOptional(t *testing.T) {
	cfg := testCfg
	cfg.Issuer = ""
	svc := jwt.NewService(cfg)

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "anyone",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.NoError(t, err)
}
