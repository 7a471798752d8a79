package jwt

import (
	"errors"
	"time"

	"unicart/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Identity is what a verified bearer token says about the caller. The user id
// travels in the standard sub claim.
type Identity struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Service verifies HS256 tokens minted by the identity provider. IssueToken
// exists for local tooling and tests.
type Service struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	parser        *jwt.Parser
}

func NewService(cfg config.JWTConfig) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Service{
		secretKey:     []byte(cfg.Secret),
		issuer:        cfg.Issuer,
		tokenDuration: cfg.TokenDuration,
		parser:        jwt.NewParser(opts...),
	}
}

func (s *Service) IssueToken(userID uuid.UUID, issuedAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.tokenDuration)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

func (s *Service) Authenticate(tokenString string) (Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
