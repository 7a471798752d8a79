package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"unicart/internal/handler/httperr"
	"unicart/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Authenticator turns a bearer token into the caller's identity.
// *jwt.Service implements it.
type Authenticator interface {
	Authenticate(token string) (jwt.Identity, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

const ctxUserIDKey = "user_id"

var errMissingToken = errors.New("missing bearer token")

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		id, err := m.auth.Authenticate(token)
		if err != nil {
			slog.Warn("token rejected", "error", err, "path", c.Request.URL.Path)
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetUserID(c, id.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// SetUserID stores the authenticated user on the request context.
func SetUserID(c *gin.Context, userID uuid.UUID) {
	c.Set(ctxUserIDKey, userID)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
