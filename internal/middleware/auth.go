package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/response"
)

const (
	sessionKey    = "auth.session"
	sessionCookie = "__session"
)

// SessionVerifier checks a raw session token.
type SessionVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// Authenticate attaches the caller's session when the request carries a valid token.
// Requests without a valid token continue anonymously.
func Authenticate(verifier SessionVerifier, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		session, err := verifier.Verify(token)
		if err != nil {
			if !errors.Is(err, auth.ErrNoToken) {
				logger.Debugw("session rejected", "path", c.Request.URL.Path, "error", err)
			}
			c.Next()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Session(c); !ok {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// RequirePermission rejects anonymous requests with 401 and callers whose role
// lacks perm with 403.
func RequirePermission(policy *auth.Policy, perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := Session(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !policy.HasPermission(session.Role, perm) {
			response.Abort(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

// Session returns the session attached by Authenticate.
func Session(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*auth.Session)
	return session, ok && session != nil
}

// SetSession attaches a session to the request context. Used by tests and internal callers.
func SetSession(c *gin.Context, session *auth.Session) {
	c.Set(sessionKey, session)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}
