package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/session"
)

const (
	ctxSessionKey = "session"
	ctxTokenKey   = "auth_token"
)

// SessionValidator checks a token and refreshes the session TTLs.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*session.Session, error)
}

// SessionMiddleware gates every protected route. An expired or missing
// session ends the request with 401 and the client has to log in again;
// a session store failure is a hard 503 for this request, no retries.
func SessionMiddleware(sessions SessionValidator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		sess, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if err == domain.ErrSessionExpired {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired, please log in again"})
				return
			}
			log.Error("session validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		c.Set(ctxSessionKey, sess)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// RequireRole guards a route group for one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		if sess == nil || sess.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequestTimeout bounds every request, including pool acquisition, so
// an exhausted database pool surfaces as a failed request instead of an
// unbounded wait.
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestLogger writes one access log line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.GetHeader("X-Auth-Token")
}

func sessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

func tokenFrom(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
