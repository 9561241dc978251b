package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	authUseCase "github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
	"github.com/farmrakshaa/farm-guardian/internal/httputil"
)

// AuthenticationMiddleware verifies the session token and stores the user id on the
// request context.
//
// The token is read from the Authorization header ("Bearer <token>", scheme is
// case-insensitive) and, when the header is absent, from the session cookie. The user
// record is not loaded here; handlers fetch fresh data by id.
//
// Error handling:
//   - No token, malformed header, invalid or expired token: 401 Unauthorized
//
// Usage:
//
//	protected := router.Group("/api/auth", AuthenticationMiddleware(sessionUseCase, logger))
//	protected.GET("/profile", func(c *gin.Context) {
//	    userID, _ := GetUserID(c.Request.Context())
//	})
func AuthenticationMiddleware(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		userID, err := sessionUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// extractToken returns the bearer token or the cookie value. An empty token with ok=true
// means neither was sent; ok=false means the Authorization header was malformed.
func extractToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		const bearerPrefix = "bearer "
		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return "", false
		}
		return strings.TrimSpace(header[len(bearerPrefix):]), true
	}

	token, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", true
	}
	return token, true
}
