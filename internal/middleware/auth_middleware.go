package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/session"
	"github.com/yigit/schooladmin/internal/pkg/auth"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// AuthMiddleware guards routes that need a signed-in user
type AuthMiddleware struct {
	sessions *session.Manager
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireSession redirects browsers without a signed-in session to the login page.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := m.sessions.Get(c.Request.Context())
		if s == nil || !s.Authenticated() {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Set("user", s.User)
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in users away from the login and signup pages.
func (m *AuthMiddleware) RedirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := m.sessions.Get(c.Request.Context()); s != nil && s.Authenticated() {
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuth accepts either a bearer token or a signed-in cookie session. A
// bearer token is forwarded to the backend as is; the backend decides whether
// it is valid.
func (m *AuthMiddleware) APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			token, err := auth.ExtractBearerToken(header)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
				errorDetail = errorDetail.WithDetails("Invalid token format")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
			c.Request = c.Request.WithContext(session.WithBearer(c.Request.Context(), token))
			c.Next()
			return
		}

		if s := m.sessions.Get(c.Request.Context()); s != nil && s.Authenticated() {
			c.Set("user", s.User)
			c.Next()
			return
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		errorDetail = errorDetail.WithDetails("Authorization header or session cookie missing")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
}
