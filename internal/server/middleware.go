package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	"go.uber.org/zap"
)

const contextUserKey = "auth_user"

// AuthRequired resolves the session cookie to a user and stores it on the
// request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authSvc.GetUser(c.Request.Context(), sess.UserID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok
}

func (s *Server) mustUser(c *gin.Context) (*authdomain.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return nil, false
	}
	return user, true
}

// Authorize enforces the policy table for the matched route and method.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := s.mustUser(c)
		if !ok {
			return
		}

		obj := c.FullPath()
		if obj == "" {
			obj = c.Request.URL.Path
		}
		if !s.authz.Allowed(user.Role, obj, c.Request.Method) {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

// RateLimit throttles the scope per user, falling back to the client IP
// before authentication. Limiter outages fail open with a warning.
func (s *Server) RateLimit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if user, ok := currentUser(c); ok {
			caller = user.ID.String()
		}

		allowed, err := s.limiter.Allow(c.Request.Context(), scope, caller)
		if err != nil {
			s.log.Warn("rate limit check failed", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", "1")
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func parseIDParam(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil {
		AbortWithError(c, newValidationError(name, "invalid_id", "invalid identifier"))
		return 0, false
	}
	return id, true
}
