package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookworm/internal/server/auth"
	"bookworm/internal/server/models"
)

const userContextKey = "User"

// authMiddleware is the guard in front of every book endpoint: it extracts
// the bearer token, verifies it, loads the user it names, and attaches that
// user to the request context. It never mutates persisted state.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "no authentication token provided")

			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newErrorResponse(c, http.StatusUnauthorized, "no authentication token provided")

			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			newErrorResponse(c, http.StatusUnauthorized, "invalid token format")

			return
		}

		userID, err := auth.GetUserIDFromToken(tokenStr, s.jwtSecret)
		if err != nil {
			var expired *auth.ExpiredError
			if errors.As(err, &expired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message":   "token expired",
					"expiredAt": expired.ExpiredAt,
				})

				return
			}

			newErrorResponse(c, http.StatusUnauthorized, "invalid token")

			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			// a deleted or rotated user must not pass on a stale token
			newErrorResponse(c, http.StatusUnauthorized, "user not found")

			return
		}

		c.Set(userContextKey, user)

		c.Next()
	}
}

// currentUser returns the identity attached by authMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
