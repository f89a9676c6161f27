package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const (
	// PrincipalEmailKey holds the verified principal email for the request.
	PrincipalEmailKey = "x-principal-email"

	// UserIDKey holds the resolved internal user id.
	UserIDKey = "x-user-id"
)

// JwtMiddleware verifies the bearer token and stores the principal email.
// Requests without a valid token stop here with 401.
func JwtMiddleware(tokens port.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		email, err := tokens.VerifyToken(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		c.Set(PrincipalEmailKey, email)
		c.Next()
	}
}

// CurrentUserMiddleware maps the principal email to the internal user
// record. The database is the source of truth; a token for an unknown
// email is a 404, distinct from the 401 above.
func CurrentUserMiddleware(users port.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(PrincipalEmailKey)

		if email == "" {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		user, err := users.ResolveByEmail(c.Request.Context(), email)

		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				helper.SendNotFoundError(c, "User not found")
			} else {
				helper.SendInternalError(c, "Error resolving user")
			}

			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}
