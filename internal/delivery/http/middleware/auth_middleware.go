package middleware

import (
	"strings"

	"talentmatch-backend/internal/domain"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards the recruiter endpoints. It expects a Bearer token
// issued by the login endpoint and puts the recruiter email on the context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Error(apperror.Unauthorized("Missing or malformed Authorization header"))
			c.Abort()
			return
		}

		subject, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.Error(apperror.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserEmail), subject)
		c.Next()
	}
}
