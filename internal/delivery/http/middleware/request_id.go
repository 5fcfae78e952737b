package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"talentmatch-backend/internal/domain"
)

// RequestID tags every request with a UUID, echoed in responses and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
