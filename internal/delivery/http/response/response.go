package response

import (
	"github.com/gin-gonic/gin"

	"talentmatch-backend/internal/domain"
)

// Response standardizes the API JSON response
type Response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Error      interface{}        `json:"error,omitempty"`
	RequestID  string             `json:"request_id,omitempty"`
}

// ErrorBody is the machine-readable error block inside a Response.
type ErrorBody struct {
	Kind    string      `json:"kind"`
	Details interface{} `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Page sends a success response carrying a page of results plus the
// pagination block.
func Page(c *gin.Context, code int, message string, data interface{}, pagination *domain.Pagination) {
	c.JSON(code, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
		RequestID:  requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
