package middleware

import (
	"errors"
	"net/http"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
				response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
					Kind:    appErr.Kind,
					Details: appErr.Details,
				})
				return
			}

			// Never expose internal error details to clients. Log the
			// actual error server-side, send an opaque message back.
			cause := err
			if appErr != nil && appErr.Err != nil {
				cause = appErr.Err
			}
			logger.Log.Error("internal server error", "path", c.Request.URL.Path, "error", cause)
			response.Error(c, http.StatusInternalServerError,
				"An unexpected error occurred. Please try again later.",
				response.ErrorBody{Kind: apperror.KindInternal})
		}
	}
}
