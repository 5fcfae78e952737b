package apperror

import "net/http"

// Machine-readable error kinds returned to API clients.
const (
	KindNotFound       = "NOT_FOUND"
	KindDuplicateEmail = "DUPLICATE_EMAIL"
	KindJobClosed      = "JOB_CLOSED"
	KindInvalidStatus  = "INVALID_STATUS"
	KindValidation     = "VALIDATION_ERROR"
	KindUnauthorized   = "UNAUTHORIZED"
	KindInternal       = "DEPENDENCY_FAILURE"
)

type AppError struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func DuplicateEmail(message string) *AppError {
	return New(http.StatusBadRequest, KindDuplicateEmail, message, nil)
}

func JobClosed(message string) *AppError {
	return New(http.StatusBadRequest, KindJobClosed, message, nil)
}

// InvalidStatus reports a transition target outside the enumeration and
// echoes the legal values back to the caller.
func InvalidStatus(message string, validStatuses []string) *AppError {
	e := New(http.StatusBadRequest, KindInvalidStatus, message, nil)
	e.Details = map[string]interface{}{"valid_statuses": validStatuses}
	return e
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}
