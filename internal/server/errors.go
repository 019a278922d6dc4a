package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/roommanager/internal/customer/domain"
)

var ErrUnauthorized = errors.New("unauthorized")

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	return "validation error"
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{Errors: []ValidationError{{Field: field, Code: code, Message: message}}}
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

type errorMapping struct {
	target  error
	status  int
	errType string
	message string
}

// first match wins
var errorMappings = []errorMapping{
	{ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "unauthorized"},
	{customerdomain.ErrReloadInProgress, http.StatusConflict, "conflict", "a customer reload is already running"},
	{customerdomain.ErrReloadThrottled, http.StatusTooManyRequests, "rate_limited", "too many reload requests"},
	{customerdomain.ErrLoadFailed, http.StatusBadGateway, "source_unavailable", "customer source could not be loaded"},
	{customerdomain.ErrIndexUninitialized, http.StatusServiceUnavailable, "service_unavailable", "customer index is not loaded yet"},
}

var internalError = errorMapping{status: http.StatusInternalServerError, errType: "internal_error", message: "internal server error"}

// ErrorHandlingMiddleware renders the last handler error unless a body was already written.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		status, payload := mapError(last.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var verr *ValidationErrors
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: verr.Errors[0].Message,
			Errors:  verr.Errors,
		}
	}
	m := lookupMapping(err)
	return m.status, errorPayload{Type: m.errType, Message: m.message}
}

func lookupMapping(err error) errorMapping {
	if err != nil {
		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				return m
			}
		}
	}
	return internalError
}

// classifyErrorForLog returns the response type and the most specific code known for err.
func classifyErrorForLog(err error) (string, string) {
	var verr *ValidationErrors
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return "validation_error", verr.Errors[0].Code
	}
	m := lookupMapping(err)
	if m.target == nil {
		return m.errType, m.errType
	}
	return m.errType, m.target.Error()
}
