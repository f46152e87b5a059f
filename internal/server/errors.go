package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/copystack/printledger/internal/day"
	devicedomain "github.com/copystack/printledger/internal/device/domain"
	manualdomain "github.com/copystack/printledger/internal/manualentry/domain"
	readingdomain "github.com/copystack/printledger/internal/reading/domain"
	"github.com/copystack/printledger/internal/settings"
	wastedomain "github.com/copystack/printledger/internal/waste/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
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
	switch {
	case isValidationError(err):
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	case errors.Is(err, devicedomain.ErrEndpointInUse):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "endpoint already registered",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, day.ErrInvalidDate),
		errors.Is(err, day.ErrInvalidRange),
		errors.Is(err, settings.ErrInvalidValue):
		return true
	case errors.Is(err, devicedomain.ErrInvalidName),
		errors.Is(err, devicedomain.ErrInvalidClass),
		errors.Is(err, devicedomain.ErrInvalidEndpoint),
		errors.Is(err, devicedomain.ErrInvalidRate),
		errors.Is(err, devicedomain.ErrInvalidStatus),
		errors.Is(err, devicedomain.ErrInvalidID):
		return true
	case errors.Is(err, readingdomain.ErrInvalidDevice),
		errors.Is(err, readingdomain.ErrInvalidCounter),
		errors.Is(err, readingdomain.ErrInvalidDate):
		return true
	case errors.Is(err, wastedomain.ErrInvalidDevice),
		errors.Is(err, wastedomain.ErrInvalidDate),
		errors.Is(err, wastedomain.ErrInvalidCount),
		errors.Is(err, wastedomain.ErrInvalidID):
		return true
	case errors.Is(err, manualdomain.ErrInvalidDate),
		errors.Is(err, manualdomain.ErrInvalidAmount),
		errors.Is(err, manualdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, devicedomain.ErrNotFound),
		errors.Is(err, wastedomain.ErrNotFound),
		errors.Is(err, manualdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return unwrapSentinel(err)
	}
}

// unwrapSentinel walks to the innermost error so wrapped sentinels keep
// their snake_case code in the payload.
func unwrapSentinel(err error) string {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
