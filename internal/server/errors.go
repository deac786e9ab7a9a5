package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/validation"
)

type errorPayload struct {
	Type    string                  `json:"type"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrRateLimited    = errors.New("rate_limited")
	ErrInternal       = errors.New("internal_error")
)

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

func invalidRequestError() error {
	return validation.NewError("request", "invalid_request", "invalid request body")
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErr *validation.Errors
	if errors.As(err, &vErr) && vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, validationPayload("request", "invalid_request", "invalid request")
	case errors.Is(err, catalogdomain.ErrInvalidID):
		return http.StatusBadRequest, validationPayload("id", "invalid_id", "Invalid product ID")
	case errors.Is(err, orderdomain.ErrInvalidID):
		return http.StatusBadRequest, validationPayload("id", "invalid_id", "Invalid order ID")
	case errors.Is(err, inquirydomain.ErrAlreadySubscribed):
		return http.StatusBadRequest, validationPayload("email", "already_subscribed", "Email is already subscribed")
	case errors.Is(err, catalogdomain.ErrDuplicateSlug):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "slug already in use",
			Errors:  []validation.FieldError{{Field: "slug", Code: "duplicate_slug", Message: "Slug is already in use"}},
		}
	case errors.Is(err, catalogdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "Product not found"}
	case errors.Is(err, orderdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "Order not found"}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "not found"}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests, please try again later",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func validationPayload(field, code, message string) errorPayload {
	return errorPayload{
		Type:    "validation_error",
		Message: "validation error",
		Errors:  []validation.FieldError{{Field: field, Code: code, Message: message}},
	}
}

// classifyErrorForLog returns the error type and code for the request log.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	if status >= http.StatusInternalServerError {
		return "internal_error", "internal_error"
	}
	return payload.Type, code
}
