package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Lookup errors
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "CATEGORY_NOT_FOUND", message
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, "CARD_NOT_FOUND", message

	// Copy errors
	case errors.Is(err, domain.ErrNoRawContent):
		return http.StatusUnprocessableEntity, "NO_RAW_CONTENT", message
	case errors.Is(err, domain.ErrCopyFailed):
		return http.StatusBadGateway, "UPSTREAM_FAILED", message

	// Validation errors
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message
	case errors.Is(err, domain.ErrInvalidOutcome):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	default:
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
