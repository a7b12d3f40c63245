package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/openbooks/books_backend/internal/apperrors"
)

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// respondError maps sentinel errors to HTTP statuses and writes the failure
// envelope. Unclassified errors become opaque 500s; their detail stays in the
// logs.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	// Duplicates and business-rule conflicts surface as 400 alongside plain
	// validation failures; the message carries the distinction.
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, errorResponse{Success: false, Message: message})
}

// respondBindError writes a 400 for malformed request payloads. Validation
// failures are flattened to per-field messages.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, errorResponse{Success: false, Message: "validation failed: " + strings.Join(fields, "; ")})
		return
	}
	c.JSON(http.StatusBadRequest, errorResponse{Success: false, Message: "invalid request format: " + err.Error()})
}
