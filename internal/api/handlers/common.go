package handlers

import (
	"errors"
	"net/http"

	apperrors "letter-office-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// isValidationError matches both domain validation errors and field-level
// failures reported by the validator
func isValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return apperrors.IsValidation(err) || errors.As(err, &fieldErrs)
}

// parseOptionalUUIDQuery reads an optional UUID query parameter. It writes a
// 400 response and returns ok=false when the value is present but malformed.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	id, err := uuid.Parse(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ": invalid UUID format"})
		return nil, false
	}
	return &id, true
}
