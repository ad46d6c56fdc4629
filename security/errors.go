package security

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bagasramadhana99/Glucosense/store"
)

// ErrorResponse represents a standardized error response structure
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Common error codes
const (
	// Authentication errors
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Validation errors
	CodeValidationError = "VALIDATION_ERROR"

	// Resource errors
	CodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	CodeDuplicateResource = "DUPLICATE_RESOURCE"
	CodeResourceInUse     = "RESOURCE_IN_USE"

	// Server errors
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeDatabaseUnavailable = "DATABASE_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeModelUnavailable    = "MODEL_UNAVAILABLE"
)

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, errorCode, errorMessage, detailedMessage string, details interface{}) {
	response := ErrorResponse{
		Error:   errorMessage,
		Message: detailedMessage,
		Code:    errorCode,
	}

	if details != nil {
		response.Details = details
	}

	c.JSON(statusCode, response)
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, message string, details interface{}) {
	SendError(c, http.StatusBadRequest, CodeValidationError, "Validation failed", message, details)
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c *gin.Context, resource string) {
	SendError(c, http.StatusNotFound, CodeResourceNotFound, "Resource not found",
		"The requested "+resource+" was not found", nil)
}

// SendStoreError translates a classified error from the scoped executor into
// a response: unreachable store is 503, unique-key and foreign-key conflicts
// are 409, any other store failure is 500 with the driver text attached as a
// diagnostic, and everything else collapses to a plain 500.
func SendStoreError(c *gin.Context, err error, message string) {
	switch {
	case store.IsUnavailable(err):
		SendError(c, http.StatusServiceUnavailable, CodeDatabaseUnavailable, "Database unavailable",
			"Could not reach the database. Please try again later", nil)
	case store.IsDuplicate(err):
		SendError(c, http.StatusConflict, CodeDuplicateResource, "Duplicate value",
			"A record with the same unique value already exists", err.Error())
	case store.IsForeignKey(err):
		SendError(c, http.StatusConflict, CodeResourceInUse, "Resource in use",
			"The record cannot be changed because it is referenced elsewhere", err.Error())
	default:
		var se *store.StoreError
		if errors.As(err, &se) {
			SendError(c, http.StatusInternalServerError, CodeDatabaseError, "Database error",
				message, err.Error())
			return
		}
		SendError(c, http.StatusInternalServerError, CodeInternalError, "Internal server error",
			message, nil)
	}
}
