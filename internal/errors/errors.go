package errors

import (
	"net/http"

	"codeberg.org/contentstudio/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.ValidationError(), etc.
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/stores/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Expected outcomes are sentinels (usage.ErrQuotaExhausted, content.ErrValidationFailed),
//     matched with errors.Is by the caller
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeNotFound         = "not_found"
	CodeValidationFailed = "validation_failed"
	CodeQuotaExhausted   = "quota_exhausted"
	CodeServerError      = "server_error"
	CodeBadRequest       = "bad_request"
	CodeTooManyRequests  = "too_many_requests"
	CodeGenerationFailed = "generation_failed"
)

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 error for brand input that is missing required fields
func ValidationError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "validation failed"
	}

	response := ErrorResponse{
		Error:   CodeValidationFailed,
		Message: message,
	}

	// field names are safe to show in every environment
	if err != nil {
		response.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 429 error when the daily generation quota is used up
func QuotaExhausted(c *gin.Context, message string) {
	if message == "" {
		message = "daily generation limit reached"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeQuotaExhausted,
		Message: message,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	serverError(c, CodeServerError, message, err)
}

// returns a 500 error when the content generator fails or is cut short
func GenerationFailed(c *gin.Context, message string, err error) {
	if message == "" {
		message = "generation failed"
	}

	serverError(c, CodeGenerationFailed, message, err)
}

func serverError(c *gin.Context, code, message string, err error) {
	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_id", c.GetString("client_id"),
		"category", classifyError(err).category,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   code,
		Message: message,
		Details: sanitizeError(err),
	})
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return classifyError(err).sanitized
}
