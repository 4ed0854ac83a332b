package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataResponse wraps every successful payload.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	// Machine-readable error code
	// example: NOT_FOUND
	Code string `json:"code"`

	// Human-readable message
	// example: Attendant not found
	Message string `json:"message"`

	// Optional details
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse is returned with 422; Errors maps a request field to its messages.
type ValidationErrorResponse struct {
	// example: VALIDATION_ERROR
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// TokenResponse represents a pair of auth tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func Data(c *gin.Context, status int, data any) {
	c.JSON(status, DataResponse{Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// Internal hides err from the client; it is attached to the context for the request logger.
func Internal(c *gin.Context, code string, err error) {
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, code, "Internal server error")
}

func Validation(c *gin.Context, errs map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: firstMessage(errs),
		Errors:  errs,
	})
}

func firstMessage(errs map[string][]string) string {
	var first string
	for field, msgs := range errs {
		if len(msgs) == 0 {
			continue
		}
		if first == "" || field < first {
			first = field
		}
	}
	if first == "" {
		return "The given data was invalid."
	}
	return errs[first][0]
}
