package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response:
// {"status":"success"|"error","message":...,"data":...}.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success writes a success envelope with the given HTTP status.
func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: "success", Message: message, Data: data})
}

// Error writes an error envelope. details carries optional field-level
// validation messages.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Envelope{Status: "error", Message: message, Errors: details})
}

// AbortError writes an error envelope and aborts the handler chain.
func AbortError(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, Envelope{Status: "error", Message: message, Errors: details})
}
