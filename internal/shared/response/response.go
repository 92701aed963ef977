package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors: map[string]any{
			"code":    errorCode,
			"details": details,
		},
	})
}
