package middleware

import (
	"fmt"
	"net/http"

	"heat-demand/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics into the uniform error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		case fmt.Stringer:
			msg = v.String()
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
		c.Abort()
	})
}
