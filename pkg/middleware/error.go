package middleware

import (
	"errors"
	"net/http"

	"refermark-server/pkg/errutil"
	"refermark-server/pkg/httpapi"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error translates errors attached via c.Error into the uniform envelope.
// Anything that is not a BaseError becomes a generic 500 so internal detail
// never leaks to the client.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		ginErr := c.Errors.Last()
		if ginErr == nil || c.Writer.Written() {
			return
		}

		var base errutil.BaseError
		if errors.As(ginErr.Err, &base) {
			body := struct {
				Success bool             `json:"success"`
				Error   string           `json:"error"`
				Details []errutil.Detail `json:"details,omitempty"`
			}{
				Success: false,
				Error:   base.Message,
				Details: base.Details,
			}
			c.JSON(base.Code.HTTPStatus(), body)
			return
		}

		zap.L().Error("unhandled request error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(ginErr.Err),
		)
		c.JSON(http.StatusInternalServerError, httpapi.Response{
			Success: false,
			Error:   "Server error",
		})
	}
}
