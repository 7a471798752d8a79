package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"unicart/internal/handler/httperr"
	"unicart/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const maxStackLines = 12

// ErrorHandler logs the cause behind 5xx responses and writes a generic body
// for handlers that failed without one.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for i := len(c.Errors) - 1; i >= 0; i-- {
			ge := c.Errors[i]
			resp, ok := ge.Meta.(httperr.Response)
			if !ok || !ge.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp.Status >= http.StatusInternalServerError {
				logger.Error("request failed",
					"request_id", GetRequestID(c),
					"status", resp.Status,
					"retryable", resp.Error.Retryable,
					"error", ge.Err,
					"stack", errs.ExtractStackLines(ge.Err, maxStackLines),
				)
			}
			if !c.Writer.Written() {
				c.JSON(resp.Status, resp)
			}
			return
		}

		if c.Writer.Written() {
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil)
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				resp := httperr.NewResponse(http.StatusInternalServerError, "Internal server error", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
			}
		}()
		c.Next()
	}
}
