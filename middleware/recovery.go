package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic in a later handler into the 500 error envelope
// carrying the trace id. The log entry names the function and caller.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			traceID := GetTraceID(c)
			log.Error("panic recovered",
				zap.Any("panic", r),
				zap.String("function", c.Param("function")),
				zap.String("user", GetUserName(c)),
				zap.String("trace_id", traceID),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stack"),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message":  "internal server error",
				"trace_id": traceID,
			})
		}()
		c.Next()
	}
}
