package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/response"
)

// Recovery turns a handler panic into a 500 envelope. Headers already sent
// cannot be replaced, so only the log entry is written in that case.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := []any{
				"panic", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", requestid.Get(c),
				"stack", string(debug.Stack()),
			}
			if session, ok := Session(c); ok {
				fields = append(fields, "user_id", session.UserID)
			}
			logger.Errorw("handler panicked", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.Abort(c, http.StatusInternalServerError, "Internal server error")
		}()
		c.Next()
	}
}
