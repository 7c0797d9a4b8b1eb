package middelware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"medstaff-backend/utils/logger"
)

// LoggingMiddleware logs one line per request with the acting session
// attached, so account mutations can be traced back to who made them.
type LoggingMiddleware struct {
	logger logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: log}
}

// RequestLogger returns the per-request logging handler. Health checks
// are skipped; everything else logs method, path, status, latency and
// the session user when one is present.
func (m *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.FullPath(), "/health") {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		actor := "anonymous"
		if session := SessionFrom(c); session != nil {
			actor = string(session.UserType) + " " + session.UserID
		}

		line := "%s %s -> %d in %s (%s, %s)"
		args := []interface{}{c.Request.Method, path, status, time.Since(start), c.ClientIP(), actor}
		switch {
		case status >= http.StatusInternalServerError:
			if len(c.Errors) > 0 {
				args[len(args)-1] = actor + "; " + c.Errors.String()
			}
			m.logger.Errorf(line, args...)
		case status >= http.StatusBadRequest:
			m.logger.Warnf(line, args...)
		default:
			m.logger.Infof(line, args...)
		}
	}
}

// Recovery converts handler panics into a 500 response instead of a
// dropped connection.
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("Panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
	})
}
