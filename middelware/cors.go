package middelware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medstaff-backend/models"
)

// Verbs and headers the professional API actually serves. PUT is absent
// on purpose; item updates go through PATCH.
const (
	corsAllowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowedHeaders = "Origin, Content-Type, Accept, Authorization"
)

// CORSMiddleware gates browser access to the panel origins configured
// for the environment.
type CORSMiddleware struct {
	origins []string
}

// NewCORSMiddleware creates a new CORS middleware
func NewCORSMiddleware(cfg *models.Config) *CORSMiddleware {
	return &CORSMiddleware{origins: cfg.CORSOrigins}
}

// CORS returns the handler. Requests from unknown origins still run;
// without allow headers the browser blocks the response on its own.
func (m *CORSMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && m.allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", corsAllowedMethods)
			c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowed matches the origin against the configured panel origins.
// Entries may be exact, "*", or "*.domain" for panel subdomains.
func (m *CORSMiddleware) allowed(origin string) bool {
	for _, entry := range m.origins {
		if entry == "*" || entry == origin {
			return true
		}
		if domain, ok := strings.CutPrefix(entry, "*."); ok {
			if origin == domain || strings.HasSuffix(origin, "."+domain) {
				return true
			}
		}
	}
	return false
}
