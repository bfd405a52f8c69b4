package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"costofliving/utils"
)

// LoggerMiddleware logs method, path, status, duration and client IP once per request.
func LoggerMiddleware(log *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)

		if len(c.Errors) > 0 {
			log.Error("[http] %s %s %d %v %s errors=%s",
				c.Request.Method, path, status, duration, c.ClientIP(), c.Errors.String())
			return
		}
		log.Info("[http] %s %s %d %v %s", c.Request.Method, path, status, duration, c.ClientIP())
	}
}

// CORSMiddleware allows cross-origin GETs from the configured origins.
// A "*" entry allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowed := determineAllowedOrigin(origin, allowedOrigins)
		if allowed == "" {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowed)
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		h.Set("Access-Control-Max-Age", "86400")
		if allowed != "*" {
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func determineAllowedOrigin(origin string, allowedOrigins []string) string {
	for _, o := range allowedOrigins {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// RecoveryMiddleware turns panics into the structured 500 response.
func RecoveryMiddleware(log *utils.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("[http] panic serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ServerErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to fetch cost of living data",
			Details: "unexpected failure",
		})
	})
}
