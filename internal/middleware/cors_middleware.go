package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	allowHeaders = "Content-Type,Last-Event-ID"
)

// CORS lets the listed browser origins drive the timer. "*" allows any
// origin. Entries of the form "http://localhost:*" match any port.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]struct{}, len(allowedOrigins))
	var anyPort []string
	allowAll := false
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "*":
			allowAll = true
		case strings.HasSuffix(origin, ":*"):
			anyPort = append(anyPort, strings.TrimSuffix(origin, "*"))
		case origin != "":
			exact[origin] = struct{}{}
		}
	}

	allowed := func(origin string) bool {
		if _, ok := exact[origin]; ok {
			return true
		}
		for _, prefix := range anyPort {
			if strings.HasPrefix(origin, prefix) && !strings.ContainsAny(origin[len(prefix):], "/:") {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case allowed(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			c.Header("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
