package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// route yang berisi data staff atau keranjang pelanggan tidak boleh di-cache
var noStorePrefixes = []string{"/admin", "/cart", "/checkout", "/auth"}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		for _, prefix := range noStorePrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Header("Cache-Control", "no-store")
				break
			}
		}

		c.Next()
	}
}
