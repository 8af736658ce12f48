package middlewares

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/geprek-app/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := loggedPath(c.Request.URL)

		c.Next()

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"ip":      c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		entry.Info(path)
	}
}

// parameter query yang berisi kredensial, mis. token JWT untuk /ws
var sensitiveParams = []string{"token", "access_token"}

// loggedPath -> path + query dengan kredensial disensor
func loggedPath(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	q := u.Query()
	for _, key := range sensitiveParams {
		if q.Has(key) {
			q.Set(key, "redacted")
		}
	}
	return u.Path + "?" + q.Encode()
}

// ExportLoggerMiddleware mencatat setiap unduhan laporan rekap
func ExportLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		recapID := c.Param("id")
		format := c.DefaultQuery("format", "xlsx")
		utils.InfoLogger.Printf("Exporting recap #%s as %s", recapID, format)

		c.Next()

		if c.Writer.Status() == 200 {
			utils.InfoLogger.Printf("Recap #%s exported (%d bytes)", recapID, c.Writer.Size())
		} else {
			utils.ErrorLogger.Errorf("Failed to export recap #%s: status %d", recapID, c.Writer.Status())
		}
	}
}
