package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mertkaya/teampulse/pkg/logger"
	"github.com/sirupsen/logrus"
)

// RequestLogging logs one structured line per request
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}
