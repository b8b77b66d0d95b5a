package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger recibe el logger construido en el main.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Logger registra método, ruta, status y latencia de cada request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
