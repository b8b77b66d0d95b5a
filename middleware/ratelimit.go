package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit aplica ventana fija por IP sobre Redis: INCR + EXPIRE en la
// primera petición de la ventana. Si Redis no responde la petición pasa,
// el límite es protección, no disponibilidad.
func RateLimit(client *redis.Client, max int, ventana time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, ventana)
		}
		if count > int64(max) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(ventana.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas peticiones. Intente más tarde",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
