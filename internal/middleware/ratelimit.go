package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/docwell/editor-server/internal/pkg/redis"
	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP in fixed windows. Authenticated users
// are keyed by user id instead. A nil client disables the limit, and redis
// errors let the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if id := CurrentUserID(c); id != "" {
			subject = "user:" + id
		}

		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("editor:rate_limit:%s:%d", subject, bucket)

		count, err := rdb.IncrWindow(c.Request.Context(), key, window+time.Second)
		if err != nil {
			log.Warn("rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())+1))
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
