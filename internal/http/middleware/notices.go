package middleware

import (
	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/notify"
)

// Notices attaches a notice queue to the request context so services can
// report through notify.Request.
func Notices() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _ := notify.WithQueue(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// DrainNotices returns the notices queued during this request.
func DrainNotices(c *gin.Context) []notify.Notice {
	if q, ok := notify.QueueFrom(c.Request.Context()); ok {
		return q.Drain()
	}
	return nil
}
