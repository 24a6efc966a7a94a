package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/taskhive-dev/taskhive/internal/types"
)

var accessLog = logrus.New()

func init() {
	accessLog.SetFormatter(&logrus.JSONFormatter{})
}

// RequestLogger writes one structured line per request for auditing: who
// called what, the outcome, and how long it took.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		fields := logrus.Fields{
			"method":     ctx.Request.Method,
			"path":       ctx.Request.URL.Path,
			"status":     ctx.Writer.Status(),
			"duration":   time.Since(start).String(),
			"ip":         ctx.ClientIP(),
			"user_agent": ctx.Request.UserAgent(),
		}

		if value, exists := ctx.Get(types.ContextUserKey); exists {
			if user, ok := value.(AuthenticatedUser); ok {
				fields["user_id"] = user.ID
			}
		}

		if ctx.Writer.Status() >= 500 {
			accessLog.WithFields(fields).Error("request failed")
		} else {
			accessLog.WithFields(fields).Info("request completed")
		}
	}
}
