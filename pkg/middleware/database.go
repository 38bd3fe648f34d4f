package middleware

import (
	"context"
	"time"

	"bitwise74/safeglow-api/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireDatabase answers 503 while the database can't be reached.
func RequireDatabase(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			zap.L().Error("Database unreachable", zap.Error(err), zap.String("requestID", c.GetString("requestID")))

			abort(c, apperr.Unavailable("Database unavailable"))
			return
		}

		c.Next()
	}
}
