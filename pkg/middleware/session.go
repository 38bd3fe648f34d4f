package middleware

import (
	"errors"

	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireSession rejects requests without a valid, unexpired session token
// and stores the caller's ID under "userID".
func RequireSession(issuer *security.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		cred := CredentialFrom(c)
		if cred.Shape == ShapeNone {
			abort(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		claims, err := issuer.Parse(cred.Token)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				abort(c, apperr.Unauthorized("Authorization token expired. Please log in again"))
				return
			}

			zap.L().Debug("Rejected session token",
				zap.Error(err),
				zap.Stringer("shape", cred.Shape),
				zap.String("requestID", requestID))

			abort(c, apperr.Unauthorized("Authorization token invalid"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
