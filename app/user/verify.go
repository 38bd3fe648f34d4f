package user

import (
	"errors"
	"net/http"

	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/pkg/util"

	"github.com/gin-gonic/gin"
)

func UserVerifyEmail(c *gin.Context, d *internal.Deps) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		c.Error(apperr.Validation("token is required"))
		return
	}

	user, err := d.Users.FindByVerificationHash(ctx, util.HashToken(token), d.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.Error(apperr.Validation("Invalid or expired token"))
			return
		}

		c.Error(apperr.Internal(err))
		return
	}

	if err := d.Users.MarkVerified(ctx, user.ID); err != nil {
		c.Error(apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified",
	})
}
