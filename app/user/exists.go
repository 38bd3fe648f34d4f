package user

import (
	"errors"
	"net/http"
	"strings"

	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/validators"

	"github.com/gin-gonic/gin"
)

// UserExists lets the client check an email or a username before
// registering. Exactly one of the two must be given.
func UserExists(c *gin.Context, d *internal.Deps) {
	// Empty values count as absent
	email := c.Query("email")
	username := c.Query("username")
	hasEmail, hasUsername := email != "", username != ""

	if !hasEmail && !hasUsername {
		c.Error(apperr.Validation("email or username is required"))
		return
	}

	if hasEmail && hasUsername {
		c.Error(apperr.Validation("Provide either email or username, not both"))
		return
	}

	var err error
	if hasEmail {
		if validators.EmailValidator(email) != nil {
			c.Error(apperr.Validation(validators.ErrEmailInvalid.Error()))
			return
		}

		_, err = d.Users.FindByEmail(c.Request.Context(), email)
	} else {
		if strings.TrimSpace(username) == "" {
			c.Error(apperr.Validation(validators.ErrUsernameInvalid.Error()))
			return
		}

		_, err = d.Users.FindByUsername(c.Request.Context(), username)
	}

	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.Error(apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists": err == nil,
	})
}
