package user

import (
	"errors"
	"net/http"

	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data loginBody
	if err := bindBody(c, &data); err != nil {
		c.Error(err)
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.Error(apperr.Validation(validators.ErrEmailInvalid.Error()))
		return
	}

	if data.Password == "" {
		c.Error(apperr.Validation(validators.ErrPasswordEmpty.Error()))
		return
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// 404 on purpose, the client sends the user to registration
			c.Error(apperr.NotFound("Account not found. Please register first."))
			return
		}

		c.Error(apperr.Internal(err))
		return
	}

	if d.Config.EmailVerificationRequired && !user.EmailVerified {
		c.Error(apperr.Forbidden("Email verification required"))
		return
	}

	ok, err := d.Passwords.Verify(data.Password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		c.Error(apperr.Internal(err))
		return
	}

	if !ok {
		c.Error(apperr.Unauthorized("Invalid credentials"))
		return
	}

	sess, err := d.Sessions.Issue(user.ID)
	if err != nil {
		c.Error(apperr.Internal(err))
		return
	}

	setSessionCookies(c, sess.Token, sess.CSRFToken, d.Config.SecureCookies())

	c.JSON(http.StatusOK, authResponse{
		Message:   "Logged in",
		Token:     &sess.Token,
		CSRFToken: &sess.CSRFToken,
		User:      user.Public(),
	})
}

func UserLogout(c *gin.Context, d *internal.Deps) {
	clearSessionCookies(c, d.Config.SecureCookies())

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
