package user

import (
	"errors"
	"net/http"
	"net/url"

	"bitwise74/safeglow-api/internal"
	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/internal/model"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/pkg/security"
	"bitwise74/safeglow-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string  `json:"username"`
	Name     *string `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

type authResponse struct {
	Message   string           `json:"message"`
	Token     *string          `json:"token"`
	CSRFToken *string          `json:"csrfToken"`
	User      model.PublicUser `json:"user"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	ctx := c.Request.Context()

	var data registerBody
	if err := bindBody(c, &data); err != nil {
		c.Error(err)
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		c.Error(apperr.Validation(err.Error()))
		return
	}

	if err := validators.NameValidator(data.Name); err != nil {
		c.Error(apperr.Validation(err.Error()))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.Error(apperr.Validation(validators.ErrEmailInvalid.Error()))
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.Error(apperr.Validation(err.Error()))
		return
	}

	email := store.NormalizeEmail(data.Email)
	username := store.NormalizeUsername(data.Username)

	if _, err := d.Users.FindByEmail(ctx, email); err == nil {
		c.Error(apperr.Conflict("Email already in use"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.Error(apperr.Internal(err))
		return
	}

	if _, err := d.Users.FindByUsername(ctx, username); err == nil {
		c.Error(apperr.Conflict("Username already in use"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.Error(apperr.Internal(err))
		return
	}

	hash, err := d.Passwords.Hash(data.Password)
	if err != nil {
		c.Error(apperr.Internal(err))
		return
	}

	u := &model.User{
		Username:      &username,
		Name:          data.Name,
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: true,
	}

	var verif *security.VerificationToken
	if d.Config.EmailVerificationRequired {
		verif, err = security.MakeVerificationToken(d.Now())
		if err != nil {
			c.Error(apperr.Internal(err))
			return
		}

		u.EmailVerified = false
		u.EmailVerificationTokenHash = &verif.Hash
		u.EmailVerificationExpiresAt = &verif.ExpiresAt
	}

	// The store's unique indexes settle races the lookups above can't see
	if err := d.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			c.Error(apperr.Conflict("Email already in use"))
		case errors.Is(err, store.ErrUsernameTaken):
			c.Error(apperr.Conflict("Username already in use"))
		default:
			c.Error(apperr.Internal(err))
		}
		return
	}

	if verif != nil {
		link := d.Config.PublicBaseURL + "/api/auth/verify-email?token=" + url.QueryEscape(verif.Raw)

		if err := d.Mailer.SendVerification(u.Email, link); err != nil {
			zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusCreated, authResponse{
			Message: "Verification email sent",
			User:    u.Public(),
		})
		return
	}

	sess, err := d.Sessions.Issue(u.ID)
	if err != nil {
		c.Error(apperr.Internal(err))
		return
	}

	setSessionCookies(c, sess.Token, sess.CSRFToken, d.Config.SecureCookies())

	c.JSON(http.StatusCreated, authResponse{
		Message:   "Registered",
		Token:     &sess.Token,
		CSRFToken: &sess.CSRFToken,
		User:      u.Public(),
	})
}
