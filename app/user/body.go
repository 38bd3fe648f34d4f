// Package user contains the account and session endpoints
package user

import (
	"errors"
	"io"
	"net/http"

	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 60 * 60 * 24 * 7

// bindBody decodes a JSON body into v. An empty body leaves v untouched so
// field validation reports what is missing.
func bindBody(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperr.New(http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
	}

	return apperr.Wrap(http.StatusBadRequest, "Invalid request body", err)
}

// setSessionCookies hands out the http-only session cookie and the
// script-readable CSRF cookie paired with it.
func setSessionCookies(c *gin.Context, token, csrf string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, sessionCookieMaxAge, "/", "", secure, true)
	c.SetCookie(middleware.CSRFCookie, csrf, sessionCookieMaxAge, "/", "", secure, false)
}

func clearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
	c.SetCookie(middleware.CSRFCookie, "", -1, "/", "", secure, false)
}
