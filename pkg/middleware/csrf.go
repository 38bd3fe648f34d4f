package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"

	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/pkg/security"

	"github.com/gin-gonic/gin"
)

const csrfFailedMessage = "CSRF token missing or invalid"

// CSRFProtection guards state-changing requests that authenticate with the
// session cookie. They must echo the csrf_token cookie in the X-CSRF-Token
// header, and the token must be the one paired with the session.
//
// Safe methods, the exempt paths (the endpoints that create a session),
// bearer credentials and requests without any credential pass through.
func CSRFProtection(issuer *security.SessionIssuer, exempt ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if slices.Contains(exempt, c.Request.URL.Path) {
			c.Next()
			return
		}

		cred := CredentialFrom(c)

		switch cred.Shape {
		case ShapeNone, ShapeBearer:
			c.Next()
			return
		}

		header := c.GetHeader(CSRFHeader)
		cookie, _ := c.Cookie(CSRFCookie)

		if header == "" || cookie == "" || subtle.ConstantTimeCompare([]byte(header), []byte(cookie)) != 1 {
			abort(c, apperr.Forbidden(csrfFailedMessage))
			return
		}

		// An unparsable session is left for RequireSession to reject with 401
		if claims, err := issuer.Parse(cred.Token); err == nil && !claims.MatchesCSRF(header) {
			abort(c, apperr.Forbidden(csrfFailedMessage))
			return
		}

		c.Next()
	}
}
