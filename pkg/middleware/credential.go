package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "safeglow_token"
	CSRFCookie    = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

// Shape is how a session credential reached the server.
type Shape int

const (
	// ShapeNone means no credential was presented.
	ShapeNone Shape = iota
	// ShapeBearer is an Authorization: Bearer header. Browsers never attach
	// it on their own, so it needs no CSRF token.
	ShapeBearer
	// ShapeAmbient is the http-only session cookie, which browsers send
	// automatically and therefore must be paired with a CSRF token.
	ShapeAmbient
)

func (s Shape) String() string {
	switch s {
	case ShapeBearer:
		return "bearer"
	case ShapeAmbient:
		return "ambient"
	}

	return "none"
}

type Credential struct {
	Shape Shape
	Token string
}

// CredentialFrom reads the session credential of a request. A bearer
// header takes precedence over the cookie.
func CredentialFrom(c *gin.Context) Credential {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && scheme == "Bearer" && strings.TrimSpace(token) != "" {
		return Credential{Shape: ShapeBearer, Token: strings.TrimSpace(token)}
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return Credential{Shape: ShapeAmbient, Token: cookie}
	}

	return Credential{Shape: ShapeNone}
}
