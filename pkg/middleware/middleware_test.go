package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitwise74/safeglow-api/internal/apperr"
	"bitwise74/safeglow-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newIssuer(t *testing.T) *security.SessionIssuer {
	t.Helper()

	s, err := security.NewSessionIssuer("testsecret")
	require.NoError(t, err)
	return s
}

// newEngine wires the gateway the way the app router does, with one
// protected mutating endpoint and one protected read.
func newEngine(issuer *security.SessionIssuer) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(false), NewRequestIDMiddleware(), CSRFProtection(issuer, "/login"))
	r.NoRoute(NotFound)

	r.POST("/login", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.POST("/mutate", RequireSession(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	r.GET("/read", RequireSession(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	return r
}

type reqOpts struct {
	bearer     string
	cookie     string
	csrfCookie string
	csrfHeader string
}

func do(r http.Handler, method, path string, o reqOpts) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	if o.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+o.bearer)
	}
	if o.cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: o.cookie})
	}
	if o.csrfCookie != "" {
		req.AddCookie(&http.Cookie{Name: CSRFCookie, Value: o.csrfCookie})
	}
	if o.csrfHeader != "" {
		req.Header.Set(CSRFHeader, o.csrfHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestCSRFAmbientSession(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	sess, err := issuer.Issue("user-1")
	require.NoError(t, err)
	other, err := issuer.Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		opts   reqOpts
		status int
	}{
		{"matching header and cookie", reqOpts{cookie: sess.Token, csrfCookie: sess.CSRFToken, csrfHeader: sess.CSRFToken}, http.StatusOK},
		{"missing header", reqOpts{cookie: sess.Token, csrfCookie: sess.CSRFToken}, http.StatusForbidden},
		{"missing cookie", reqOpts{cookie: sess.Token, csrfHeader: sess.CSRFToken}, http.StatusForbidden},
		{"mismatched header", reqOpts{cookie: sess.Token, csrfCookie: sess.CSRFToken, csrfHeader: "nope"}, http.StatusForbidden},
		{"token from another session", reqOpts{cookie: sess.Token, csrfCookie: other.CSRFToken, csrfHeader: other.CSRFToken}, http.StatusForbidden},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w, body := do(r, http.MethodPost, "/mutate", test.opts)
			assert.Equal(t, test.status, w.Code)

			if test.status == http.StatusForbidden {
				assert.Equal(t, "CSRF token missing or invalid", body["message"])
				assert.NotEmpty(t, body["requestID"])
			}
		})
	}
}

func TestCSRFBearerSessionNeedsNoToken(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	sess, err := issuer.Issue("user-1")
	require.NoError(t, err)

	w, body := do(r, http.MethodPost, "/mutate", reqOpts{bearer: sess.Token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", body["userID"])

	// A bearer header wins even when a cookie is also present
	w, _ = do(r, http.MethodPost, "/mutate", reqOpts{bearer: sess.Token, cookie: sess.Token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCSRFPassThrough(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	sess, err := issuer.Issue("user-1")
	require.NoError(t, err)

	// Safe method with an ambient session and no CSRF token
	w, _ := do(r, http.MethodGet, "/read", reqOpts{cookie: sess.Token})
	assert.Equal(t, http.StatusOK, w.Code)

	// Session-establishing endpoint
	w, _ = do(r, http.MethodPost, "/login", reqOpts{cookie: sess.Token})
	assert.Equal(t, http.StatusOK, w.Code)

	// No credential at all: CSRF passes, identity rejects
	w, _ = do(r, http.MethodPost, "/mutate", reqOpts{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage cookie with a matching pair is left to the identity check
	w, _ = do(r, http.MethodPost, "/mutate", reqOpts{cookie: "garbage", csrfCookie: "x", csrfHeader: "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionExpired(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	old, err := issuer.WithClock(func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }).Issue("user-1")
	require.NoError(t, err)

	w, body := do(r, http.MethodGet, "/read", reqOpts{bearer: old.Token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization token expired. Please log in again", body["message"])
}

func TestRequireSessionMalformed(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	w, body := do(r, http.MethodGet, "/read", reqOpts{bearer: "definitely.not.valid"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization token invalid", body["message"])

	w, body = do(r, http.MethodGet, "/read", reqOpts{cookie: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization token invalid", body["message"])

	w, body = do(r, http.MethodGet, "/read", reqOpts{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestRequireSessionCookie(t *testing.T) {
	issuer := newIssuer(t)
	r := newEngine(issuer)

	sess, err := issuer.Issue("user-9")
	require.NoError(t, err)

	w, body := do(r, http.MethodGet, "/read", reqOpts{cookie: sess.Token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-9", body["userID"])
}

func TestCredentialFrom(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		want   Credential
	}{
		{"bearer", "Bearer abc", "", Credential{ShapeBearer, "abc"}},
		{"cookie", "", "def", Credential{ShapeAmbient, "def"}},
		{"wrong scheme falls back to cookie", "Basic abc", "def", Credential{ShapeAmbient, "def"}},
		{"empty bearer", "Bearer ", "", Credential{Shape: ShapeNone}},
		{"nothing", "", "", Credential{Shape: ShapeNone}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				c.Request.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}

			assert.Equal(t, tc.want, CredentialFrom(c))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(ErrorHandler(production))
		r.NoRoute(NotFound)
		r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("raw failure")) })
		r.GET("/wrapped", func(c *gin.Context) { c.Error(apperr.Internal(errors.New("db exploded"))) })
		r.GET("/conflict", func(c *gin.Context) { c.Error(apperr.Conflict("Email already in use")) })

		_, body := do(r, http.MethodGet, "/boom", reqOpts{})
		_, wrapped := do(r, http.MethodGet, "/wrapped", reqOpts{})
		if production {
			assert.Equal(t, "Internal Server Error", body["message"])
			assert.Equal(t, "Internal Server Error", wrapped["message"])
		} else {
			assert.Equal(t, "raw failure", body["message"])
			assert.Equal(t, "db exploded", wrapped["message"])
		}

		w, body := do(r, http.MethodGet, "/conflict", reqOpts{})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Email already in use", body["message"])

		w, body = do(r, http.MethodGet, "/nowhere", reqOpts{})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found: GET /nowhere", body["message"])
	}
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestRequireDatabase(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{{nil, http.StatusOK}, {errors.New("connection refused"), http.StatusServiceUnavailable}} {
		r := gin.New()
		r.Use(ErrorHandler(false))
		r.GET("/api/x", RequireDatabase(pinger{tc.err}), func(c *gin.Context) { c.Status(http.StatusOK) })

		w, body := do(r, http.MethodGet, "/api/x", reqOpts{})
		assert.Equal(t, tc.status, w.Code)
		if tc.err != nil {
			assert.Equal(t, "Database unavailable", body["message"])
		}
	}
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(false), RateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w, _ := do(r, http.MethodGet, "/", reqOpts{})
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(false), BodySizeLimiter(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
