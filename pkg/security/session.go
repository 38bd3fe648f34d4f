package security

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"bitwise74/safeglow-api/pkg/util"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionTTL    = 7 * 24 * time.Hour
	csrfTokenSize = 24
	tokenType     = "auth"
)

var (
	ErrSecretRequired = errors.New("session signing secret is required")
	ErrTokenInvalid   = errors.New("session token invalid")
	ErrTokenExpired   = errors.New("session token expired")
)

// Claims is the payload of a session token. CSRF holds the SHA-256 digest
// of the paired CSRF token, never the token itself.
type Claims struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	CSRF   string `json:"csrf"`
	jwt.RegisteredClaims
}

// Session is what a successful login or registration hands to the client.
type Session struct {
	Token     string
	CSRFToken string
	ExpiresAt time.Time
}

// SessionIssuer signs and verifies HS256 session tokens.
type SessionIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewSessionIssuer fails when secret is empty. Callers treat that as a
// configuration error and refuse to start.
func NewSessionIssuer(secret string) (*SessionIssuer, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}

	return &SessionIssuer{secret: []byte(secret), now: time.Now}, nil
}

// WithClock replaces the time source, used by tests to mint old tokens.
func (s *SessionIssuer) WithClock(now func() time.Time) *SessionIssuer {
	return &SessionIssuer{secret: s.secret, now: now}
}

func (s *SessionIssuer) Issue(userID string) (*Session, error) {
	if userID == "" {
		return nil, errors.New("no user ID provided")
	}

	csrf, err := util.GenerateToken(csrfTokenSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF token, %w", err)
	}

	now := s.now()
	exp := now.Add(SessionTTL)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: userID,
		Type:   tokenType,
		CSRF:   util.HashToken(csrf),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token, %w", err)
	}

	return &Session{
		Token:     signed,
		CSRFToken: csrf,
		ExpiresAt: exp,
	}, nil
}

// Parse verifies the signature and expiry of a session token. Expired
// tokens yield ErrTokenExpired, anything else wrong yields ErrTokenInvalid.
func (s *SessionIssuer) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w, %w", ErrTokenInvalid, err)
	}

	if claims.Type != tokenType || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return &claims, nil
}

// MatchesCSRF reports whether csrf is the token paired with these claims.
func (c *Claims) MatchesCSRF(csrf string) bool {
	if csrf == "" || c.CSRF == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(util.HashToken(csrf)), []byte(c.CSRF)) == 1
}
