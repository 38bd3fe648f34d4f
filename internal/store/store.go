// Package store persists user credentials. Uniqueness of email and
// username is enforced by the backing store itself, never by callers.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitwise74/safeglow-api/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idLength  = 16
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
)

// UserStore is the credential store injected into request handlers.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// FindByVerificationHash returns the user holding an unexpired
	// verification token with the given hash.
	FindByVerificationHash(ctx context.Context, hash string, now time.Time) (*model.User, error)
	// Create assigns an ID when u.ID is empty. It fails with ErrEmailTaken
	// or ErrUsernameTaken on collisions.
	Create(ctx context.Context, u *model.User) error
	MarkVerified(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// normalize lowercases the unique fields and drops an empty username so it
// doesn't collide with other users that have none.
func normalize(u *model.User) {
	u.Email = NormalizeEmail(u.Email)

	if u.Username != nil {
		n := NormalizeUsername(*u.Username)
		if n == "" {
			u.Username = nil
		} else {
			u.Username = &n
		}
	}
}

func newID() (string, error) {
	return gonanoid.Generate(idCharset, idLength)
}
