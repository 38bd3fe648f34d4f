package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrUsernameTooShort = errors.New("Username must be at least 3 characters")
	ErrUsernameInvalid  = errors.New("Valid username is required")
	ErrNameEmpty        = errors.New("Name must be a non-empty string")
)

func UsernameValidator(u string) error {
	if utf8.RuneCountInString(strings.TrimSpace(u)) < 3 {
		return ErrUsernameTooShort
	}

	return nil
}

// NameValidator accepts an absent name but rejects a blank one.
func NameValidator(n *string) error {
	if n != nil && strings.TrimSpace(*n) == "" {
		return ErrNameEmpty
	}

	return nil
}
