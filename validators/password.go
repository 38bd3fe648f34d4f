package validators

import "errors"

var ErrPasswordEmpty = errors.New("Password is required")

// PasswordValidator only requires a non-empty password, strength rules are
// left to the client.
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	return nil
}
