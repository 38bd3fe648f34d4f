// Package model defines database models
package model

import "time"

// User is a registered account. Email and Username are stored normalized
// (trimmed, lowercased); a nil Username never collides with another nil.
type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Username     *string `gorm:"uniqueIndex" json:"username"`
	Name         *string `json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`

	EmailVerified              bool       `gorm:"not null" json:"-"`
	EmailVerificationTokenHash *string    `gorm:"index" json:"-"`
	EmailVerificationExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// PublicUser is the subset of a user returned to clients.
type PublicUser struct {
	ID       string  `json:"id"`
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Email    string  `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
	}
}
