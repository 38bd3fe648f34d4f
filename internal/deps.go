package internal

import (
	"time"

	"bitwise74/safeglow-api/config"
	"bitwise74/safeglow-api/internal/service"
	"bitwise74/safeglow-api/internal/store"
	"bitwise74/safeglow-api/pkg/security"
)

// Deps is everything request handlers need, built once in app.NewRouter.
type Deps struct {
	Config      *config.Config
	Users       store.UserStore
	Passwords   *security.PasswordHasher
	Sessions    *security.SessionIssuer
	Recommender *service.Recommender
	Mailer      service.VerificationSender
	Now         func() time.Time
}
