package security

import (
	"time"

	"bitwise74/safeglow-api/pkg/util"
)

const (
	verificationTokenSize = 32
	VerificationTokenTTL  = time.Hour
)

// VerificationToken is an email verification secret. Only Hash is stored,
// Raw goes into the link mailed to the user.
type VerificationToken struct {
	Raw       string
	Hash      string
	ExpiresAt time.Time
}

func MakeVerificationToken(now time.Time) (*VerificationToken, error) {
	raw, err := util.GenerateToken(verificationTokenSize)
	if err != nil {
		return nil, err
	}

	return &VerificationToken{
		Raw:       raw,
		Hash:      util.HashToken(raw),
		ExpiresAt: now.Add(VerificationTokenTTL),
	}, nil
}
