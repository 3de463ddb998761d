package entity

import (
	"crypto/subtle"
	"time"
)

// VerificationCodeLength is the fixed length of an email verification code.
const VerificationCodeLength = 6

// VerificationChallenge is the live one-time verification code record for
// an email. At most one non-consumed challenge exists per email; issuing a
// new one replaces the previous challenge even if it has not expired.
type VerificationChallenge struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"consumed"`
}

// NewVerificationChallenge creates a challenge for email valid for ttl.
func NewVerificationChallenge(email, code string, ttl time.Duration) *VerificationChallenge {
	now := time.Now().UTC()
	return &VerificationChallenge{
		Email:     email,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		Consumed:  false,
	}
}

// IsExpired reports whether the challenge is past its TTL at the given time.
func (c *VerificationChallenge) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Matches compares the submitted code against the stored one in constant
// time. Length is checked first; subtle.ConstantTimeCompare requires equal
// lengths anyway, and the code charset/length is validated before this point.
func (c *VerificationChallenge) Matches(submitted string) bool {
	if len(submitted) != len(c.Code) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Code), []byte(submitted)) == 1
}

// Consume marks the challenge as used and clears the code so it can never
// validate again.
func (c *VerificationChallenge) Consume() {
	c.Consumed = true
	c.Code = ""
}
