package domain

import "time"

// Account represents a registered user in the system
type Account struct {
	ID           string        `json:"_id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	ActiveToken  string        `json:"-"`
	OTP          *OTPChallenge `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// OTPChallenge is a pending password reset code
type OTPChallenge struct {
	Code      int
	ExpiresAt time.Time
}

// Expired reports whether the challenge can no longer be consumed at now
func (o *OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// TokenEnvelope is returned to clients on login and refresh
type TokenEnvelope struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	Subject   string
	Issuer    string
	IssuedAt  int64
	ExpiresAt int64
}

// Book is stored in the realtime key-value store
type Book struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
