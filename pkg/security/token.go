package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionTokenTTL is how long a login session stays valid. There is
	// no server-side session state, so a token can't be revoked earlier
	SessionTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL is how long a password reset token stays valid
	ResetTokenTTL = time.Hour
)

// ErrTokenInvalid covers malformed, unsigned, tampered and expired
// tokens alike. Callers must not be able to tell those cases apart
var ErrTokenInvalid = errors.New("token invalid")

// Claims are the identity fields embedded in every signed token.
// Reset tokens leave Username empty
type Claims struct {
	UserID   uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// TokenMaker signs and verifies bearer tokens with a process-wide
// secret injected once at construction
type TokenMaker struct {
	secret []byte
}

func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{secret: []byte(secret)}
}

// Issue produces a signed, self-contained token encoding c and an
// expiry derived from ttl
func (m *TokenMaker) Issue(c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(m.secret)
}

// Verify checks the signature and expiry of tok and returns the
// embedded claims. Every failure is ErrTokenInvalid
func (m *TokenMaker) Verify(tok string) (Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return Claims{}, ErrTokenInvalid
	}

	return *claims, nil
}
