package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any malformed, mis-signed, or expired token
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated email alongside the registered claims
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens. Verification is pure
// possession checking: it does not consult the user store, so callers
// must re-resolve the user after a successful Verify.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Tokens instance
type Option func(*Tokens)

// WithClock overrides the time source, letting tests pin expiry boundaries
func WithClock(now func() time.Time) Option {
	return func(t *Tokens) {
		t.now = now
	}
}

// NewTokens creates a token service with the given signing secret and validity
func NewTokens(secret string, ttl time.Duration, opts ...Option) *Tokens {
	t := &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Issue produces a signed token embedding the email with the configured expiry
func (t *Tokens) Issue(email string) (string, error) {
	now := t.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return token.SignedString(t.secret)
}

// Verify validates signature and expiry and returns the embedded email
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}
