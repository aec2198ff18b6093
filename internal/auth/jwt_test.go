package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", 7*24*time.Hour)

	tok, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	email, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("email mismatch: got %q want %q", email, "a@x.com")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewTokens("right-secret", time.Hour).Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokens("wrong-secret", time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := tokens.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour

	now := issued
	tokens := NewTokens("secret", ttl, WithClock(func() time.Time { return now }))

	tok, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Strictly before expiry the token is accepted
	now = issued.Add(ttl - time.Second)
	if _, err := tokens.Verify(tok); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}

	// At expiry and after, it is rejected
	for _, offset := range []time.Duration{ttl, ttl + time.Second, ttl + 24*time.Hour} {
		now = issued.Add(offset)
		if _, err := tokens.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("offset %v: expected ErrInvalidToken, got %v", offset, err)
		}
	}
}
