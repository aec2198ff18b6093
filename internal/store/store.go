package store

import (
	"context"
	"errors"
	"strings"

	"github.com/cedricworldwide/CuriosityQuest/internal/models"
)

// Sentinel errors shared by all user store implementations
var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNegativePoints     = errors.New("points delta must not be negative")
)

// Users defines the interface for user persistence. Emails are the unique
// key, case-sensitive as stored, and immutable after creation.
type Users interface {
	// Create registers a new user with zero points and no badges.
	// Returns ErrAlreadyExists if the email is taken.
	Create(ctx context.Context, email, password, displayName string) (*models.User, error)

	// Authenticate returns the user when the password matches.
	// Returns ErrInvalidCredentials for unknown emails too.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// Get returns the user or ErrNotFound
	Get(ctx context.Context, email string) (*models.User, error)

	// Reward adds points (when non-nil) and appends the badge (when
	// non-empty and absent), returning the updated totals. Points only
	// ever increase; a negative delta is rejected with
	// ErrNegativePoints before any state changes.
	// Returns ErrNotFound for unknown emails.
	Reward(ctx context.Context, email string, points *int, badge string) (*models.RewardResult, error)

	// Ping checks backend connectivity
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}

// displayNameOrDefault falls back to the local part of the email
func displayNameOrDefault(email, displayName string) string {
	if displayName != "" {
		return displayName
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// cloneBadges copies a badge list, normalizing nil to an empty slice so
// the JSON rendering is always an array
func cloneBadges(badges []string) []string {
	out := append([]string(nil), badges...)
	if out == nil {
		out = []string{}
	}
	return out
}

// appendBadge appends a badge if non-empty and not already present
func appendBadge(badges []string, badge string) []string {
	if badge == "" {
		return badges
	}
	for _, b := range badges {
		if b == badge {
			return badges
		}
	}
	return append(badges, badge)
}
