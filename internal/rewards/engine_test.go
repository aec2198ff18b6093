package rewards

import (
	"context"
	"errors"
	"testing"

	"github.com/cedricworldwide/CuriosityQuest/internal/models"
	"github.com/cedricworldwide/CuriosityQuest/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, store.Users) {
	t.Helper()
	users := store.NewMemoryStore()
	if _, err := users.Create(context.Background(), "a@x.com", "p", ""); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return NewEngine(users, 50, "Curious Explorer"), users
}

func TestAwardBelowThreshold(t *testing.T) {
	engine, _ := newTestEngine(t)

	points := 10
	result, err := engine.Award(context.Background(), "a@x.com", &points, "")
	if err != nil {
		t.Fatalf("Award error: %v", err)
	}
	if result.Points != 10 {
		t.Errorf("expected 10 points, got %d", result.Points)
	}
	if len(result.Badges) != 0 {
		t.Errorf("expected no badges below threshold, got %v", result.Badges)
	}
}

func TestAwardCrossingThresholdGrantsBadge(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	points := 10
	var result *models.RewardResult
	for i := 0; i < 5; i++ {
		r, err := engine.Award(ctx, "a@x.com", &points, "")
		if err != nil {
			t.Fatalf("Award error: %v", err)
		}
		result = r
	}

	if result.Points != 50 {
		t.Errorf("expected 50 points, got %d", result.Points)
	}
	if len(result.Badges) != 1 || result.Badges[0] != "Curious Explorer" {
		t.Errorf("expected threshold badge to be granted server-side, got %v", result.Badges)
	}
}

func TestAwardPastThresholdDoesNotDuplicate(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	points := 60
	if _, err := engine.Award(ctx, "a@x.com", &points, ""); err != nil {
		t.Fatalf("Award error: %v", err)
	}

	more := 10
	result, err := engine.Award(ctx, "a@x.com", &more, "")
	if err != nil {
		t.Fatalf("Award error: %v", err)
	}
	if result.Points != 70 {
		t.Errorf("expected 70 points, got %d", result.Points)
	}
	if len(result.Badges) != 1 {
		t.Errorf("expected a single badge, got %v", result.Badges)
	}
}

func TestAwardRejectsNegativePoints(t *testing.T) {
	engine, users := newTestEngine(t)
	ctx := context.Background()

	up := 40
	if _, err := engine.Award(ctx, "a@x.com", &up, ""); err != nil {
		t.Fatalf("Award error: %v", err)
	}

	down := -25
	if _, err := engine.Award(ctx, "a@x.com", &down, ""); !errors.Is(err, store.ErrNegativePoints) {
		t.Fatalf("expected ErrNegativePoints, got %v", err)
	}

	user, err := users.Get(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if user.Points != 40 {
		t.Errorf("expected points unchanged at 40, got %d", user.Points)
	}
	if user.Points < 0 {
		t.Errorf("points dropped below zero: %d", user.Points)
	}
}

func TestAwardExplicitBadgeIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Award(ctx, "a@x.com", nil, "Star Gazer"); err != nil {
		t.Fatalf("Award error: %v", err)
	}
	result, err := engine.Award(ctx, "a@x.com", nil, "Star Gazer")
	if err != nil {
		t.Fatalf("Award error: %v", err)
	}
	if len(result.Badges) != 1 || result.Badges[0] != "Star Gazer" {
		t.Errorf("expected idempotent explicit grant, got %v", result.Badges)
	}
}
