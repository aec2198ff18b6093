package rewards

import (
	"context"

	"github.com/cedricworldwide/CuriosityQuest/internal/models"
	"github.com/cedricworldwide/CuriosityQuest/internal/store"
)

// Engine applies reward mutations and enforces the badge-threshold rule
// server-side: once cumulative points reach the threshold, the threshold
// badge is granted in the same call instead of trusting clients to ask
// for it.
type Engine struct {
	users           store.Users
	thresholdPoints int
	thresholdBadge  string
}

// NewEngine creates a reward engine over a user store
func NewEngine(users store.Users, thresholdPoints int, thresholdBadge string) *Engine {
	return &Engine{
		users:           users,
		thresholdPoints: thresholdPoints,
		thresholdBadge:  thresholdBadge,
	}
}

// Award adds points and/or a badge to the user and returns the updated
// totals. Badge grants are idempotent; points only ever increase.
func (e *Engine) Award(ctx context.Context, email string, points *int, badge string) (*models.RewardResult, error) {
	result, err := e.users.Reward(ctx, email, points, badge)
	if err != nil {
		return nil, err
	}

	if e.thresholdBadge != "" && result.Points >= e.thresholdPoints && !holdsBadge(result.Badges, e.thresholdBadge) {
		result, err = e.users.Reward(ctx, email, nil, e.thresholdBadge)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func holdsBadge(badges []string, badge string) bool {
	for _, b := range badges {
		if b == badge {
			return true
		}
	}
	return false
}
