package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
	"github.com/cedricworldwide/CuriosityQuest/internal/models"
)

// MemoryStore implements Users with a mutex-guarded in-process map.
// State lives for the process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryStore creates an empty in-memory user store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
	}
}

// Create registers a new user keyed by email
func (s *MemoryStore) Create(ctx context.Context, email, password, displayName string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, ErrAlreadyExists
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayNameOrDefault(email, displayName),
		Points:       0,
		Badges:       []string{},
		CreatedAt:    time.Now().UTC(),
	}
	s.users[email] = user

	return user.Clone(), nil
}

// Authenticate validates credentials against the stored hash
func (s *MemoryStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.RLock()
	user, ok := s.users[email]
	s.mu.RUnlock()

	if !ok || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user.Clone(), nil
}

// Get returns the user for an email
func (s *MemoryStore) Get(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return user.Clone(), nil
}

// Reward applies a points/badge mutation in a single critical section
func (s *MemoryStore) Reward(ctx context.Context, email string, points *int, badge string) (*models.RewardResult, error) {
	if points != nil && *points < 0 {
		return nil, ErrNegativePoints
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}

	if points != nil {
		user.Points += *points
	}
	user.Badges = appendBadge(user.Badges, badge)

	return &models.RewardResult{
		Points: user.Points,
		Badges: cloneBadges(user.Badges),
	}, nil
}

// Ping always succeeds for the in-memory store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
