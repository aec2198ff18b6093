package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
	"github.com/cedricworldwide/CuriosityQuest/internal/models"
)

const pgUniqueViolation = "23505"

// PostgresStore implements Users on a pgx connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MinConns     int32
	MaxLifetime  time.Duration
}

// NewPostgresStore creates a user store backed by PostgreSQL
func NewPostgresStore(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Create inserts a new user row; the unique index on email guards duplicates
func (s *PostgresStore) Create(ctx context.Context, email, password, displayName string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
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

	badgesJSON, err := json.Marshal(user.Badges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal badges: %w", err)
	}

	query := `
		INSERT INTO users (id, email, password_hash, display_name, points, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.Points,
		badgesJSON,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials against the stored hash
func (s *PostgresStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get retrieves a user by email
func (s *PostgresStore) Get(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, display_name, points, badges, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	var badgesJSON []byte

	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Points,
		&badgesJSON,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := json.Unmarshal(badgesJSON, &user.Badges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
	}
	if user.Badges == nil {
		user.Badges = []string{}
	}

	return &user, nil
}

// Reward applies the points/badge mutation in one transaction with the
// user row locked, so concurrent rewards cannot lose updates
func (s *PostgresStore) Reward(ctx context.Context, email string, points *int, badge string) (*models.RewardResult, error) {
	if points != nil && *points < 0 {
		return nil, ErrNegativePoints
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var currentPoints int
	var badgesJSON []byte

	err = tx.QueryRow(ctx,
		`SELECT points, badges FROM users WHERE email = $1 FOR UPDATE`,
		email,
	).Scan(&currentPoints, &badgesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user for reward: %w", err)
	}

	var badges []string
	if err := json.Unmarshal(badgesJSON, &badges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal badges: %w", err)
	}

	if points != nil {
		currentPoints += *points
	}
	badges = appendBadge(badges, badge)

	updatedJSON, err := json.Marshal(badges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal badges: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET points = $1, badges = $2 WHERE email = $3`,
		currentPoints, updatedJSON, email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reward: %w", err)
	}

	return &models.RewardResult{
		Points: currentPoints,
		Badges: cloneBadges(badges),
	}, nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
