// Package session tracks editing presence: which editors currently
// have which plan open. The web UI heartbeats its session while a plan
// is on screen; other clients read the plan's session list to show who
// else is there.
//
// # Architecture
//
// Sessions are small, expiring records keyed by session ID, with a
// per-plan index for the presence listing. Two backends implement the
// Store interface:
//   - MemoryStore: single-process servers and tests
//   - RedisStore: multi-instance deployments, using key TTLs so
//     abandoned sessions disappear without a reaper
//
// Expiration is enforced on read everywhere: an expired session is
// reported as ErrExpired (or filtered from listings) even if the
// backend has not physically removed it yet.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session exists but has exceeded its TTL.
	ErrExpired = errors.New("session expired")
)

// DefaultTTL is the presence lifetime without a heartbeat.
const DefaultTTL = 2 * time.Minute

// Session is one editor's presence on one plan.
type Session struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Editor    string    `json:"editor"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiration.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for presence storage backends.
type Store interface {
	// Get retrieves a session by ID. Returns ErrNotFound for missing
	// sessions and ErrExpired for expired ones.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session and indexes it under its plan.
	Set(ctx context.Context, s *Session) error

	// Touch extends a live session's expiration by ttl from now.
	Touch(ctx context.Context, id string, ttl time.Duration) error

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// ByPlan lists the live sessions on a plan.
	ByPlan(ctx context.Context, planID string) ([]*Session, error)

	// Cleanup removes expired sessions (a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error
}

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a session for an editor on a plan.
func New(planID, editor, color string, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        id,
		PlanID:    planID,
		Editor:    editor,
		Color:     color,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}
