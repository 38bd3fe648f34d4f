package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bitwise74/safeglow-api/internal/model"
)

// MemoryStore is an in-process UserStore. It enforces the same uniqueness
// rules as the database and is meant for tests and local experiments.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]*model.User
	byEmail    map[string]string
	byUsername map[string]string

	// PingErr is returned by Ping when set.
	PingErr error
}

var _ UserStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]*model.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (m *MemoryStore) get(id string, ok bool) (*model.User, error) {
	if !ok {
		return nil, ErrNotFound
	}

	u := *m.byID[id]
	return &u, nil
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[NormalizeEmail(email)]
	return m.get(id, ok)
}

func (m *MemoryStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[NormalizeUsername(username)]
	return m.get(id, ok)
}

func (m *MemoryStore) FindByVerificationHash(_ context.Context, hash string, now time.Time) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, u := range m.byID {
		if u.EmailVerificationTokenHash == nil || *u.EmailVerificationTokenHash != hash {
			continue
		}

		if u.EmailVerificationExpiresAt == nil || !u.EmailVerificationExpiresAt.After(now) {
			continue
		}

		return m.get(id, true)
	}

	return nil, ErrNotFound
}

func (m *MemoryStore) Create(_ context.Context, u *model.User) error {
	normalize(u)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}

	if u.Username != nil {
		if _, ok := m.byUsername[*u.Username]; ok {
			return ErrUsernameTaken
		}
	}

	if u.ID == "" {
		id, err := newID()
		if err != nil {
			return fmt.Errorf("failed to generate user ID, %w", err)
		}
		u.ID = id
	}

	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now

	stored := *u
	m.byID[u.ID] = &stored
	m.byEmail[u.Email] = u.ID
	if u.Username != nil {
		m.byUsername[*u.Username] = u.ID
	}

	return nil
}

func (m *MemoryStore) MarkVerified(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}

	u.EmailVerified = true
	u.EmailVerificationTokenHash = nil
	u.EmailVerificationExpiresAt = nil
	u.UpdatedAt = time.Now()

	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return m.PingErr
}
