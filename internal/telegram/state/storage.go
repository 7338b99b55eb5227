package state

import (
	"context"
	"sync"
	"time"
)

// ChatState maps one telegram user to their consultation session plus
// the UI state the inline keyboards need between updates.
type ChatState struct {
	UserID    int64  `json:"user_id"`
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id,omitempty"`

	// Options are the labels of the active directive, in display
	// order; callbacks reference them by index.
	Options   []string `json:"options,omitempty"`
	NoneLabel string   `json:"none_label,omitempty"`

	// Selection holds the toggled multi-choice labels.
	Selection []string `json:"selection,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage persists chat state between updates.
type Storage interface {
	Get(ctx context.Context, userID int64) (*ChatState, error)
	Set(ctx context.Context, state *ChatState) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStorage keeps chat state in memory. Consultations are
// in-memory anyway, so losing the mapping on restart loses nothing
// the backend still has.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[int64]*ChatState
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[int64]*ChatState)}
}

func (s *MemoryStorage) Get(_ context.Context, userID int64) (*ChatState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *MemoryStorage) Set(_ context.Context, state *ChatState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *state
	s.states[state.UserID] = &cp
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
	return nil
}
