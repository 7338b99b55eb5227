package state

import (
	"context"
	"fmt"
	"time"
)

// Manager wraps the storage with the mutations the handlers need.
type Manager struct {
	storage Storage
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// GetOrCreate returns the chat state for a user, creating an empty one
// on first contact.
func (m *Manager) GetOrCreate(ctx context.Context, userID, chatID int64) (*ChatState, error) {
	st, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get chat state: %w", err)
	}
	if st == nil {
		st = &ChatState{
			UserID:    userID,
			ChatID:    chatID,
			CreatedAt: time.Now(),
		}
	}
	st.ChatID = chatID
	return st, nil
}

// Save persists the chat state.
func (m *Manager) Save(ctx context.Context, st *ChatState) error {
	st.UpdatedAt = time.Now()
	if err := m.storage.Set(ctx, st); err != nil {
		return fmt.Errorf("save chat state: %w", err)
	}
	return nil
}

// BindSession points the chat at a fresh consultation session and
// clears the per-question UI state.
func (m *Manager) BindSession(ctx context.Context, st *ChatState, sessionID string) error {
	st.SessionID = sessionID
	st.Options = nil
	st.NoneLabel = ""
	st.Selection = nil
	return m.Save(ctx, st)
}

// Delete forgets the chat entirely.
func (m *Manager) Delete(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete chat state: %w", err)
	}
	return nil
}
