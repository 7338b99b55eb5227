package history

import (
	"fmt"

	"github.com/dermocheck/backend/internal/entity"
)

// Store is the append-only conversation log. It is the single source of
// truth for session state: back navigation works by truncating the last
// user+model pair and re-deriving the directive, never by a separate
// undo stack. A Store belongs to exactly one controller and is not safe
// for concurrent use on its own.
type Store struct {
	turns []entity.Turn
}

func New() *Store {
	return &Store{}
}

// Append adds one turn. Roles must strictly alternate starting with a
// user turn.
func (s *Store) Append(turn entity.Turn) error {
	if len(s.turns) == 0 {
		if turn.Role != entity.RoleUser {
			return fmt.Errorf("%w: history must start with a user turn", entity.ErrInvalidParameter)
		}
	} else if s.turns[len(s.turns)-1].Role == turn.Role {
		return fmt.Errorf("%w: consecutive %s turns", entity.ErrInvalidParameter, turn.Role)
	}
	s.turns = append(s.turns, turn)
	return nil
}

// Turns returns a copy of the log in order.
func (s *Store) Turns() []entity.Turn {
	out := make([]entity.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Store) Len() int {
	return len(s.turns)
}

// Current returns the last turn.
func (s *Store) Current() (entity.Turn, bool) {
	if len(s.turns) == 0 {
		return entity.Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// LastModelText returns the text of the most recent model turn.
func (s *Store) LastModelText() (string, bool) {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == entity.RoleModel {
			return s.turns[i].Text(), true
		}
	}
	return "", false
}

// TruncateLast drops the last n turns. Back navigation always calls it
// with n=2, removing exactly one user+model pair.
func (s *Store) TruncateLast(n int) {
	if n >= len(s.turns) {
		s.turns = s.turns[:0]
		return
	}
	s.turns = s.turns[:len(s.turns)-n]
}

func (s *Store) Reset() {
	s.turns = s.turns[:0]
}

// UserSteps counts the user turns that carry answers, excluding the
// synthetic opening turn. It is the progress counter.
func (s *Store) UserSteps(openingPrompt string) int {
	steps := 0
	for _, t := range s.turns {
		if t.Role == entity.RoleUser && t.Text() != openingPrompt {
			steps++
		}
	}
	return steps
}

// UserImageURIs collects data URIs of every image attached to user
// turns, in conversation order. The final report displays them.
func (s *Store) UserImageURIs() []string {
	var uris []string
	for _, t := range s.turns {
		if t.Role != entity.RoleUser {
			continue
		}
		for _, img := range t.Images() {
			uris = append(uris, img.DataURI())
		}
	}
	return uris
}
