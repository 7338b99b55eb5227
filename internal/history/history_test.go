package history

import (
	"errors"
	"testing"

	"github.com/dermocheck/backend/internal/entity"
)

func TestAppendAlternation(t *testing.T) {
	s := New()

	if err := s.Append(entity.NewModelTurn("hi")); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("first model turn: err = %v, want ErrInvalidParameter", err)
	}

	if err := s.Append(entity.NewUserTurn("start", nil)); err != nil {
		t.Fatalf("first user turn: %v", err)
	}
	if err := s.Append(entity.NewUserTurn("again", nil)); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("consecutive user turns: err = %v, want ErrInvalidParameter", err)
	}

	if err := s.Append(entity.NewModelTurn("q1")); err != nil {
		t.Fatalf("model turn: %v", err)
	}
	if err := s.Append(entity.NewUserTurn("a1", nil)); err != nil {
		t.Fatalf("user turn: %v", err)
	}

	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
}

func TestTruncateLastPair(t *testing.T) {
	s := New()
	mustAppend(t, s, entity.NewUserTurn("U0", nil))
	mustAppend(t, s, entity.NewModelTurn("M0"))
	mustAppend(t, s, entity.NewUserTurn("U1", nil))
	mustAppend(t, s, entity.NewModelTurn("M1"))

	s.TruncateLast(2)

	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	text, ok := s.LastModelText()
	if !ok || text != "M0" {
		t.Errorf("last model text = %q, %v; want M0", text, ok)
	}

	s.TruncateLast(5)
	if s.Len() != 0 {
		t.Errorf("len after over-truncation = %d, want 0", s.Len())
	}
}

func TestUserSteps(t *testing.T) {
	const opener = "Démarrer la consultation."

	s := New()
	if got := s.UserSteps(opener); got != 0 {
		t.Errorf("empty history: steps = %d, want 0", got)
	}

	mustAppend(t, s, entity.NewUserTurn(opener, nil))
	mustAppend(t, s, entity.NewModelTurn("q1"))
	if got := s.UserSteps(opener); got != 0 {
		t.Errorf("opener only: steps = %d, want 0", got)
	}

	mustAppend(t, s, entity.NewUserTurn("a1", nil))
	mustAppend(t, s, entity.NewModelTurn("q2"))
	mustAppend(t, s, entity.NewUserTurn("a2", nil))
	if got := s.UserSteps(opener); got != 2 {
		t.Errorf("steps = %d, want 2", got)
	}
}

func TestUserImageURIs(t *testing.T) {
	s := New()
	mustAppend(t, s, entity.NewUserTurn("start", nil))
	mustAppend(t, s, entity.NewModelTurn("send a photo"))
	mustAppend(t, s, entity.NewUserTurn("here", []entity.InlineImage{
		{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	}))

	uris := s.UserImageURIs()
	if len(uris) != 1 {
		t.Fatalf("got %d uris, want 1", len(uris))
	}
	if uris[0] != "data:image/png;base64,AQID" {
		t.Errorf("uri = %q", uris[0])
	}
}

func mustAppend(t *testing.T, s *Store, turn entity.Turn) {
	t.Helper()
	if err := s.Append(turn); err != nil {
		t.Fatalf("append: %v", err)
	}
}
