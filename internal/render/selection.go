package render

import (
	"strings"

	"github.com/dermocheck/backend/internal/directive"
	"github.com/dermocheck/backend/internal/entity"
)

// submitDelimiter joins the selected labels into the outgoing answer.
const submitDelimiter = ", "

// Selection is the multi-choice selection set. None-equivalent options
// are mutually exclusive with everything else: picking one clears the
// rest, and picking a regular option clears any none-equivalent one.
type Selection struct {
	items []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Toggle flips one option in or out of the set, applying the mutual
// exclusion rule.
func (s *Selection) Toggle(option string) {
	if s.has(option) {
		s.remove(option)
		return
	}

	if directive.IsNoneEquivalent(option) {
		s.items = []string{option}
		return
	}

	kept := s.items[:0]
	for _, it := range s.items {
		if !directive.IsNoneEquivalent(it) {
			kept = append(kept, it)
		}
	}
	s.items = append(kept, option)
}

// Selected returns the current set in selection order.
func (s *Selection) Selected() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection) Clear() {
	s.items = s.items[:0]
}

// Submit joins the selection into one outgoing answer. At least one
// option must be selected.
func (s *Selection) Submit() (string, error) {
	if len(s.items) == 0 {
		return "", entity.NewValidationError("Veuillez sélectionner au moins une option.")
	}
	return strings.Join(s.items, submitDelimiter), nil
}

func (s *Selection) has(option string) bool {
	for _, it := range s.items {
		if it == option {
			return true
		}
	}
	return false
}

func (s *Selection) remove(option string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it != option {
			kept = append(kept, it)
		}
	}
	s.items = kept
}
