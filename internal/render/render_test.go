package render

import (
	"reflect"
	"testing"

	"github.com/dermocheck/backend/internal/entity"
)

func TestBuildAffordances(t *testing.T) {
	tests := []struct {
		name string
		d    entity.Directive
		want AffordanceKind
	}{
		{"prose only", entity.Directive{Kind: entity.DirectiveNone}, AffordanceNone},
		{"choice", entity.Directive{Kind: entity.DirectiveChoice, Options: []string{"A"}}, AffordanceButtons},
		{"multi choice", entity.Directive{Kind: entity.DirectiveMultiChoice, Options: []string{"A"}}, AffordanceMultiSelect},
		{"free text", entity.Directive{Kind: entity.DirectiveFreeText}, AffordanceTextField},
		{"age dropdown", entity.Directive{Kind: entity.DirectiveAgeDropdown, MinAge: 18, MaxAge: 120}, AffordanceAgeDropdown},
		{"age combo", entity.Directive{Kind: entity.DirectiveAgeCombo}, AffordanceAgeCombo},
		{"country", entity.Directive{Kind: entity.DirectiveCountry}, AffordanceCountry},
		{"photo", entity.Directive{Kind: entity.DirectivePhoto}, AffordancePhoto},
		{"final report", entity.Directive{Kind: entity.DirectiveFinalReport}, AffordanceReport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Build(tt.d, "")
			if v.Kind != tt.want {
				t.Errorf("kind = %s, want %s", v.Kind, tt.want)
			}
		})
	}
}

func TestBuildNumericFollowUpOverride(t *testing.T) {
	d := entity.Directive{Kind: entity.DirectiveChoice, Text: "Depuis combien de temps ?", Options: []string{"Quelques jours"}}

	v := Build(d, "Quelques jours")

	if v.Kind != AffordanceNumberField {
		t.Fatalf("kind = %s, want NUMBER_FIELD", v.Kind)
	}
	if v.PendingChoice != "Quelques jours" {
		t.Errorf("pending choice = %q", v.PendingChoice)
	}
	if len(v.Options) != 0 {
		t.Errorf("options leaked into the follow-up view: %v", v.Options)
	}
}

func TestBuildNoneButton(t *testing.T) {
	withNone := entity.Directive{
		Kind: entity.DirectiveMultiChoice, Options: []string{"A"},
		HasNoneOption: true, NoneLabel: "Aucun",
	}
	if v := Build(withNone, ""); v.NoneLabel != "Aucun" {
		t.Errorf("none label = %q, want Aucun", v.NoneLabel)
	}

	// an age picker already implies a complete answer, no none button
	agePicker := entity.Directive{
		Kind: entity.DirectiveAgeDropdown, MinAge: 18, MaxAge: 120,
		HasNoneOption: true, NoneLabel: "Aucun",
	}
	if v := Build(agePicker, ""); v.NoneLabel != "" {
		t.Errorf("age picker none label = %q, want empty", v.NoneLabel)
	}
}

func TestBuildCountryListPopulated(t *testing.T) {
	v := Build(entity.Directive{Kind: entity.DirectiveCountry}, "")
	if len(v.Countries) == 0 {
		t.Fatal("country picker has no entries")
	}
	if v.Countries[0] != "France" {
		t.Errorf("first country = %q, want France", v.Countries[0])
	}
}

func TestSelectionMutualExclusion(t *testing.T) {
	t.Run("none then regular", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("Aucun symptôme notable")
		s.Toggle("Démangeaisons")
		if got := s.Selected(); !reflect.DeepEqual(got, []string{"Démangeaisons"}) {
			t.Errorf("selected = %v, want [Démangeaisons]", got)
		}
	})

	t.Run("regular then none", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("Démangeaisons")
		s.Toggle("Aucun symptôme notable")
		if got := s.Selected(); !reflect.DeepEqual(got, []string{"Aucun symptôme notable"}) {
			t.Errorf("selected = %v, want [Aucun symptôme notable]", got)
		}
	})

	t.Run("toggle off", func(t *testing.T) {
		s := NewSelection()
		s.Toggle("Douleur")
		s.Toggle("Douleur")
		if got := s.Selected(); len(got) != 0 {
			t.Errorf("selected = %v, want empty", got)
		}
	})
}

func TestSelectionSubmit(t *testing.T) {
	s := NewSelection()

	if _, err := s.Submit(); !entity.IsValidation(err) {
		t.Errorf("empty submit: err = %v, want validation error", err)
	}

	s.Toggle("Démangeaisons")
	s.Toggle("Brûlure")
	got, err := s.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got != "Démangeaisons, Brûlure" {
		t.Errorf("submit = %q", got)
	}
}
