package directive

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dermocheck/backend/internal/entity"
)

func TestParsePlainProse(t *testing.T) {
	raw := "  Merci pour votre réponse. Passons à la suite.  "

	d, sig := Parse(raw)

	if d.Kind != entity.DirectiveNone {
		t.Errorf("kind = %s, want NONE", d.Kind)
	}
	if d.Text != strings.TrimSpace(raw) {
		t.Errorf("text = %q, want trimmed input", d.Text)
	}
	if sig.FinalReport || sig.MinorRestricted {
		t.Errorf("unexpected signal: %+v", sig)
	}
}

func TestParseChoiceOrdering(t *testing.T) {
	d, _ := Parse("Q?[CHOIX]A[CHOIX]B[CHOIX]C")

	if d.Kind != entity.DirectiveChoice {
		t.Fatalf("kind = %s, want CHOICE", d.Kind)
	}
	if d.Text != "Q?" {
		t.Errorf("text = %q, want %q", d.Text, "Q?")
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(d.Options, want) {
		t.Errorf("options = %v, want %v", d.Options, want)
	}
}

func TestParseNoneExtraction(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		options   []string
		hasNone   bool
		noneLabel string
	}{
		{
			name:      "none option extracted",
			raw:       "Des antécédents ?[CHOIX]Eczéma[CHOIX]Aucun[CHOIX]Psoriasis",
			options:   []string{"Eczéma", "Psoriasis"},
			hasNone:   true,
			noneLabel: "Aucun",
		},
		{
			name:    "no none option",
			raw:     "Q?[CHOIX]A[CHOIX]B",
			options: []string{"A", "B"},
		},
		{
			name:      "first none equivalent wins",
			raw:       "Q?[CHOIX]Aucun[CHOIX]Je ne sais pas[CHOIX]A",
			options:   []string{"A"},
			hasNone:   true,
			noneLabel: "Aucun",
		},
		{
			name:      "only a none option",
			raw:       "Q?[CHOIX]Je ne sais pas",
			hasNone:   true,
			noneLabel: "Je ne sais pas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Parse(tt.raw)
			if !reflect.DeepEqual(d.Options, tt.options) {
				t.Errorf("options = %v, want %v", d.Options, tt.options)
			}
			if d.HasNoneOption != tt.hasNone {
				t.Errorf("hasNoneOption = %v, want %v", d.HasNoneOption, tt.hasNone)
			}
			if d.NoneLabel != tt.noneLabel {
				t.Errorf("noneLabel = %q, want %q", d.NoneLabel, tt.noneLabel)
			}
		})
	}
}

func TestParseMultiChoice(t *testing.T) {
	d, _ := Parse("Des symptômes ?[MULTI_CHOIX]Démangeaisons[MULTI_CHOIX]Douleur[MULTI_CHOIX]Aucun symptôme notable")

	if d.Kind != entity.DirectiveMultiChoice {
		t.Fatalf("kind = %s, want MULTI_CHOICE", d.Kind)
	}
	if want := []string{"Démangeaisons", "Douleur"}; !reflect.DeepEqual(d.Options, want) {
		t.Errorf("options = %v, want %v", d.Options, want)
	}
	if !d.HasNoneOption || d.NoneLabel != "Aucun symptôme notable" {
		t.Errorf("none = (%v, %q), want dedicated none option", d.HasNoneOption, d.NoneLabel)
	}
}

func TestParseTextInput(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		placeholder string
		hasNone     bool
		noneLabel   string
	}{
		{
			name: "bare text input",
			raw:  "Décrivez la lésion. [TEXT_INPUT]",
		},
		{
			name:        "with placeholder",
			raw:         "Décrivez la lésion. [TEXT_INPUT:Votre description]",
			placeholder: "Votre description",
		},
		{
			name:      "with none default label",
			raw:       "Autre chose à signaler ? [TEXT_INPUT_WITH_NONE]",
			hasNone:   true,
			noneLabel: DefaultSkipLabel,
		},
		{
			name:        "with none custom label",
			raw:         "Autre chose ? [TEXT_INPUT_WITH_NONE:Précisez:Rien à ajouter]",
			placeholder: "Précisez",
			hasNone:     true,
			noneLabel:   "Rien à ajouter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Parse(tt.raw)
			if d.Kind != entity.DirectiveFreeText {
				t.Fatalf("kind = %s, want FREE_TEXT", d.Kind)
			}
			if d.Placeholder != tt.placeholder {
				t.Errorf("placeholder = %q, want %q", d.Placeholder, tt.placeholder)
			}
			if d.HasNoneOption != tt.hasNone || d.NoneLabel != tt.noneLabel {
				t.Errorf("none = (%v, %q), want (%v, %q)", d.HasNoneOption, d.NoneLabel, tt.hasNone, tt.noneLabel)
			}
			if strings.Contains(d.Text, "[") {
				t.Errorf("text %q still contains markup", d.Text)
			}
		})
	}
}

func TestParseAgeDropdown(t *testing.T) {
	d, _ := Parse("Quel est votre âge ? [AGE_DROPDOWN:18:120]")

	if d.Kind != entity.DirectiveAgeDropdown {
		t.Fatalf("kind = %s, want AGE_DROPDOWN", d.Kind)
	}
	if d.MinAge != 18 || d.MaxAge != 120 {
		t.Errorf("bounds = [%d, %d], want [18, 120]", d.MinAge, d.MaxAge)
	}
	if d.Stage != entity.StageAdultAge {
		t.Errorf("stage = %q, want %q", d.Stage, entity.StageAdultAge)
	}
}

func TestParseAgeCombo(t *testing.T) {
	d, _ := Parse("Quel est son âge ? [COMBO_INPUT:Ex: 2 ans]")

	if d.Kind != entity.DirectiveAgeCombo {
		t.Fatalf("kind = %s, want AGE_COMBO", d.Kind)
	}
	if d.Stage != entity.StageChildAge {
		t.Errorf("stage = %q, want %q", d.Stage, entity.StageChildAge)
	}
}

func TestParseCountry(t *testing.T) {
	d, _ := Parse("Dans quel pays résidez-vous ? [TEXT_INPUT:Votre pays]")

	if d.Kind != entity.DirectiveCountry {
		t.Fatalf("kind = %s, want COUNTRY", d.Kind)
	}
	if d.Stage != entity.StageCountry {
		t.Errorf("stage = %q, want %q", d.Stage, entity.StageCountry)
	}
}

func TestParseTerminalSignals(t *testing.T) {
	t.Run("photo request", func(t *testing.T) {
		d, sig := Parse("Merci. Pouvez-vous envoyer une photo ? [PHOTO_REQUEST]")
		if d.Kind != entity.DirectivePhoto {
			t.Errorf("kind = %s, want PHOTO", d.Kind)
		}
		if sig.FinalReport {
			t.Error("photo request must not signal a final report")
		}
	})

	t.Run("final report", func(t *testing.T) {
		d, sig := Parse("[FINAL_REPORT] Voici votre rapport complet.")
		if d.Kind != entity.DirectiveFinalReport {
			t.Errorf("kind = %s, want FINAL_REPORT", d.Kind)
		}
		if !sig.FinalReport {
			t.Error("expected final report signal")
		}
		if d.Text != "Voici votre rapport complet." {
			t.Errorf("text = %q", d.Text)
		}
	})

	t.Run("minor restriction", func(t *testing.T) {
		_, sig := Parse(MinorRestrictionPhrase + " Consultez un adulte.")
		if !sig.MinorRestricted {
			t.Error("expected minor restriction signal")
		}
	})
}

func TestParseStageTag(t *testing.T) {
	d, _ := Parse("[STAGE:subject]Cette question concerne qui ?[CHOIX]Moi-même[CHOIX]Une autre personne")

	if d.Stage != entity.StageSubject {
		t.Errorf("stage = %q, want %q", d.Stage, entity.StageSubject)
	}
	if strings.Contains(d.Text, "STAGE") {
		t.Errorf("text %q still contains the stage tag", d.Text)
	}
}

func TestParseStageProseFallback(t *testing.T) {
	d, _ := Parse("Cette auto-analyse concerne :[CHOIX]Moi-même[CHOIX]Une autre personne")

	if d.Stage != entity.StageSubject {
		t.Errorf("stage = %q, want %q", d.Stage, entity.StageSubject)
	}
}

func TestParseMalformedMarkup(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		text string
	}{
		{
			name: "unknown marker stays literal",
			raw:  "Un détail [NOTE:interne] à garder.",
			text: "Un détail [NOTE:interne] à garder.",
		},
		{
			name: "non-numeric age bounds stay literal",
			raw:  "Votre âge ? [AGE_DROPDOWN:abc:120]",
			text: "Votre âge ? [AGE_DROPDOWN:abc:120]",
		},
		{
			name: "unclosed bracket stays literal",
			raw:  "Un texte avec [CHOIX tronqué",
			text: "Un texte avec [CHOIX tronqué",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := Parse(tt.raw)
			if d.Kind != entity.DirectiveNone {
				t.Errorf("kind = %s, want NONE", d.Kind)
			}
			if d.Text != tt.text {
				t.Errorf("text = %q, want %q", d.Text, tt.text)
			}
		})
	}
}

func TestParseStripsBracketNoiseFromOptions(t *testing.T) {
	d, _ := Parse("Q?[CHOIX]Option A [NOTE:brune][CHOIX]Option B")

	if want := []string{"Option A", "Option B"}; !reflect.DeepEqual(d.Options, want) {
		t.Errorf("options = %v, want %v", d.Options, want)
	}
}

func TestParseEmptyOptionSegmentsDropped(t *testing.T) {
	d, _ := Parse("Q?[CHOIX][CHOIX]A[CHOIX]B")

	if want := []string{"A", "B"}; !reflect.DeepEqual(d.Options, want) {
		t.Errorf("options = %v, want %v", d.Options, want)
	}
}
