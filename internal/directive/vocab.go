package directive

import "github.com/dermocheck/backend/internal/entity"

// markerClass tells the builder how a marker shapes the directive.
type markerClass int

const (
	classFlag   markerClass = iota // standalone flag, no parameters
	classInput                     // governs the primary input kind
	classOption                    // followed by one option string
	classStage                     // carries the stage identifier
)

// markerSpec is one entry of the marker vocabulary: name, parameter
// arity bounds and the directive kind the marker maps to.
type markerSpec struct {
	class   markerClass
	minArgs int
	maxArgs int
	kind    entity.DirectiveKind
}

// vocabulary is the closed marker set of the consultation protocol.
// Bracketed tokens with any other name are not markers and stay in the
// prose untouched.
var vocabulary = map[string]markerSpec{
	"PHOTO_REQUEST":        {class: classFlag, kind: entity.DirectivePhoto},
	"FINAL_REPORT":         {class: classFlag, kind: entity.DirectiveFinalReport},
	"TEXT_INPUT":           {class: classInput, maxArgs: 1, kind: entity.DirectiveFreeText},
	"TEXT_INPUT_WITH_NONE": {class: classInput, maxArgs: 2, kind: entity.DirectiveFreeText},
	"COMBO_INPUT":          {class: classInput, maxArgs: 1, kind: entity.DirectiveAgeCombo},
	"AGE_DROPDOWN":         {class: classInput, minArgs: 2, maxArgs: 2, kind: entity.DirectiveAgeDropdown},
	"CHOIX":                {class: classOption, kind: entity.DirectiveChoice},
	"MULTI_CHOIX":          {class: classOption, kind: entity.DirectiveMultiChoice},
	"STAGE":                {class: classStage, minArgs: 1, maxArgs: 1},
}

// DefaultSkipLabel names the skip button of a free-text question whose
// marker did not carry its own label.
const DefaultSkipLabel = "Ignorer cette étape"

// noneEquivalents is the closed set of option phrases rendered as a
// dedicated none button instead of a regular option.
var noneEquivalents = map[string]struct{}{
	"Je ne sais pas":         {},
	"Aucun symptôme notable": {},
	"Aucun antécédent":       {},
	"Aucun":                  {},
	"Aucun de ces facteurs":  {},
	"Ignorer":                {},
}

// IsNoneEquivalent reports whether an option phrase means "none/skip/
// unknown" and should be treated as the dedicated none option.
func IsNoneEquivalent(option string) bool {
	_, ok := noneEquivalents[option]
	return ok
}

// stageIDs maps [STAGE:...] identifiers to stages. Untagged model
// output falls back to prose matching, see detectStage.
var stageIDs = map[string]entity.Stage{
	"subject":   entity.StageSubject,
	"age_adult": entity.StageAdultAge,
	"age_child": entity.StageChildAge,
	"country":   entity.StageCountry,
	"duration":  entity.StageDuration,
}

// Prose the stage fallback keys on. The model script words its
// questions exactly like this, so substring matching is stable enough
// as a fallback, though the explicit stage tag is preferred.
const (
	subjectStagePhrase  = "Cette auto-analyse concerne"
	childAgeStagePhrase = "Quel est son âge"
	countryStagePhrase  = "Dans quel pays résidez-vous"
	durationStagePhrase = "Depuis combien de temps la lésion est apparue"
)

// MinorRestrictionPhrase is the hard-coded safety sentence the model
// emits when the conversation reveals an unaccompanied minor.
const MinorRestrictionPhrase = "⚠️ Cette application n’est pas destinée aux mineurs non accompagnés."
