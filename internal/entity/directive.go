package entity

type DirectiveKind string

const (
	// DirectiveNone means the model asked for nothing recognizable:
	// the prose is shown as-is with no input affordance.
	DirectiveNone            DirectiveKind = "NONE"
	DirectiveChoice          DirectiveKind = "CHOICE"
	DirectiveMultiChoice     DirectiveKind = "MULTI_CHOICE"
	DirectiveFreeText        DirectiveKind = "FREE_TEXT"
	DirectiveNumericFollowUp DirectiveKind = "NUMERIC_FOLLOW_UP"
	DirectiveAgeDropdown     DirectiveKind = "AGE_DROPDOWN"
	DirectiveAgeCombo        DirectiveKind = "AGE_COMBO"
	DirectiveCountry         DirectiveKind = "COUNTRY"
	DirectivePhoto           DirectiveKind = "PHOTO"
	DirectiveFinalReport     DirectiveKind = "FINAL_REPORT"
)

// Stage identifies the questionnaire step a model turn belongs to.
// It is read from an explicit [STAGE:...] tag when the model emits one,
// and recovered from the question prose otherwise.
type Stage string

const (
	StageUnknown  Stage = ""
	StageSubject  Stage = "subject"
	StageAdultAge Stage = "age_adult"
	StageChildAge Stage = "age_child"
	StageCountry  Stage = "country"
	StageDuration Stage = "duration"
)

// Directive is the parsed representation of the latest model turn.
// Exactly one directive is active per session; it is replaced wholesale
// on every successful turn.
type Directive struct {
	Kind  DirectiveKind `json:"kind"`
	Stage Stage         `json:"stage,omitempty"`

	// Text is the model's prose with all directive markup stripped.
	Text string `json:"text"`

	// Choice / MultiChoice.
	Options       []string `json:"options,omitempty"`
	HasNoneOption bool     `json:"has_none_option,omitempty"`
	NoneLabel     string   `json:"none_label,omitempty"`

	// FreeText / AgeCombo.
	Placeholder string `json:"placeholder,omitempty"`

	// AgeDropdown bounds, inclusive.
	MinAge int `json:"min_age,omitempty"`
	MaxAge int `json:"max_age,omitempty"`

	// NumericFollowUp: the choice label awaiting a numeric elaboration.
	// Synthesized locally, never parsed from the model.
	PrecedingChoiceLabel string `json:"preceding_choice_label,omitempty"`

	// FinalReport: data URIs of every image the user attached during
	// the consultation.
	AttachedImageURLs []string `json:"attached_image_urls,omitempty"`
}

// Interactive reports whether the directive still offers an input
// affordance. Cleared copies (see StripAffordances) are not interactive.
func (d Directive) Interactive() bool {
	return d.Kind != DirectiveNone && d.Kind != DirectiveFinalReport
}

// StripAffordances returns a prose-only copy of the directive so stale
// inputs cannot be double-submitted while a model request is in flight.
func (d Directive) StripAffordances() Directive {
	return Directive{Kind: DirectiveNone, Stage: d.Stage, Text: d.Text}
}
