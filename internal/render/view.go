package render

import "github.com/dermocheck/backend/internal/entity"

// AffordanceKind names the single primary input a view presents.
type AffordanceKind string

const (
	AffordanceNone        AffordanceKind = "NONE"
	AffordanceButtons     AffordanceKind = "BUTTONS"
	AffordanceMultiSelect AffordanceKind = "MULTI_SELECT"
	AffordanceTextField   AffordanceKind = "TEXT_FIELD"
	AffordanceNumberField AffordanceKind = "NUMBER_FIELD"
	AffordanceAgeDropdown AffordanceKind = "AGE_DROPDOWN"
	AffordanceAgeCombo    AffordanceKind = "AGE_COMBO"
	AffordanceCountry     AffordanceKind = "COUNTRY"
	AffordancePhoto       AffordanceKind = "PHOTO"
	AffordanceReport      AffordanceKind = "REPORT"
)

// View is the renderer output: one primary affordance for the active
// directive, plus the dedicated none button when the directive carries
// one and the affordance does not already imply it.
type View struct {
	Kind   AffordanceKind `json:"kind"`
	Prompt string         `json:"prompt"`

	Options   []string `json:"options,omitempty"`
	NoneLabel string   `json:"none_label,omitempty"`

	Placeholder string `json:"placeholder,omitempty"`

	MinAge int `json:"min_age,omitempty"`
	MaxAge int `json:"max_age,omitempty"`

	// Countries fills the country picker.
	Countries []string `json:"countries,omitempty"`

	// PendingChoice is the duration label a numeric follow-up refers to.
	PendingChoice string `json:"pending_choice,omitempty"`

	// Images are the data URIs shown with the final report.
	Images []string `json:"images,omitempty"`
}

// Build maps the active directive to its view. A non-empty
// pendingChoice overrides the directive: the user still owes the
// numeric elaboration of that choice.
func Build(d entity.Directive, pendingChoice string) View {
	if pendingChoice != "" {
		return View{
			Kind:          AffordanceNumberField,
			Prompt:        d.Text,
			PendingChoice: pendingChoice,
		}
	}

	v := View{Prompt: d.Text}

	switch d.Kind {
	case entity.DirectiveChoice:
		v.Kind = AffordanceButtons
		v.Options = d.Options
	case entity.DirectiveMultiChoice:
		v.Kind = AffordanceMultiSelect
		v.Options = d.Options
	case entity.DirectiveFreeText:
		v.Kind = AffordanceTextField
		v.Placeholder = d.Placeholder
	case entity.DirectiveAgeDropdown:
		v.Kind = AffordanceAgeDropdown
		v.MinAge = d.MinAge
		v.MaxAge = d.MaxAge
	case entity.DirectiveAgeCombo:
		v.Kind = AffordanceAgeCombo
		v.Placeholder = d.Placeholder
	case entity.DirectiveCountry:
		v.Kind = AffordanceCountry
		v.Countries = Countries()
	case entity.DirectivePhoto:
		v.Kind = AffordancePhoto
	case entity.DirectiveFinalReport:
		v.Kind = AffordanceReport
		v.Images = d.AttachedImageURLs
	default:
		v.Kind = AffordanceNone
	}

	// Pickers and terminal affordances never show a none button even
	// if the parse carried one.
	if d.HasNoneOption {
		switch v.Kind {
		case AffordanceButtons, AffordanceMultiSelect, AffordanceTextField:
			v.NoneLabel = d.NoneLabel
		}
	}

	return v
}
