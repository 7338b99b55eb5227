package directive

import (
	"strconv"
	"strings"

	"github.com/dermocheck/backend/internal/entity"
)

// Signal carries the parser side effects the controller reacts to
// beyond the directive itself.
type Signal struct {
	// FinalReport means the conversation reached its terminal state.
	FinalReport bool
	// MinorRestricted means the model emitted the minor-safety phrase
	// and the session must be forced out of the questionnaire.
	MinorRestricted bool
}

type token struct {
	marker bool
	// prose tokens
	text    string
	bracket bool // bracketed literal that is not a valid marker
	// marker tokens
	name string
	args []string
	spec markerSpec
}

// Parse turns one raw model response into a typed directive. It never
// fails: markup it cannot make sense of stays in the prose as literal
// text, and a response without any recognizable marker comes back as a
// prose-only directive of kind NONE.
func Parse(raw string) (entity.Directive, Signal) {
	var (
		sig        Signal
		photo      bool
		stage      entity.Stage
		choice     bool
		multi      bool
		freeText   *token
		ageCombo   *token
		ageDrop    *token
		prose      strings.Builder
		rawOptions []string
		option     *strings.Builder
	)

	flushOption := func() {
		if option != nil {
			rawOptions = append(rawOptions, strings.TrimSpace(option.String()))
		}
		option = &strings.Builder{}
	}

	for _, tok := range lex(raw) {
		if !tok.marker {
			switch {
			case option != nil && tok.bracket:
				// bracket noise inside an option segment is dropped
			case option != nil:
				option.WriteString(tok.text)
			default:
				prose.WriteString(tok.text)
			}
			continue
		}

		tok := tok
		switch tok.spec.class {
		case classFlag:
			if tok.spec.kind == entity.DirectiveFinalReport {
				sig.FinalReport = true
			} else {
				photo = true
			}
		case classStage:
			if s, ok := stageIDs[tok.args[0]]; ok && stage == entity.StageUnknown {
				stage = s
			}
		case classInput:
			switch tok.spec.kind {
			case entity.DirectiveFreeText:
				if freeText == nil {
					freeText = &tok
				}
			case entity.DirectiveAgeCombo:
				if ageCombo == nil {
					ageCombo = &tok
				}
			case entity.DirectiveAgeDropdown:
				if ageDrop == nil {
					ageDrop = &tok
				}
			}
		case classOption:
			flushOption()
			if tok.spec.kind == entity.DirectiveMultiChoice {
				multi = true
			} else {
				choice = true
			}
		}
	}
	flushOption()

	d := entity.Directive{Text: strings.TrimSpace(prose.String())}

	// One primary input kind governs the directive; terminal markers
	// outrank input markers, input markers outrank choice markers.
	switch {
	case sig.FinalReport:
		d.Kind = entity.DirectiveFinalReport
	case photo:
		d.Kind = entity.DirectivePhoto
	case ageDrop != nil:
		d.Kind = entity.DirectiveAgeDropdown
		d.MinAge, _ = strconv.Atoi(ageDrop.args[0])
		d.MaxAge, _ = strconv.Atoi(ageDrop.args[1])
	case ageCombo != nil:
		d.Kind = entity.DirectiveAgeCombo
		if len(ageCombo.args) > 0 {
			d.Placeholder = strings.TrimSpace(ageCombo.args[0])
		}
	case freeText != nil:
		d.Kind = entity.DirectiveFreeText
		if len(freeText.args) > 0 {
			d.Placeholder = strings.TrimSpace(freeText.args[0])
		}
		if freeText.name == "TEXT_INPUT_WITH_NONE" {
			d.HasNoneOption = true
			d.NoneLabel = DefaultSkipLabel
			if len(freeText.args) > 1 && strings.TrimSpace(freeText.args[1]) != "" {
				d.NoneLabel = strings.TrimSpace(freeText.args[1])
			}
		}
	case multi:
		d.Kind = entity.DirectiveMultiChoice
	case choice:
		d.Kind = entity.DirectiveChoice
	default:
		d.Kind = entity.DirectiveNone
	}

	if multi || choice {
		for _, opt := range rawOptions {
			if opt == "" {
				continue
			}
			if IsNoneEquivalent(opt) {
				// first none-equivalent wins as the dedicated button,
				// later ones are dropped either way
				if !d.HasNoneOption {
					d.HasNoneOption = true
					d.NoneLabel = opt
				}
				continue
			}
			d.Options = append(d.Options, opt)
		}
	}

	d.Stage = stage
	if d.Stage == entity.StageUnknown {
		d.Stage = detectStage(d)
	}
	if d.Stage == entity.StageCountry && d.Kind == entity.DirectiveFreeText {
		d.Kind = entity.DirectiveCountry
	}

	sig.MinorRestricted = strings.Contains(raw, MinorRestrictionPhrase)

	return d, sig
}

// detectStage recovers the stage from the question wording when the
// model did not tag the turn explicitly.
func detectStage(d entity.Directive) entity.Stage {
	switch {
	case d.Kind == entity.DirectiveAgeDropdown:
		return entity.StageAdultAge
	case strings.Contains(d.Text, childAgeStagePhrase):
		return entity.StageChildAge
	case strings.Contains(d.Text, subjectStagePhrase):
		return entity.StageSubject
	case strings.Contains(d.Text, countryStagePhrase):
		return entity.StageCountry
	case strings.Contains(d.Text, durationStagePhrase):
		return entity.StageDuration
	default:
		return entity.StageUnknown
	}
}

// lex splits raw text into prose and marker tokens. A bracketed token
// whose name is outside the vocabulary, or whose parameters do not fit
// the marker's arity, is returned as literal prose.
func lex(raw string) []token {
	var tokens []token
	rest := raw
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], ']')
		if end < 0 {
			break
		}
		end += open

		if open > 0 {
			tokens = append(tokens, token{text: rest[:open]})
		}
		literal := rest[open : end+1]
		inner := rest[open+1 : end]
		rest = rest[end+1:]

		name, params := inner, ""
		if i := strings.IndexByte(inner, ':'); i >= 0 {
			name, params = inner[:i], inner[i+1:]
		}

		spec, ok := vocabulary[name]
		if !ok {
			tokens = append(tokens, token{text: literal, bracket: true})
			continue
		}

		var args []string
		if params != "" {
			if spec.maxArgs > 0 {
				args = strings.SplitN(params, ":", spec.maxArgs)
			} else {
				args = strings.Split(params, ":")
			}
		}
		if len(args) < spec.minArgs || len(args) > spec.maxArgs || !validArgs(name, args) {
			tokens = append(tokens, token{text: literal, bracket: true})
			continue
		}

		tokens = append(tokens, token{marker: true, name: name, args: args, spec: spec})
	}
	if rest != "" {
		tokens = append(tokens, token{text: rest})
	}
	return tokens
}

func validArgs(name string, args []string) bool {
	if name != "AGE_DROPDOWN" {
		return true
	}
	for _, a := range args {
		if _, err := strconv.Atoi(a); err != nil {
			return false
		}
	}
	return true
}
