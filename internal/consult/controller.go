package consult

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dermocheck/backend/internal/directive"
	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/history"
)

// Fallback age bounds when the model omits them from the dropdown
// marker.
const (
	defaultMinAge = 18
	defaultMaxAge = 120
)

// Generator is the text-generation collaborator. Every call is
// stateless: it receives the full history and the new user input and
// returns the raw model response.
type Generator interface {
	Generate(ctx context.Context, hist []entity.Turn, newText string, images []entity.InlineImage) (string, error)
}

// FailedAction remembers the exact payload of a failed dispatch so
// Retry can replay it unchanged.
type FailedAction struct {
	Text   string
	Images []entity.InlineImage
}

// Snapshot is the externally visible controller state.
type Snapshot struct {
	Phase           entity.ConsultPhase
	Directive       entity.Directive
	Subject         entity.ConsultationSubject
	PendingChoice   string
	Progress        int
	MinorRestricted bool
	ErrorMessage    string
	Retryable       bool
}

// Controller runs one consultation: it applies the local interception
// rules, drives the generate cycle and owns the history store. One
// controller per session; safe for concurrent use, but only one model
// request may be in flight at a time.
type Controller struct {
	mu  sync.Mutex
	gen Generator

	hist    *history.Store
	phase   entity.ConsultPhase
	active  entity.Directive
	subject entity.ConsultationSubject

	// pendingChoice holds the duration label awaiting its numeric
	// elaboration while the phase is AwaitingLocalInput.
	pendingChoice string

	failed     *FailedAction
	lastErr    error
	restricted bool

	// epoch guards against model responses resolving after a reset.
	epoch    uint64
	inFlight bool
}

func NewController(gen Generator) *Controller {
	return &Controller{
		gen:   gen,
		hist:  history.New(),
		phase: entity.PhaseIdle,
	}
}

// Start begins (or restarts) the consultation by dispatching the
// synthetic opening turn.
func (c *Controller) Start(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	c.epoch++
	c.hist.Reset()
	c.subject = entity.SubjectUnset
	c.active = entity.Directive{}
	c.pendingChoice = ""
	c.failed = nil
	c.lastErr = nil
	c.restricted = false
	c.mu.Unlock()

	return c.dispatch(ctx, OpeningPrompt, nil)
}

// Reset is Start under its public name: it discards everything and
// re-issues the opening turn. An in-flight request is not cancelled,
// but its result will be discarded.
func (c *Controller) Reset(ctx context.Context) (Snapshot, error) {
	return c.Start(ctx)
}

// SubmitAnswer validates the answer against the active directive,
// applies the interception rules and forwards it to the model.
func (c *Controller) SubmitAnswer(ctx context.Context, text string, images []entity.InlineImage) (Snapshot, error) {
	c.mu.Lock()

	if c.inFlight {
		return c.finishLocked(entity.ErrRequestInFlight)
	}
	if c.phase == entity.PhaseTerminal {
		return c.finishLocked(entity.ErrSessionTerminal)
	}

	if c.phase == entity.PhaseAwaitingLocalInput {
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n <= 0 {
			return c.finishLocked(entity.NewValidationError("Veuillez entrer un nombre valide (supérieur à 0)."))
		}
		text = fmt.Sprintf("%s: %d", c.pendingChoice, n)
		c.pendingChoice = ""
		c.phase = entity.PhaseIdle
	} else if err := c.interceptLocked(text); err != nil {
		return c.finishLocked(err)
	} else if c.phase == entity.PhaseAwaitingLocalInput {
		// the duration rule switched to the numeric follow-up instead
		// of dispatching
		return c.finishLocked(nil)
	}

	c.mu.Unlock()
	return c.dispatch(ctx, text, images)
}

// Retry replays the last failed payload unchanged.
func (c *Controller) Retry(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.inFlight {
		return c.finishLocked(entity.ErrRequestInFlight)
	}
	if c.failed == nil {
		return c.finishLocked(entity.ErrNoFailedAction)
	}
	action := *c.failed
	c.mu.Unlock()

	return c.dispatch(ctx, action.Text, action.Images)
}

// GoBack steps one question back. A pending numeric follow-up is simply
// cancelled; otherwise the last user+model pair is truncated and the
// previous directive re-derived. Going back past the first question
// restarts the consultation.
func (c *Controller) GoBack(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.inFlight {
		return c.finishLocked(entity.ErrRequestInFlight)
	}

	if c.phase == entity.PhaseAwaitingLocalInput {
		c.pendingChoice = ""
		c.lastErr = nil
		c.phase = entity.PhaseIdle
		return c.finishLocked(nil)
	}

	if c.hist.Len() <= 2 {
		c.mu.Unlock()
		return c.Start(ctx)
	}

	c.hist.TruncateLast(2)
	c.lastErr = nil
	c.failed = nil
	c.restricted = false

	text, ok := c.hist.LastModelText()
	if !ok {
		c.mu.Unlock()
		return c.Start(ctx)
	}

	d, _ := directive.Parse(text)
	c.active = d
	c.phase = entity.PhaseIdle
	if d.Stage == entity.StageSubject {
		c.subject = entity.SubjectUnset
	}
	return c.finishLocked(nil)
}

// finishLocked takes a snapshot, releases the lock and passes the
// error through.
func (c *Controller) finishLocked(err error) (Snapshot, error) {
	snap := c.snapshotLocked()
	c.mu.Unlock()
	return snap, err
}

// State returns the current snapshot.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subject returns the recorded consultation subject.
func (c *Controller) Subject() entity.ConsultationSubject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subject
}

// History returns a copy of the conversation log.
func (c *Controller) History() []entity.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.Turns()
}

// FinalReport returns the terminal directive once the consultation is
// over.
func (c *Controller) FinalReport() (entity.Directive, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != entity.PhaseTerminal || c.active.Kind != entity.DirectiveFinalReport {
		return entity.Directive{}, entity.ErrNoFinalReport
	}
	return c.active, nil
}

// interceptLocked applies the local rules that may reject or reshape an
// answer before it reaches the model. Caller holds the lock.
func (c *Controller) interceptLocked(text string) error {
	switch {
	case c.active.Stage == entity.StageSubject:
		switch text {
		case SubjectSelfAnswer:
			c.subject = entity.SubjectSelf
		case SubjectOtherAnswer:
			c.subject = entity.SubjectOther
		}

	case c.subject == entity.SubjectSelf && c.active.Kind == entity.DirectiveAgeDropdown:
		minAge, maxAge := c.active.MinAge, c.active.MaxAge
		if minAge == 0 && maxAge == 0 {
			minAge, maxAge = defaultMinAge, defaultMaxAge
		}
		age, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || age < minAge || age > maxAge {
			return entity.NewValidationError(
				"Veuillez indiquer un âge valide (nombre entier entre %d et %d).", minAge, maxAge)
		}

	case c.subject == entity.SubjectOther && c.active.Stage == entity.StageChildAge:
		if !strings.Contains(text, "ans") && !strings.Contains(text, "mois") && text != UnderOneMonth {
			return entity.NewValidationError("Veuillez indiquer un âge valide en années et/ou mois.")
		}

	case c.active.Stage == entity.StageDuration && c.active.Kind == entity.DirectiveChoice:
		if _, ok := durationElaborationOptions[text]; ok {
			c.pendingChoice = text
			c.phase = entity.PhaseAwaitingLocalInput
		}
	}
	return nil
}

// dispatch sends one user input to the model and commits the result.
// History is only mutated on success; a failure keeps the exact payload
// for Retry.
func (c *Controller) dispatch(ctx context.Context, text string, images []entity.InlineImage) (Snapshot, error) {
	c.mu.Lock()
	c.lastErr = nil
	c.failed = nil
	c.active = c.active.StripAffordances()
	c.phase = entity.PhaseAwaitingModel
	c.inFlight = true
	epoch := c.epoch
	turns := c.hist.Turns()
	c.mu.Unlock()

	raw, err := c.gen.Generate(ctx, turns, text, images)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		// superseded by a reset while in flight
		return c.snapshotLocked(), entity.ErrStaleResponse
	}
	c.inFlight = false

	if err != nil {
		c.phase = entity.PhaseError
		c.failed = &FailedAction{Text: text, Images: images}
		c.lastErr = err
		return c.snapshotLocked(), err
	}

	if appendErr := c.hist.Append(entity.NewUserTurn(text, images)); appendErr != nil {
		c.phase = entity.PhaseError
		c.lastErr = appendErr
		return c.snapshotLocked(), appendErr
	}
	if appendErr := c.hist.Append(entity.NewModelTurn(raw)); appendErr != nil {
		c.phase = entity.PhaseError
		c.lastErr = appendErr
		return c.snapshotLocked(), appendErr
	}

	d, sig := directive.Parse(raw)

	switch {
	case sig.MinorRestricted:
		c.restricted = true
		c.phase = entity.PhaseTerminal
	case sig.FinalReport:
		d.AttachedImageURLs = c.hist.UserImageURIs()
		c.phase = entity.PhaseTerminal
	default:
		c.phase = entity.PhaseIdle
	}
	c.active = d

	return c.snapshotLocked(), nil
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:           c.phase,
		Directive:       c.active,
		Subject:         c.subject,
		PendingChoice:   c.pendingChoice,
		Progress:        c.hist.UserSteps(OpeningPrompt),
		MinorRestricted: c.restricted,
	}
	if c.lastErr != nil {
		snap.ErrorMessage = errorMessage(c.lastErr)
		snap.Retryable = c.failed != nil
	}
	return snap
}

// errorMessage frames provider failures for the user. Transient
// failures were already retried by the connector, so both flavors get
// the same retry affordance, only the wording differs.
func errorMessage(err error) string {
	if entity.IsTransientProvider(err) {
		return "Le service est actuellement surchargé ou temporairement indisponible. Veuillez patienter quelques instants avant de réessayer."
	}
	return "Désolé, une erreur de communication inattendue s'est produite. Veuillez réessayer."
}
