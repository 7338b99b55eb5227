package consult

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dermocheck/backend/internal/entity"
)

const (
	subjectQuestion  = "Cette auto-analyse concerne :[CHOIX]Moi-même[CHOIX]Une autre personne"
	adultAgeQuestion = "Veuillez indiquer votre âge. [AGE_DROPDOWN:18:120]"
	childAgeQuestion = "Quel est son âge ? [COMBO_INPUT:Âge en années et mois]"
	durationQuestion = "Depuis combien de temps la lésion est apparue ?[CHOIX]Moins de deux jours[CHOIX]Quelques jours[CHOIX]Quelques semaines[CHOIX]Quelques mois[CHOIX]Plus d'un an"
)

type scripted struct {
	resp string
	err  error
	// wait, when set, holds the response until the channel is closed
	wait chan struct{}
}

type genCall struct {
	text    string
	images  []entity.InlineImage
	history []entity.Turn
}

type fakeGenerator struct {
	mu     sync.Mutex
	script []scripted
	calls  []genCall
}

func (g *fakeGenerator) Generate(_ context.Context, hist []entity.Turn, text string, images []entity.InlineImage) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, genCall{text: text, images: images, history: hist})
	if len(g.script) == 0 {
		g.mu.Unlock()
		return "", errors.New("no scripted response")
	}
	next := g.script[0]
	g.script = g.script[1:]
	g.mu.Unlock()

	if next.wait != nil {
		<-next.wait
	}
	return next.resp, next.err
}

func (g *fakeGenerator) lastCall(t *testing.T) genCall {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		t.Fatal("generator was never called")
	}
	return g.calls[len(g.calls)-1]
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func startedController(t *testing.T, gen *fakeGenerator) *Controller {
	t.Helper()
	c := NewController(gen)
	if _, err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c
}

func TestStartFlow(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{{resp: subjectQuestion}}}
	c := startedController(t, gen)

	call := gen.lastCall(t)
	if call.text != OpeningPrompt {
		t.Errorf("opening text = %q, want %q", call.text, OpeningPrompt)
	}
	if len(call.history) != 0 {
		t.Errorf("opening history len = %d, want 0", len(call.history))
	}

	snap := c.State()
	if snap.Phase != entity.PhaseIdle {
		t.Errorf("phase = %s, want IDLE", snap.Phase)
	}
	if snap.Directive.Stage != entity.StageSubject {
		t.Errorf("stage = %q, want subject", snap.Directive.Stage)
	}
	if snap.Progress != 0 {
		t.Errorf("progress = %d, want 0", snap.Progress)
	}
}

func TestSubjectAndAdultAgeValidation(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: adultAgeQuestion},
	}}
	c := startedController(t, gen)

	snap, err := c.SubmitAnswer(context.Background(), "Moi-même", nil)
	if err != nil {
		t.Fatalf("submit subject: %v", err)
	}
	if snap.Subject != entity.SubjectSelf {
		t.Errorf("subject = %q, want SELF", snap.Subject)
	}
	if snap.Directive.Kind != entity.DirectiveAgeDropdown {
		t.Fatalf("kind = %s, want AGE_DROPDOWN", snap.Directive.Kind)
	}
	if snap.Progress != 1 {
		t.Errorf("progress = %d, want 1", snap.Progress)
	}

	historyLen := len(c.History())
	calls := gen.callCount()

	for _, bad := range []string{"17", "121", "abc"} {
		_, err := c.SubmitAnswer(context.Background(), bad, nil)
		if !entity.IsValidation(err) {
			t.Errorf("age %q: err = %v, want validation error", bad, err)
		}
	}
	if len(c.History()) != historyLen {
		t.Errorf("history grew to %d on rejected answers", len(c.History()))
	}
	if gen.callCount() != calls {
		t.Error("rejected answers must not reach the model")
	}

	gen.mu.Lock()
	gen.script = []scripted{{resp: "Quel est votre sexe ?[CHOIX]Masculin[CHOIX]Féminin"}, {resp: "ok [TEXT_INPUT]"}}
	gen.mu.Unlock()

	for _, good := range []string{"18"} {
		if _, err := c.SubmitAnswer(context.Background(), good, nil); err != nil {
			t.Errorf("age %q: unexpected error %v", good, err)
		}
	}
}

func TestChildAgeValidation(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: childAgeQuestion},
		{resp: "Quel est son sexe ?[CHOIX]Masculin[CHOIX]Féminin"},
	}}
	c := startedController(t, gen)

	if _, err := c.SubmitAnswer(context.Background(), "Une autre personne", nil); err != nil {
		t.Fatalf("submit subject: %v", err)
	}

	if _, err := c.SubmitAnswer(context.Background(), "sept", nil); !entity.IsValidation(err) {
		t.Errorf("malformed child age: err = %v, want validation error", err)
	}

	if _, err := c.SubmitAnswer(context.Background(), "7 ans et 6 mois", nil); err != nil {
		t.Errorf("valid child age: %v", err)
	}
}

func TestChildAgeUnderOneMonth(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: childAgeQuestion},
		{resp: "suite [TEXT_INPUT]"},
	}}
	c := startedController(t, gen)

	if _, err := c.SubmitAnswer(context.Background(), "Une autre personne", nil); err != nil {
		t.Fatalf("submit subject: %v", err)
	}
	if _, err := c.SubmitAnswer(context.Background(), UnderOneMonth, nil); err != nil {
		t.Errorf("under one month sentinel rejected: %v", err)
	}
}

func TestDurationNumericFollowUp(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: durationQuestion},
		{resp: "suite [TEXT_INPUT]"},
	}}
	c := startedController(t, gen)

	calls := gen.callCount()
	snap, err := c.SubmitAnswer(context.Background(), "Quelques jours", nil)
	if err != nil {
		t.Fatalf("select duration: %v", err)
	}
	if snap.Phase != entity.PhaseAwaitingLocalInput {
		t.Fatalf("phase = %s, want AWAITING_LOCAL_INPUT", snap.Phase)
	}
	if snap.PendingChoice != "Quelques jours" {
		t.Errorf("pending choice = %q", snap.PendingChoice)
	}
	if gen.callCount() != calls {
		t.Error("selection must not reach the model before the number")
	}

	if _, err := c.SubmitAnswer(context.Background(), "0", nil); !entity.IsValidation(err) {
		t.Errorf("zero: err = %v, want validation error", err)
	}
	if _, err := c.SubmitAnswer(context.Background(), "cinq", nil); !entity.IsValidation(err) {
		t.Errorf("non-numeric: err = %v, want validation error", err)
	}

	if _, err := c.SubmitAnswer(context.Background(), "5", nil); err != nil {
		t.Fatalf("submit number: %v", err)
	}
	if got := gen.lastCall(t).text; got != "Quelques jours: 5" {
		t.Errorf("outgoing text = %q, want %q", got, "Quelques jours: 5")
	}
}

func TestDurationImmediateOption(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: durationQuestion},
		{resp: "suite [TEXT_INPUT]"},
	}}
	c := startedController(t, gen)

	snap, err := c.SubmitAnswer(context.Background(), "Moins de deux jours", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.Phase != entity.PhaseIdle {
		t.Errorf("phase = %s, want IDLE", snap.Phase)
	}
	if got := gen.lastCall(t).text; got != "Moins de deux jours" {
		t.Errorf("outgoing text = %q", got)
	}
}

func TestRetryReplaysExactPayload(t *testing.T) {
	img := entity.InlineImage{MIMEType: "image/jpeg", Data: []byte("photo")}
	transient := &entity.ProviderError{Transient: true, Err: errors.New("503")}
	gen := &fakeGenerator{script: []scripted{
		{resp: "Ajoutez une photo. [PHOTO_REQUEST]"},
		{err: transient},
		{resp: "suite [TEXT_INPUT]"},
	}}
	c := startedController(t, gen)

	snap, err := c.SubmitAnswer(context.Background(), PhotoSubmitText, []entity.InlineImage{img})
	if !errors.Is(err, transient) {
		t.Fatalf("submit err = %v, want scripted failure", err)
	}
	if snap.Phase != entity.PhaseError || !snap.Retryable {
		t.Errorf("snapshot = %+v, want retryable error phase", snap)
	}
	if len(c.History()) != 2 {
		t.Errorf("history len = %d after failure, want 2", len(c.History()))
	}

	snap, err = c.Retry(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	call := gen.lastCall(t)
	if call.text != PhotoSubmitText {
		t.Errorf("retried text = %q", call.text)
	}
	if len(call.images) != 1 || string(call.images[0].Data) != "photo" {
		t.Errorf("retried images = %v, want original attachment", call.images)
	}
	if snap.Phase != entity.PhaseIdle {
		t.Errorf("phase after retry = %s, want IDLE", snap.Phase)
	}
}

func TestRetryWithoutFailure(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{{resp: subjectQuestion}}}
	c := startedController(t, gen)

	if _, err := c.Retry(context.Background()); !errors.Is(err, entity.ErrNoFailedAction) {
		t.Errorf("err = %v, want ErrNoFailedAction", err)
	}
}

func TestGoBackRoundTrip(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: adultAgeQuestion},
	}}
	c := startedController(t, gen)

	if _, err := c.SubmitAnswer(context.Background(), "Moi-même", nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(c.History()) != 4 {
		t.Fatalf("history len = %d, want 4", len(c.History()))
	}

	snap, err := c.GoBack(context.Background())
	if err != nil {
		t.Fatalf("go back: %v", err)
	}
	if len(c.History()) != 2 {
		t.Errorf("history len = %d after back, want 2", len(c.History()))
	}
	if snap.Directive.Stage != entity.StageSubject {
		t.Errorf("stage = %q, want subject", snap.Directive.Stage)
	}
	if snap.Subject != entity.SubjectUnset {
		t.Errorf("subject = %q, want unset after returning to the subject question", snap.Subject)
	}

	// going back past the first question restarts the consultation
	gen.mu.Lock()
	gen.script = []scripted{{resp: subjectQuestion}}
	gen.mu.Unlock()

	if _, err := c.GoBack(context.Background()); err != nil {
		t.Fatalf("go back to restart: %v", err)
	}
	if got := gen.lastCall(t).text; got != OpeningPrompt {
		t.Errorf("restart text = %q, want opening prompt", got)
	}
	if len(c.History()) != 2 {
		t.Errorf("history len = %d after restart, want 2", len(c.History()))
	}
}

func TestGoBackCancelsFollowUp(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{{resp: durationQuestion}}}
	c := startedController(t, gen)

	if _, err := c.SubmitAnswer(context.Background(), "Quelques mois", nil); err != nil {
		t.Fatalf("select duration: %v", err)
	}
	historyLen := len(c.History())

	snap, err := c.GoBack(context.Background())
	if err != nil {
		t.Fatalf("go back: %v", err)
	}
	if snap.Phase != entity.PhaseIdle || snap.PendingChoice != "" {
		t.Errorf("snapshot = %+v, want cancelled follow-up", snap)
	}
	if len(c.History()) != historyLen {
		t.Errorf("history len changed from %d to %d", historyLen, len(c.History()))
	}
}

func TestFinalReportCollectsImages(t *testing.T) {
	img := entity.InlineImage{MIMEType: "image/png", Data: []byte{1, 2, 3}}
	gen := &fakeGenerator{script: []scripted{
		{resp: "Ajoutez une photo. [PHOTO_REQUEST]"},
		{resp: "[FINAL_REPORT] Voici votre rapport."},
	}}
	c := startedController(t, gen)

	snap, err := c.SubmitAnswer(context.Background(), PhotoSubmitText, []entity.InlineImage{img})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.Phase != entity.PhaseTerminal {
		t.Fatalf("phase = %s, want TERMINAL", snap.Phase)
	}
	if len(snap.Directive.AttachedImageURLs) != 1 {
		t.Fatalf("attached urls = %v, want one", snap.Directive.AttachedImageURLs)
	}

	report, err := c.FinalReport()
	if err != nil {
		t.Fatalf("final report: %v", err)
	}
	if report.Text != "Voici votre rapport." {
		t.Errorf("report text = %q", report.Text)
	}

	if _, err := c.SubmitAnswer(context.Background(), "encore", nil); !errors.Is(err, entity.ErrSessionTerminal) {
		t.Errorf("submit on terminal: err = %v, want ErrSessionTerminal", err)
	}
}

func TestMinorRestrictionSignal(t *testing.T) {
	gen := &fakeGenerator{script: []scripted{
		{resp: adultAgeQuestion},
		{resp: "⚠️ Cette application n’est pas destinée aux mineurs non accompagnés."},
	}}
	c := startedController(t, gen)

	snap, err := c.SubmitAnswer(context.Background(), "20", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !snap.MinorRestricted {
		t.Error("expected minor restriction flag")
	}
	if snap.Phase != entity.PhaseTerminal {
		t.Errorf("phase = %s, want TERMINAL", snap.Phase)
	}
}

func TestSingleRequestInFlight(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: adultAgeQuestion, wait: release},
	}}
	c := startedController(t, gen)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SubmitAnswer(context.Background(), "Moi-même", nil)
	}()

	for gen.callCount() < 2 {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.SubmitAnswer(context.Background(), "18", nil); !errors.Is(err, entity.ErrRequestInFlight) {
		t.Errorf("err = %v, want ErrRequestInFlight", err)
	}
	if _, err := c.GoBack(context.Background()); !errors.Is(err, entity.ErrRequestInFlight) {
		t.Errorf("go back err = %v, want ErrRequestInFlight", err)
	}

	close(release)
	<-done
}

func TestResetDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{script: []scripted{
		{resp: subjectQuestion},
		{resp: adultAgeQuestion, wait: release},
		{resp: subjectQuestion},
	}}
	c := startedController(t, gen)

	stale := make(chan error, 1)
	go func() {
		_, err := c.SubmitAnswer(context.Background(), "Moi-même", nil)
		stale <- err
	}()
	for gen.callCount() < 2 {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	close(release)
	if err := <-stale; !errors.Is(err, entity.ErrStaleResponse) {
		t.Errorf("stale submit err = %v, want ErrStaleResponse", err)
	}

	if got := len(c.History()); got != 2 {
		t.Errorf("history len = %d after reset, want 2", got)
	}
}
