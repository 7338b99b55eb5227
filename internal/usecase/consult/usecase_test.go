package consult

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/entity"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]entity.SessionProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]entity.SessionProfile)}
}

func (f *fakeProfiles) GetProfile(_ context.Context, clientID string) (entity.SessionProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[clientID]
	if !ok {
		return entity.ProfileUnset, entity.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SetProfile(_ context.Context, clientID string, profile entity.SessionProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[clientID] = profile
	return nil
}

func (f *fakeProfiles) DeleteProfile(_ context.Context, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, clientID)
	return nil
}

type queuedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
}

func (g *queuedGenerator) Generate(_ context.Context, _ []entity.Turn, _ string, _ []entity.InlineImage) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

func newTestUsecase(gen Generator, profiles ProfileRepository) *ConsultUsecase {
	cfg := config.ConsultConfig{
		SessionTTL:      time.Minute,
		CleanupInterval: time.Minute,
	}
	return NewUsecase(cfg, gen, profiles, zap.NewNop())
}

func TestStartConsultationRequiresProfile(t *testing.T) {
	uc := newTestUsecase(&queuedGenerator{}, newFakeProfiles())

	_, _, err := uc.StartConsultation(context.Background(), "client-1")
	if !errors.Is(err, entity.ErrProfileRequired) {
		t.Fatalf("err = %v, want ErrProfileRequired", err)
	}
}

func TestStartConsultationRefusesMinor(t *testing.T) {
	profiles := newFakeProfiles()
	uc := newTestUsecase(&queuedGenerator{}, profiles)

	if err := uc.SetProfile(context.Background(), "client-1", entity.ProfileMinor); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	_, _, err := uc.StartConsultation(context.Background(), "client-1")
	if !errors.Is(err, entity.ErrMinorRestricted) {
		t.Fatalf("err = %v, want ErrMinorRestricted", err)
	}
}

func TestStartConsultationAdult(t *testing.T) {
	profiles := newFakeProfiles()
	gen := &queuedGenerator{responses: []string{
		"[STAGE:subject] Pour qui faites-vous cette consultation ? [CHOIX] Moi-même | Une autre personne",
	}}
	uc := newTestUsecase(gen, profiles)

	if err := uc.SetProfile(context.Background(), "client-1", entity.ProfileAdult); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	sessionID, snap, err := uc.StartConsultation(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("StartConsultation: %v", err)
	}
	if sessionID == "" {
		t.Fatal("empty session id")
	}
	if snap.Directive.Kind != entity.DirectiveChoice {
		t.Fatalf("directive kind = %s, want CHOICE", snap.Directive.Kind)
	}

	got, err := uc.GetState(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if got.Directive.Text != snap.Directive.Text {
		t.Fatalf("GetState text = %q, want %q", got.Directive.Text, snap.Directive.Text)
	}
}

func TestFailedOpeningTurnKeepsSession(t *testing.T) {
	profiles := newFakeProfiles()
	gen := &queuedGenerator{err: errors.New("boom")}
	uc := newTestUsecase(gen, profiles)

	if err := uc.SetProfile(context.Background(), "client-1", entity.ProfileAdult); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	sessionID, _, err := uc.StartConsultation(context.Background(), "client-1")
	if err == nil {
		t.Fatal("want error from failed opening turn")
	}
	if sessionID == "" {
		t.Fatal("session id should be assigned even when the opening turn fails")
	}

	gen.mu.Lock()
	gen.err = nil
	gen.responses = []string{"Quel est le problème ? [TEXT_INPUT:Décrivez]"}
	gen.mu.Unlock()

	snap, err := uc.Retry(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if snap.Phase != entity.PhaseIdle {
		t.Fatalf("phase = %s, want IDLE", snap.Phase)
	}
}

func TestSessionNotFound(t *testing.T) {
	uc := newTestUsecase(&queuedGenerator{}, newFakeProfiles())

	if _, err := uc.GetState(context.Background(), "missing"); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("GetState err = %v, want ErrSessionNotFound", err)
	}
	if _, err := uc.SubmitAnswer(context.Background(), "missing", "x", nil); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("SubmitAnswer err = %v, want ErrSessionNotFound", err)
	}
	if _, err := uc.ExportReport(context.Background(), "missing", entity.FormatMarkdown); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("ExportReport err = %v, want ErrSessionNotFound", err)
	}
}

func TestExportReport(t *testing.T) {
	profiles := newFakeProfiles()
	gen := &queuedGenerator{responses: []string{
		"Pour qui ? [CHOIX] Moi-même | Une autre personne",
		"Synthèse de la consultation. [FINAL_REPORT]",
	}}
	uc := newTestUsecase(gen, profiles)

	if err := uc.SetProfile(context.Background(), "client-1", entity.ProfileAdult); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	sessionID, _, err := uc.StartConsultation(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("StartConsultation: %v", err)
	}

	// not terminal yet
	if _, err := uc.ExportReport(context.Background(), sessionID, entity.FormatMarkdown); !errors.Is(err, entity.ErrNoFinalReport) {
		t.Fatalf("early export err = %v, want ErrNoFinalReport", err)
	}

	snap, err := uc.SubmitAnswer(context.Background(), sessionID, "Moi-même", nil)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if snap.Phase != entity.PhaseTerminal {
		t.Fatalf("phase = %s, want TERMINAL", snap.Phase)
	}

	file, err := uc.ExportReport(context.Background(), sessionID, entity.FormatMarkdown)
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if file.ContentType != "text/markdown; charset=utf-8" {
		t.Fatalf("content type = %q", file.ContentType)
	}
	if file.Filename != "rapport-dermocheck.md" {
		t.Fatalf("filename = %q", file.Filename)
	}
	if !strings.Contains(string(file.Data), "Synthèse de la consultation.") {
		t.Fatalf("report body missing from %q", string(file.Data))
	}
	if !strings.Contains(string(file.Data), "# Rapport DermoCheck") {
		t.Fatalf("report title missing from %q", string(file.Data))
	}

	if _, err := uc.ExportReport(context.Background(), sessionID, entity.ReportFormat("xml")); err == nil {
		t.Fatal("want error for unknown format")
	}
}

func TestProfileLifecycle(t *testing.T) {
	profiles := newFakeProfiles()
	uc := newTestUsecase(&queuedGenerator{}, profiles)
	ctx := context.Background()

	if err := uc.SetProfile(ctx, "client-1", entity.SessionProfile("ROBOT")); err == nil {
		t.Fatal("want validation error for unknown profile")
	}

	if err := uc.SetProfile(ctx, "client-1", entity.ProfileAdult); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	got, err := uc.GetProfile(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != entity.ProfileAdult {
		t.Fatalf("profile = %s, want ADULT", got)
	}

	if err := uc.DeleteProfile(ctx, "client-1"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if _, err := uc.GetProfile(ctx, "client-1"); !errors.Is(err, entity.ErrProfileNotFound) {
		t.Fatalf("after delete err = %v, want ErrProfileNotFound", err)
	}
}
