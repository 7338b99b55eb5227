package consult

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/config"
	controller "github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/pkg/formatter"
)

// ConsultUsecase orchestrates consultations: it gates access through
// the session profile, keeps one turn controller per session in a TTL
// registry and exposes the report export. Conversations live only in
// memory and die with the session.
type ConsultUsecase struct {
	cfg         config.ConsultConfig
	sessions    *cache.Cache
	gen         Generator
	profileRepo ProfileRepository
	formatters  *formatter.Factory
	logger      *zap.Logger
}

func NewUsecase(
	cfg config.ConsultConfig,
	gen Generator,
	profileRepo ProfileRepository,
	logger *zap.Logger,
) *ConsultUsecase {
	return &ConsultUsecase{
		cfg:         cfg,
		sessions:    cache.New(cfg.SessionTTL, cfg.CleanupInterval),
		gen:         gen,
		profileRepo: profileRepo,
		formatters:  formatter.NewFactory(),
		logger:      logger,
	}
}

// StartConsultation opens a new session and obtains the first
// directive. Clients with a minor profile are refused; clients without
// a stored profile must choose one first.
func (uc *ConsultUsecase) StartConsultation(ctx context.Context, clientID string) (string, controller.Snapshot, error) {
	if err := uc.gateProfile(ctx, clientID); err != nil {
		return "", controller.Snapshot{}, err
	}

	sessionID := uuid.New().String()
	ctrl := controller.NewController(uc.gen)

	snap, err := ctrl.Start(ctx)
	if err != nil {
		// keep the session so the client can retry the opening turn
		uc.sessions.Set(sessionID, ctrl, cache.DefaultExpiration)
		return sessionID, snap, fmt.Errorf("start consultation: %w", err)
	}

	uc.sessions.Set(sessionID, ctrl, cache.DefaultExpiration)
	ctxzap.Info(ctx, "consultation started", zap.String("session_id", sessionID))

	return sessionID, snap, nil
}

// GetState returns the session snapshot.
func (uc *ConsultUsecase) GetState(ctx context.Context, sessionID string) (controller.Snapshot, error) {
	ctrl, err := uc.session(sessionID)
	if err != nil {
		return controller.Snapshot{}, err
	}
	return ctrl.State(), nil
}

// SubmitAnswer forwards one answer to the session controller.
func (uc *ConsultUsecase) SubmitAnswer(ctx context.Context, sessionID, text string, images []entity.InlineImage) (controller.Snapshot, error) {
	ctrl, err := uc.session(sessionID)
	if err != nil {
		return controller.Snapshot{}, err
	}

	snap, err := ctrl.SubmitAnswer(ctx, text, images)
	if err != nil {
		return snap, err
	}

	ctxzap.Info(ctx, "answer submitted",
		zap.String("session_id", sessionID),
		zap.Int("progress", snap.Progress),
		zap.String("phase", string(snap.Phase)),
	)
	return snap, nil
}

// Retry replays the last failed request of the session.
func (uc *ConsultUsecase) Retry(ctx context.Context, sessionID string) (controller.Snapshot, error) {
	ctrl, err := uc.session(sessionID)
	if err != nil {
		return controller.Snapshot{}, err
	}
	return ctrl.Retry(ctx)
}

// GoBack steps the session one question back.
func (uc *ConsultUsecase) GoBack(ctx context.Context, sessionID string) (controller.Snapshot, error) {
	ctrl, err := uc.session(sessionID)
	if err != nil {
		return controller.Snapshot{}, err
	}
	return ctrl.GoBack(ctx)
}

// Reset restarts the session from scratch.
func (uc *ConsultUsecase) Reset(ctx context.Context, sessionID string) (controller.Snapshot, error) {
	ctrl, err := uc.session(sessionID)
	if err != nil {
		return controller.Snapshot{}, err
	}
	return ctrl.Reset(ctx)
}

// ExportReport renders the final report in the requested format.
func (uc *ConsultUsecase) ExportReport(ctx context.Context, sessionID string, format entity.ReportFormat) (*entity.ReportFile, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	ctrl, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	report, err := ctrl.FinalReport()
	if err != nil {
		return nil, err
	}

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(report.Text)
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	ctxzap.Info(ctx, "report exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
	)

	return &entity.ReportFile{
		Data:        data,
		ContentType: f.ContentType(),
		Filename:    "rapport-dermocheck" + f.FileExtension(),
	}, nil
}

// SetProfile stores the client's adult/minor choice.
func (uc *ConsultUsecase) SetProfile(ctx context.Context, clientID string, profile entity.SessionProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := uc.profileRepo.SetProfile(ctx, clientID, profile); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	ctxzap.Info(ctx, "profile stored", zap.String("profile", string(profile)))
	return nil
}

// GetProfile reads the stored profile.
func (uc *ConsultUsecase) GetProfile(ctx context.Context, clientID string) (entity.SessionProfile, error) {
	return uc.profileRepo.GetProfile(ctx, clientID)
}

// DeleteProfile clears the stored profile so the client is asked again.
func (uc *ConsultUsecase) DeleteProfile(ctx context.Context, clientID string) error {
	if err := uc.profileRepo.DeleteProfile(ctx, clientID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (uc *ConsultUsecase) gateProfile(ctx context.Context, clientID string) error {
	profile, err := uc.profileRepo.GetProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			return entity.ErrProfileRequired
		}
		return fmt.Errorf("get profile: %w", err)
	}
	if profile == entity.ProfileMinor {
		return entity.ErrMinorRestricted
	}
	return nil
}

func (uc *ConsultUsecase) session(sessionID string) (*controller.Controller, error) {
	v, ok := uc.sessions.Get(sessionID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	// interacting with a session keeps it alive
	uc.sessions.Set(sessionID, v, cache.DefaultExpiration)
	return v.(*controller.Controller), nil
}
