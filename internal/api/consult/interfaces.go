package consult

import (
	"context"

	controller "github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
)

type ConsultUsecase interface {
	StartConsultation(ctx context.Context, clientID string) (string, controller.Snapshot, error)
	GetState(ctx context.Context, sessionID string) (controller.Snapshot, error)
	SubmitAnswer(ctx context.Context, sessionID, text string, images []entity.InlineImage) (controller.Snapshot, error)
	Retry(ctx context.Context, sessionID string) (controller.Snapshot, error)
	GoBack(ctx context.Context, sessionID string) (controller.Snapshot, error)
	Reset(ctx context.Context, sessionID string) (controller.Snapshot, error)
	ExportReport(ctx context.Context, sessionID string, format entity.ReportFormat) (*entity.ReportFile, error)
}
