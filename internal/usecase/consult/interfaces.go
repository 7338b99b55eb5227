package consult

import (
	"context"

	"github.com/dermocheck/backend/internal/entity"
)

type Generator interface {
	Generate(ctx context.Context, hist []entity.Turn, newText string, images []entity.InlineImage) (string, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, clientID string) (entity.SessionProfile, error)
	SetProfile(ctx context.Context, clientID string, profile entity.SessionProfile) error
	DeleteProfile(ctx context.Context, clientID string) error
}
