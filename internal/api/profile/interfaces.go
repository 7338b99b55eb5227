package profile

import (
	"context"

	"github.com/dermocheck/backend/internal/entity"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, clientID string) (entity.SessionProfile, error)
	SetProfile(ctx context.Context, clientID string, profile entity.SessionProfile) error
	DeleteProfile(ctx context.Context, clientID string) error
}
