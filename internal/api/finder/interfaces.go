package finder

import (
	"context"

	"github.com/dermocheck/backend/internal/entity"
)

type FinderUsecase interface {
	FindDermatologists(ctx context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error)
}
