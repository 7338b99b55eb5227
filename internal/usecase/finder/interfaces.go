package finder

import (
	"context"

	"github.com/dermocheck/backend/internal/entity"
)

type PlacesConnector interface {
	SearchPlaces(ctx context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error)
}
