package finder

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/entity"
)

// FinderUsecase locates dermatology practices near the user. The actual
// lookup is delegated to the places connector; this layer only validates
// the query and normalizes its parts.
type FinderUsecase struct {
	places PlacesConnector
	logger *zap.Logger
}

func NewUsecase(places PlacesConnector, logger *zap.Logger) *FinderUsecase {
	return &FinderUsecase{places: places, logger: logger}
}

// FindDermatologists searches by country and optional city, or by the
// user's position when no country is given.
func (uc *FinderUsecase) FindDermatologists(ctx context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error) {
	country = strings.TrimSpace(country)
	city = strings.TrimSpace(city)

	if country == "" && position == nil {
		return nil, entity.NewValidationError("Veuillez indiquer un pays ou autoriser la géolocalisation.")
	}
	if position != nil {
		if position.Latitude < -90 || position.Latitude > 90 || position.Longitude < -180 || position.Longitude > 180 {
			return nil, entity.NewValidationError("Coordonnées de géolocalisation invalides.")
		}
	}

	found, err := uc.places.SearchPlaces(ctx, country, city, position)
	if err != nil {
		return nil, fmt.Errorf("find dermatologists: %w", err)
	}

	ctxzap.Info(ctx, "dermatologist search completed",
		zap.String("country", country),
		zap.Int("count", len(found)),
	)
	return found, nil
}
