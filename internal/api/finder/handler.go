package finder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/pkg/logger"
	"github.com/dermocheck/backend/internal/pkg/response"
)

type Handler struct {
	usecase FinderUsecase
}

func NewHandler(usecase FinderUsecase) *Handler {
	return &Handler{usecase: usecase}
}

type placesDTO struct {
	Places []entity.Place `json:"places"`
}

// FindDermatologists handles GET /dermatologists - nearby practice search.
// Query parameters: country, city, lat, lng.
func (h *Handler) FindDermatologists(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "FindDermatologists")

	q := r.URL.Query()
	country := q.Get("country")
	city := q.Get("city")

	position, err := parsePosition(q.Get("lat"), q.Get("lng"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid coordinates", err)
		return
	}

	found, err := h.usecase.FindDermatologists(ctx, country, city, position)
	if err != nil {
		if entity.IsValidation(err) {
			h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
			return
		}
		h.respondError(ctx, w, http.StatusBadGateway, "search failed", err)
		return
	}

	response.Success(w, placesDTO{Places: found})
}

// parsePosition reads both coordinates or neither.
func parsePosition(latStr, lngStr string) (*entity.LatLng, error) {
	if latStr == "" && lngStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, err
	}
	return &entity.LatLng{Latitude: lat, Longitude: lng}, nil
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
