package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/pkg/logger"
	"github.com/dermocheck/backend/internal/pkg/response"
)

type Handler struct {
	usecase ProfileUsecase
}

func NewHandler(usecase ProfileUsecase) *Handler {
	return &Handler{usecase: usecase}
}

type profileDTO struct {
	Profile entity.SessionProfile `json:"profile"`
}

// GetProfile handles GET /profile - read the stored adult/minor choice
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetProfile")

	clientID, ok := h.clientID(ctx, w, r)
	if !ok {
		return
	}

	profile, err := h.usecase.GetProfile(ctx, clientID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, profileDTO{Profile: profile})
}

// SetProfile handles PUT /profile - store the adult/minor choice
func (h *Handler) SetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SetProfile")

	clientID, ok := h.clientID(ctx, w, r)
	if !ok {
		return
	}

	var req profileDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.usecase.SetProfile(ctx, clientID, req.Profile); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, profileDTO{Profile: req.Profile})
}

// DeleteProfile handles DELETE /profile - forget the stored choice
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteProfile")

	clientID, ok := h.clientID(ctx, w, r)
	if !ok {
		return
	}

	if err := h.usecase.DeleteProfile(ctx, clientID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) clientID(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, bool) {
	clientID := r.Header.Get("X-Client-ID")
	if clientID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "X-Client-ID header is required",
			fmt.Errorf("%w: X-Client-ID", entity.ErrMissingField))
		return "", false
	}
	return clientID, true
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrProfileNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "profile not set", err)
	case errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid profile", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
