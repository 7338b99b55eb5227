package consult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	consultuc "github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/pkg/logger"
	"github.com/dermocheck/backend/internal/pkg/response"
	"github.com/dermocheck/backend/internal/pkg/validator"
)

type Handler struct {
	usecase   ConsultUsecase
	validator *validator.Validator
}

func NewHandler(usecase ConsultUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// StartConsultation handles POST /consultation - open a new session
func (h *Handler) StartConsultation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartConsultation")

	clientID := r.Header.Get("X-Client-ID")
	if clientID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "X-Client-ID header is required",
			fmt.Errorf("%w: X-Client-ID", entity.ErrMissingField))
		return
	}

	sessionID, snap, err := h.usecase.StartConsultation(ctx, clientID)
	if err != nil && sessionID == "" {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	if err != nil {
		// the opening turn failed but the session exists: the client
		// can retry from the error state
		ctxzap.Warn(ctx, "opening turn failed", zap.Error(err), zap.String("session_id", sessionID))
		response.JSON(w, http.StatusCreated, toStateDTO(sessionID, snap))
		return
	}

	response.JSON(w, http.StatusCreated, toStateDTO(sessionID, snap))
}

// GetState handles GET /consultation/{id} - current session state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "GetState"),
	)

	snap, err := h.usecase.GetState(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toStateDTO(sessionID, snap))
}

// SubmitAnswer handles POST /consultation/{id}/answer - text answer
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitAnswer"),
	)

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Answer == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "answer is required",
			fmt.Errorf("%w: answer", entity.ErrMissingField))
		return
	}

	snap, err := h.usecase.SubmitAnswer(ctx, sessionID, req.Answer, nil)
	if err != nil {
		h.respondTurn(ctx, w, sessionID, snap, err)
		return
	}

	response.Success(w, toStateDTO(sessionID, snap))
}

// SubmitPhotos handles POST /consultation/{id}/photos - photo answer.
// Photos arrive as multipart files under the "photos" key; a "skip"
// form value submits the skip phrase instead.
func (h *Handler) SubmitPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", "SubmitPhotos"),
	)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	if r.FormValue("skip") == "true" {
		snap, err := h.usecase.SubmitAnswer(ctx, sessionID, consultuc.PhotoSkipText, nil)
		if err != nil {
			h.respondTurn(ctx, w, sessionID, snap, err)
			return
		}
		response.Success(w, toStateDTO(sessionID, snap))
		return
	}

	files := r.MultipartForm.File["photos"]
	if err := h.validator.ValidateUpload(files); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	images := make([]entity.InlineImage, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "failed to read photo", err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "failed to read photo", err)
			return
		}
		images = append(images, entity.InlineImage{
			MIMEType: validator.MIMEType(header),
			Data:     data,
		})
	}

	ctxzap.Info(ctx, "submitting photos", zap.Int("count", len(images)))

	snap, err := h.usecase.SubmitAnswer(ctx, sessionID, consultuc.PhotoSubmitText, images)
	if err != nil {
		h.respondTurn(ctx, w, sessionID, snap, err)
		return
	}

	response.Success(w, toStateDTO(sessionID, snap))
}

// Retry handles POST /consultation/{id}/retry - replay the failed turn
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, "Retry", h.usecase.Retry)
}

// GoBack handles POST /consultation/{id}/back - one question back
func (h *Handler) GoBack(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, "GoBack", h.usecase.GoBack)
}

// Reset handles POST /consultation/{id}/reset - restart from scratch
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, "Reset", h.usecase.Reset)
}

// ExportReport handles GET /consultation/{id}/report/{format}
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")
	format := entity.ReportFormat(chi.URLParam(r, "format"))

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.String("action", "ExportReport"),
	)

	file, err := h.usecase.ExportReport(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func (h *Handler) sessionAction(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(context.Context, string) (consultuc.Snapshot, error),
) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.AddFields(ctx,
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)

	snap, err := fn(ctx, sessionID)
	if err != nil {
		h.respondTurn(ctx, w, sessionID, snap, err)
		return
	}

	response.Success(w, toStateDTO(sessionID, snap))
}

// respondTurn maps a failed turn to a response. Provider failures leave
// the session in the error phase with a retry affordance, so the client
// still gets the session state rather than a bare error.
func (h *Handler) respondTurn(ctx context.Context, w http.ResponseWriter, sessionID string, snap consultuc.Snapshot, err error) {
	var pErr *entity.ProviderError
	if errors.As(err, &pErr) {
		ctxzap.Warn(ctx, "model turn failed", zap.Error(err), zap.Bool("transient", pErr.Transient))
		response.JSON(w, http.StatusBadGateway, toStateDTO(sessionID, snap))
		return
	}
	h.handleUsecaseError(ctx, w, err)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrProfileRequired):
		h.respondError(ctx, w, http.StatusForbidden, "profile must be chosen first", err)
	case errors.Is(err, entity.ErrMinorRestricted):
		h.respondError(ctx, w, http.StatusForbidden, "service is not available for unaccompanied minors", err)
	case errors.Is(err, entity.ErrRequestInFlight):
		h.respondError(ctx, w, http.StatusConflict, "a request is already being processed", err)
	case errors.Is(err, entity.ErrSessionTerminal):
		h.respondError(ctx, w, http.StatusConflict, "consultation is already finished", err)
	case errors.Is(err, entity.ErrNoFailedAction), errors.Is(err, entity.ErrNoFinalReport):
		h.respondError(ctx, w, http.StatusConflict, "action not available in current state", err)
	case errors.As(err, &vErr):
		ctxzap.Warn(ctx, "validation rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidImage), errors.Is(err, entity.ErrImageTooLarge),
		errors.Is(err, entity.ErrTooManyImages), errors.Is(err, entity.ErrTotalSizeTooBig):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
