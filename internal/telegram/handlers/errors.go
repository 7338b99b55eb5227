package handlers

import (
	"context"
	"errors"
	"net"

	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/telegram/render"
)

// userMessage maps an error to the French text shown in the chat.
// Validation failures already carry their message; everything else
// falls back to a generic hint.
func userMessage(err error) string {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return "⚠️ " + vErr.Message
	}

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		return render.MsgNoSession
	case errors.Is(err, entity.ErrRequestInFlight):
		return render.ErrBusy
	case errors.Is(err, entity.ErrSessionTerminal):
		return render.ErrFinished
	case errors.Is(err, entity.ErrMinorRestricted):
		return render.MsgMinorRestricted
	case errors.Is(err, entity.ErrNoFinalReport):
		return "Le rapport n'est pas encore disponible."
	case errors.Is(err, entity.ErrNoFailedAction):
		return "Il n'y a rien à réessayer."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "⏱ L'opération a pris trop de temps. Réessayez."
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return "🌐 Problème de connexion. Réessayez dans un instant."
	}

	return render.ErrGeneric
}
