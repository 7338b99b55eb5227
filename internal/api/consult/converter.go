package consult

import (
	controller "github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
	"github.com/dermocheck/backend/internal/render"
)

// StateDTO is the session state as the client sees it: the current
// phase plus the rendered view of the active directive.
type StateDTO struct {
	SessionID string                     `json:"session_id,omitempty"`
	Phase     entity.ConsultPhase        `json:"phase"`
	Subject   entity.ConsultationSubject `json:"subject,omitempty"`
	Progress  int                        `json:"progress"`
	View      render.View                `json:"view"`

	MinorRestricted bool   `json:"minor_restricted,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	Retryable       bool   `json:"retryable,omitempty"`
}

func toStateDTO(sessionID string, snap controller.Snapshot) StateDTO {
	return StateDTO{
		SessionID:       sessionID,
		Phase:           snap.Phase,
		Subject:         snap.Subject,
		Progress:        snap.Progress,
		View:            render.Build(snap.Directive, snap.PendingChoice),
		MinorRestricted: snap.MinorRestricted,
		ErrorMessage:    snap.ErrorMessage,
		Retryable:       snap.Retryable,
	}
}
