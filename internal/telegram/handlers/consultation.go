package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	consult "github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
	apprender "github.com/dermocheck/backend/internal/render"
	"github.com/dermocheck/backend/internal/telegram/keyboard"
	"github.com/dermocheck/backend/internal/telegram/render"
	"github.com/dermocheck/backend/internal/telegram/state"
)

// ConsultationHandler drives the whole chat flow: profile choice,
// question turns, photos, report download and the dermatologist search.
type ConsultationHandler struct {
	api      *tgbotapi.BotAPI
	states   *state.Manager
	consult  ConsultUsecase
	finder   FinderUsecase
	keyboard *keyboard.Builder
	sender   *MessageSender
	logger   *zap.Logger
}

func NewConsultationHandler(
	api *tgbotapi.BotAPI,
	states *state.Manager,
	consultUC ConsultUsecase,
	finderUC FinderUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *ConsultationHandler {
	return &ConsultationHandler{
		api:      api,
		states:   states,
		consult:  consultUC,
		finder:   finderUC,
		keyboard: kb,
		sender:   NewMessageSender(api, logger),
		logger:   logger,
	}
}

// clientID derives the durable profile key from the telegram user.
func clientID(userID int64) string {
	return fmt.Sprintf("tg-%d", userID)
}

// HandleStart greets the user and gates on the stored profile.
func (h *ConsultationHandler) HandleStart(ctx context.Context, msg *Message) error {
	profile, err := h.consult.GetProfile(ctx, clientID(msg.UserID))
	switch {
	case err != nil:
		// no stored profile yet, or the lookup failed: ask
		h.sender.Send(msg.ChatID, render.MsgWelcome, nil)
		h.sender.Send(msg.ChatID, render.MsgProfileQuestion, h.keyboard.ProfileKeyboard())
		return nil
	case profile == entity.ProfileMinor:
		h.sender.Send(msg.ChatID, render.MsgMinorRestricted, nil)
		return nil
	default:
		h.sender.Send(msg.ChatID, render.MsgWelcome, h.keyboard.StartKeyboard())
		return nil
	}
}

// HandleText routes a typed answer to the active session.
func (h *ConsultationHandler) HandleText(ctx context.Context, msg *Message) error {
	st, err := h.states.GetOrCreate(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	if st.SessionID == "" {
		h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	return h.submit(ctx, st, msg.Text, nil)
}

// HandlePhotos downloads the attached photos and submits them.
func (h *ConsultationHandler) HandlePhotos(ctx context.Context, msg *Message) error {
	st, err := h.states.GetOrCreate(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}
	if st.SessionID == "" {
		h.sender.Send(msg.ChatID, render.MsgNoSession, nil)
		return nil
	}

	photo := largestPhoto(msg.Photos)
	if photo == nil {
		h.sender.Send(msg.ChatID, render.ErrGeneric, nil)
		return nil
	}

	data, err := downloadPhoto(ctx, h.api, photo.FileID)
	if err != nil {
		ctxzap.Error(ctx, "photo download failed", zap.Error(err))
		h.sender.Send(msg.ChatID, "❌ Je n'ai pas pu récupérer la photo. Réessayez.", nil)
		return nil
	}

	images := []entity.InlineImage{{MIMEType: "image/jpeg", Data: data}}
	return h.submit(ctx, st, consult.PhotoSubmitText, images)
}

// HandleCallback dispatches one button press.
func (h *ConsultationHandler) HandleCallback(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	st, err := h.states.GetOrCreate(ctx, msg.UserID, msg.ChatID)
	if err != nil {
		return err
	}

	switch data.Action {
	case keyboard.ActionProfile:
		return h.handleProfileChoice(ctx, msg, data.Value)
	case keyboard.ActionOption:
		return h.handleOption(ctx, st, data.Value)
	case keyboard.ActionToggle:
		return h.handleToggle(ctx, st, msg, data.Value)
	case keyboard.ActionReport:
		return h.handleReportDownload(ctx, st, data.Value)
	case keyboard.ActionStart:
		return h.handleAction(ctx, st, data.Value)
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("action", data.Action))
		return nil
	}
}

// HandleFind answers /dermatologues <pays> [ville].
func (h *ConsultationHandler) HandleFind(ctx context.Context, msg *Message, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		h.sender.Send(msg.ChatID, "Indiquez un pays, par exemple : /dermatologues France Lyon", nil)
		return nil
	}

	country := fields[0]
	city := strings.Join(fields[1:], " ")

	notifier := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	notifier.Start(ctx)
	defer notifier.Stop()

	places, err := h.finder.FindDermatologists(ctx, country, city, nil)
	if err != nil {
		h.sender.Send(msg.ChatID, userMessage(err), nil)
		return nil
	}

	h.sender.Send(msg.ChatID, render.FormatPlaces(places), nil)
	return nil
}

// Cancel drops the active session mapping.
func (h *ConsultationHandler) Cancel(ctx context.Context, msg *Message) error {
	if err := h.states.Delete(ctx, msg.UserID); err != nil {
		return err
	}
	h.sender.Send(msg.ChatID, render.MsgSessionFinished, nil)
	return nil
}

func (h *ConsultationHandler) handleProfileChoice(ctx context.Context, msg *Message, value string) error {
	switch value {
	case "adult":
		if err := h.consult.SetProfile(ctx, clientID(msg.UserID), entity.ProfileAdult); err != nil {
			h.sender.Send(msg.ChatID, userMessage(err), nil)
			return err
		}
		h.sender.Send(msg.ChatID, render.MsgWelcome, h.keyboard.StartKeyboard())
	case "minor":
		if err := h.consult.SetProfile(ctx, clientID(msg.UserID), entity.ProfileMinor); err != nil {
			h.sender.Send(msg.ChatID, userMessage(err), nil)
			return err
		}
		h.sender.Send(msg.ChatID, render.MsgMinorRestricted, nil)
	}
	return nil
}

func (h *ConsultationHandler) handleAction(ctx context.Context, st *state.ChatState, value string) error {
	switch value {
	case "start":
		return h.startConsultation(ctx, st)
	case "retry":
		return h.turn(ctx, st, func() (consult.Snapshot, error) {
			return h.consult.Retry(ctx, st.SessionID)
		})
	case "back":
		return h.turn(ctx, st, func() (consult.Snapshot, error) {
			return h.consult.GoBack(ctx, st.SessionID)
		})
	case "reset":
		if st.SessionID == "" {
			return h.startConsultation(ctx, st)
		}
		return h.turn(ctx, st, func() (consult.Snapshot, error) {
			return h.consult.Reset(ctx, st.SessionID)
		})
	case "submit":
		return h.handleSubmitSelection(ctx, st)
	case "none":
		if st.NoneLabel == "" {
			return nil
		}
		return h.submit(ctx, st, st.NoneLabel, nil)
	case "skip":
		return h.submit(ctx, st, consult.PhotoSkipText, nil)
	default:
		ctxzap.Warn(ctx, "unknown action value", zap.String("value", value))
		return nil
	}
}

func (h *ConsultationHandler) startConsultation(ctx context.Context, st *state.ChatState) error {
	notifier := NewTypingNotifier(h.api, st.ChatID, h.logger)
	notifier.Start(ctx)
	defer notifier.Stop()

	sessionID, snap, err := h.consult.StartConsultation(ctx, clientID(st.UserID))
	if err != nil && sessionID == "" {
		h.sender.Send(st.ChatID, userMessage(err), nil)
		return nil
	}

	if bindErr := h.states.BindSession(ctx, st, sessionID); bindErr != nil {
		return bindErr
	}

	return h.renderSnapshot(ctx, st, snap)
}

// handleOption resolves a single-choice button. The value is either an
// index into the stored options or a literal label (country shortcuts).
func (h *ConsultationHandler) handleOption(ctx context.Context, st *state.ChatState, value string) error {
	if st.SessionID == "" {
		h.sender.Send(st.ChatID, render.MsgNoSession, nil)
		return nil
	}

	label := value
	if idx, err := strconv.Atoi(value); err == nil {
		if idx < 0 || idx >= len(st.Options) {
			ctxzap.Warn(ctx, "stale option callback", zap.Int("index", idx))
			return nil
		}
		label = st.Options[idx]
	}

	return h.submit(ctx, st, label, nil)
}

// handleToggle flips one multi-select option and refreshes the keyboard.
func (h *ConsultationHandler) handleToggle(ctx context.Context, st *state.ChatState, msg *Message, value string) error {
	idx, err := strconv.Atoi(value)
	if err != nil || idx < 0 || idx >= len(st.Options) {
		return nil
	}

	sel := apprender.NewSelection()
	for _, item := range st.Selection {
		sel.Toggle(item)
	}
	sel.Toggle(st.Options[idx])

	st.Selection = sel.Selected()
	if err := h.states.Save(ctx, st); err != nil {
		return err
	}

	view := apprender.View{
		Kind:      apprender.AffordanceMultiSelect,
		Options:   st.Options,
		NoneLabel: st.NoneLabel,
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(st.ChatID, msg.MessageID, h.keyboard.ViewKeyboard(view, st.Selection))
	if _, err := h.api.Request(edit); err != nil {
		ctxzap.Warn(ctx, "failed to refresh selection keyboard", zap.Error(err))
	}
	return nil
}

func (h *ConsultationHandler) handleSubmitSelection(ctx context.Context, st *state.ChatState) error {
	sel := apprender.NewSelection()
	for _, item := range st.Selection {
		sel.Toggle(item)
	}

	answer, err := sel.Submit()
	if err != nil {
		h.sender.Send(st.ChatID, userMessage(err), nil)
		return nil
	}

	return h.submit(ctx, st, answer, nil)
}

func (h *ConsultationHandler) handleReportDownload(ctx context.Context, st *state.ChatState, format string) error {
	if st.SessionID == "" {
		h.sender.Send(st.ChatID, render.MsgNoSession, nil)
		return nil
	}

	file, err := h.consult.ExportReport(ctx, st.SessionID, entity.ReportFormat(format))
	if err != nil {
		h.sender.Send(st.ChatID, userMessage(err), nil)
		return nil
	}

	return h.sender.SendDocument(st.ChatID, file.Filename, file.Data)
}

func (h *ConsultationHandler) submit(ctx context.Context, st *state.ChatState, text string, images []entity.InlineImage) error {
	if st.SessionID == "" {
		h.sender.Send(st.ChatID, render.MsgNoSession, nil)
		return nil
	}

	return h.turn(ctx, st, func() (consult.Snapshot, error) {
		return h.consult.SubmitAnswer(ctx, st.SessionID, text, images)
	})
}

// turn runs one session operation with a typing indicator and renders
// the resulting state. Provider failures render the error phase with
// its retry button instead of a bare error message.
func (h *ConsultationHandler) turn(ctx context.Context, st *state.ChatState, fn func() (consult.Snapshot, error)) error {
	notifier := NewTypingNotifier(h.api, st.ChatID, h.logger)
	notifier.Start(ctx)
	defer notifier.Stop()

	snap, err := fn()
	if err != nil {
		if snap.Phase == entity.PhaseError {
			return h.renderSnapshot(ctx, st, snap)
		}
		h.sender.Send(st.ChatID, userMessage(err), nil)
		return nil
	}

	return h.renderSnapshot(ctx, st, snap)
}

// renderSnapshot turns a session snapshot into chat messages.
func (h *ConsultationHandler) renderSnapshot(ctx context.Context, st *state.ChatState, snap consult.Snapshot) error {
	if snap.MinorRestricted {
		h.sender.Send(st.ChatID, snap.Directive.Text, nil)
		return nil
	}

	if snap.Phase == entity.PhaseError {
		text := snap.ErrorMessage
		if text == "" {
			text = render.ErrGeneric
		}
		h.sender.Send(st.ChatID, text, h.keyboard.RetryKeyboard())
		return nil
	}

	view := apprender.Build(snap.Directive, snap.PendingChoice)

	st.Options = view.Options
	st.NoneLabel = view.NoneLabel
	st.Selection = nil
	if err := h.states.Save(ctx, st); err != nil {
		return err
	}

	text := render.FormatView(view)
	if view.Kind == apprender.AffordanceReport {
		return sendCriticalMessage(h.api, st.ChatID, text+"\n\n"+render.MsgReportReady,
			h.keyboard.ViewKeyboard(view, nil), h.logger)
	}

	h.sender.Send(st.ChatID, text, h.keyboard.ViewKeyboard(view, nil))
	return nil
}
