package keyboard

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dermocheck/backend/internal/render"
)

// countryShortcuts are offered as buttons; any other country is typed.
var countryShortcuts = []string{"France", "Belgique", "Suisse", "Canada", "Autre"}

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩺 Démarrer la consultation", EncodeCallback(ActionStart, "start")),
		),
	)
}

// ProfileKeyboard asks for the adult/minor choice
func (b *Builder) ProfileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("J'ai 18 ans ou plus", EncodeCallback(ActionProfile, "adult")),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("J'ai moins de 18 ans", EncodeCallback(ActionProfile, "minor")),
		),
	)
}

// RetryKeyboard is shown with the error message of a failed turn
func (b *Builder) RetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Réessayer", EncodeCallback(ActionStart, "retry")),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Recommencer", EncodeCallback(ActionStart, "reset")),
		),
	)
}

// ViewKeyboard builds the keyboard for one rendered view. Selected
// labels of a multi-select are marked; navigation buttons are appended
// to every interactive view.
func (b *Builder) ViewKeyboard(view render.View, selected []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	switch view.Kind {
	case render.AffordanceButtons:
		rows = optionRows(view.Options, ActionOption, nil)
	case render.AffordanceMultiSelect:
		rows = optionRows(view.Options, ActionToggle, selected)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Valider la sélection", EncodeCallback(ActionStart, "submit")),
		))
	case render.AffordanceCountry:
		for _, country := range countryShortcuts {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(country, EncodeCallback(ActionOption, country)),
			))
		}
	case render.AffordancePhoto:
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ "+skipPhotoLabel, EncodeCallback(ActionStart, "skip")),
		))
	case render.AffordanceReport:
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback(ActionReport, "markdown")),
				tgbotapi.NewInlineKeyboardButtonData("📄 PDF", EncodeCallback(ActionReport, "pdf")),
				tgbotapi.NewInlineKeyboardButtonData("📄 DOCX", EncodeCallback(ActionReport, "docx")),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑 Nouvelle consultation", EncodeCallback(ActionStart, "reset")),
			),
		)
		return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
	}

	if view.NoneLabel != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(view.NoneLabel, EncodeCallback(ActionStart, "none")),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Retour", EncodeCallback(ActionStart, "back")),
		tgbotapi.NewInlineKeyboardButtonData("🗑 Recommencer", EncodeCallback(ActionStart, "reset")),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

const skipPhotoLabel = "Je ne peux pas envoyer de photo"

// optionRows renders one button per option, referenced by index so the
// 64-byte callback data limit never truncates a label.
func optionRows(options []string, action string, selected []string) [][]tgbotapi.InlineKeyboardButton {
	marked := make(map[string]bool, len(selected))
	for _, s := range selected {
		marked[s] = true
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, opt := range options {
		label := opt
		if marked[opt] {
			label = "✅ " + opt
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(action, strconv.Itoa(i))),
		))
	}
	return rows
}
