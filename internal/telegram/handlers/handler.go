package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Photos       []tgbotapi.PhotoSize
	CallbackData string
	CallbackID   string
}

// fromMessage normalizes an incoming telegram message.
func FromMessage(m *tgbotapi.Message) *Message {
	return &Message{
		ChatID:    m.Chat.ID,
		UserID:    m.From.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
		Photos:    m.Photo,
	}
}

// FromCallback normalizes an incoming callback query.
func FromCallback(q *tgbotapi.CallbackQuery) *Message {
	return &Message{
		ChatID:       q.Message.Chat.ID,
		UserID:       q.From.ID,
		MessageID:    q.Message.MessageID,
		CallbackData: q.Data,
		CallbackID:   q.ID,
	}
}
