package entity

import (
	"encoding/base64"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// InlineImage carries raw image bytes attached to a user turn.
type InlineImage struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// DataURI renders the image as a data URI for inline display.
func (img InlineImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Part is one ordered fragment of a turn: either text or an inline image.
type Part struct {
	Text  string       `json:"text,omitempty"`
	Image *InlineImage `json:"image,omitempty"`
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func ImagePart(mimeType string, data []byte) Part {
	return Part{Image: &InlineImage{MIMEType: mimeType, Data: data}}
}

// Turn is one exchange unit in the conversation history.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

func NewUserTurn(text string, images []InlineImage) Turn {
	parts := []Part{TextPart(text)}
	for _, img := range images {
		parts = append(parts, ImagePart(img.MIMEType, img.Data))
	}
	return Turn{Role: RoleUser, Parts: parts}
}

func NewModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Parts: []Part{TextPart(text)}}
}

// Text returns the first text part of the turn.
func (t Turn) Text() string {
	for _, p := range t.Parts {
		if p.Image == nil {
			return p.Text
		}
	}
	return ""
}

// Images returns all inline images of the turn in order.
func (t Turn) Images() []InlineImage {
	var images []InlineImage
	for _, p := range t.Parts {
		if p.Image != nil {
			images = append(images, *p.Image)
		}
	}
	return images
}
