package gemini

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/consult"
	"github.com/dermocheck/backend/internal/entity"
)

// Connector implements the generation collaborator on the Gemini API.
// Calls are stateless: the full history travels with every request and
// the questionnaire script goes as the system instruction.
type Connector struct {
	cfg    config.GeminiConfig
	cli    *genai.Client
	logger *zap.Logger
}

func NewConnector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Connector, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Connector{cfg: cfg, cli: cli, logger: logger}, nil
}

// Generate sends the history plus the new user input and returns the
// raw model text. Transient provider failures are retried with
// exponential backoff; whatever survives the retries comes back as a
// typed ProviderError.
func (c *Connector) Generate(ctx context.Context, hist []entity.Turn, newText string, images []entity.InlineImage) (string, error) {
	ctxzap.Info(ctx, "generating model response",
		zap.Int("history_len", len(hist)),
		zap.Int("image_count", len(images)),
	)

	contents := convertHistory(hist)
	contents = append(contents, userContent(newText, images))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: consult.SystemInstruction}},
		},
	}

	opts := append(c.cfg.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isTransient),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)

	text, err := retry.DoWithData(func() (string, error) {
		resp, err := c.cli.Models.GenerateContent(ctx, c.cfg.Model, contents, cfg)
		if err != nil {
			return "", err
		}
		return responseText(resp)
	}, opts...)
	if err != nil {
		ctxzap.Error(ctx, "model generation failed", zap.Error(err))
		return "", &entity.ProviderError{Transient: isTransient(err), Err: err}
	}

	ctxzap.Info(ctx, "model response received", zap.Int("response_length", len(text)))
	return text, nil
}

func convertHistory(hist []entity.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(hist)+1)
	for _, t := range hist {
		content := &genai.Content{Role: string(t.Role)}
		for _, p := range t.Parts {
			if p.Image != nil {
				content.Parts = append(content.Parts, &genai.Part{
					InlineData: &genai.Blob{MIMEType: p.Image.MIMEType, Data: p.Image.Data},
				})
				continue
			}
			content.Parts = append(content.Parts, &genai.Part{Text: p.Text})
		}
		contents = append(contents, content)
	}
	return contents
}

func userContent(text string, images []entity.InlineImage) *genai.Content {
	content := &genai.Content{
		Role:  string(entity.RoleUser),
		Parts: []*genai.Part{{Text: text}},
	}
	for _, img := range images {
		content.Parts = append(content.Parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data},
		})
	}
	return content
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
