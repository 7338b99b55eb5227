package places

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dermocheck/backend/internal/config"
	"github.com/dermocheck/backend/internal/entity"
)

// Connector answers "dermatologists near X" through the model's maps
// grounding tool and flattens the grounding chunks into places.
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

func (c *Connector) SearchPlaces(ctx context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error) {
	ctxzap.Info(ctx, "searching dermatologists",
		zap.String("country", country),
		zap.String("city", city),
		zap.Bool("with_position", position != nil),
	)

	cfg := &genai.GenerateContentConfig{
		Tools:      []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{},
	}
	if position != nil {
		cfg.ToolConfig.RetrievalConfig = &genai.RetrievalConfig{
			LatLng: &genai.LatLng{Latitude: genai.Ptr(position.Latitude), Longitude: genai.Ptr(position.Longitude)},
		}
	}

	prompt := searchPrompt(country, city, position)
	resp, err := c.cli.Models.GenerateContent(ctx, c.cfg.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}}, cfg)
	if err != nil {
		ctxzap.Error(ctx, "maps grounding search failed", zap.Error(err))
		return nil, fmt.Errorf("search places: %w", err)
	}

	found := extractPlaces(resp)
	ctxzap.Info(ctx, "dermatologists found", zap.Int("count", len(found)))
	return found, nil
}

func searchPrompt(country, city string, position *entity.LatLng) string {
	switch {
	case city != "" && country != "":
		return fmt.Sprintf("Trouvez des dermatologues à %s, %s.", city, country)
	case country != "":
		return fmt.Sprintf("Trouvez des dermatologues en %s.", country)
	case position != nil:
		return "Trouvez les dermatologues les plus proches de ma position actuelle (rayon 10-15km)."
	default:
		return "Trouvez des dermatologues."
	}
}

func extractPlaces(resp *genai.GenerateContentResponse) []entity.Place {
	places := make([]entity.Place, 0)
	for _, cand := range resp.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Maps == nil {
				continue
			}
			places = append(places, entity.Place{
				Name:    chunk.Maps.Title,
				Address: chunk.Maps.Text,
				MapsURL: chunk.Maps.URI,
			})
		}
	}
	return places
}
