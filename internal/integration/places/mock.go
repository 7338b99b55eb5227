package places

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/entity"
)

// MockConnector returns canned practices for development.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) SearchPlaces(ctx context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error) {
	ctxzap.Info(ctx, "[MOCK] searching dermatologists",
		zap.String("country", country),
		zap.String("city", city),
	)

	return []entity.Place{
		{
			Name:    "Cabinet de Dermatologie du Centre",
			Address: "12 rue de la République, " + orDefault(city, "Lyon"),
			Phone:   "+33 4 72 00 00 00",
			MapsURL: "https://maps.google.com/?q=Cabinet+de+Dermatologie+du+Centre",
		},
		{
			Name:    "Dr Martin, Dermatologue",
			Address: "8 avenue Victor Hugo, " + orDefault(city, "Lyon"),
			Phone:   "+33 4 72 00 00 01",
			MapsURL: "https://maps.google.com/?q=Dr+Martin+Dermatologue",
		},
	}, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
