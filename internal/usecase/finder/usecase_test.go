package finder

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dermocheck/backend/internal/entity"
)

type fakePlaces struct {
	country  string
	city     string
	position *entity.LatLng
	result   []entity.Place
	err      error
}

func (f *fakePlaces) SearchPlaces(_ context.Context, country, city string, position *entity.LatLng) ([]entity.Place, error) {
	f.country = country
	f.city = city
	f.position = position
	return f.result, f.err
}

func TestFindDermatologists(t *testing.T) {
	fake := &fakePlaces{result: []entity.Place{{Name: "Cabinet A", Address: "Lyon"}}}
	uc := NewUsecase(fake, zap.NewNop())

	got, err := uc.FindDermatologists(context.Background(), " France ", " Lyon ", nil)
	if err != nil {
		t.Fatalf("FindDermatologists: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Cabinet A" {
		t.Fatalf("got %+v", got)
	}
	if fake.country != "France" || fake.city != "Lyon" {
		t.Fatalf("query not trimmed: country=%q city=%q", fake.country, fake.city)
	}
}

func TestFindDermatologistsByPosition(t *testing.T) {
	fake := &fakePlaces{}
	uc := NewUsecase(fake, zap.NewNop())

	pos := &entity.LatLng{Latitude: 45.76, Longitude: 4.84}
	if _, err := uc.FindDermatologists(context.Background(), "", "", pos); err != nil {
		t.Fatalf("FindDermatologists: %v", err)
	}
	if fake.position == nil || fake.position.Latitude != 45.76 {
		t.Fatalf("position not forwarded: %+v", fake.position)
	}
}

func TestFindDermatologistsValidation(t *testing.T) {
	uc := NewUsecase(&fakePlaces{}, zap.NewNop())

	if _, err := uc.FindDermatologists(context.Background(), "", "", nil); !entity.IsValidation(err) {
		t.Fatalf("empty query err = %v, want validation error", err)
	}
	bad := &entity.LatLng{Latitude: 120, Longitude: 0}
	if _, err := uc.FindDermatologists(context.Background(), "", "", bad); !entity.IsValidation(err) {
		t.Fatalf("bad position err = %v, want validation error", err)
	}
}

func TestFindDermatologistsConnectorError(t *testing.T) {
	boom := errors.New("grounding down")
	uc := NewUsecase(&fakePlaces{err: boom}, zap.NewNop())

	if _, err := uc.FindDermatologists(context.Background(), "France", "", nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped connector error", err)
	}
}
