package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dermocheck/backend/internal/entity"
)

// ProfileRepository persists the adult/minor choice per client device.
// It is the only durable state of the service; consultations themselves
// never touch the database.
type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, clientID string) (entity.SessionProfile, error) {
	var profile string
	err := r.db.QueryRow(ctx,
		`SELECT profile FROM client_profiles WHERE client_id = $1`,
		clientID,
	).Scan(&profile)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ProfileUnset, entity.ErrProfileNotFound
		}
		return entity.ProfileUnset, fmt.Errorf("query profile: %w", err)
	}
	return entity.SessionProfile(profile), nil
}

func (r *ProfileRepository) SetProfile(ctx context.Context, clientID string, profile entity.SessionProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO client_profiles (client_id, profile, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (client_id) DO UPDATE
		 SET profile = EXCLUDED.profile, updated_at = now()`,
		clientID, string(profile),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteProfile(ctx context.Context, clientID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM client_profiles WHERE client_id = $1`,
		clientID,
	)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
