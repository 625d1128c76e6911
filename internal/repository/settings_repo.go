package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargelog/internal/models"
)

// ErrSettingsNotFound represents a user without saved settings.
var ErrSettingsNotFound = errors.New("tariff settings not found")

// SettingsRepository persists per-user tariff settings, one row per user.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository returns repository instance.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the user's tariff settings.
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*models.TariffSettings, error) {
	const query = `
		SELECT battery_capacity, price_peak, price_off_peak,
		       price_tempo_blue_peak, price_tempo_blue_off_peak,
		       price_tempo_white_peak, price_tempo_white_off_peak,
		       price_tempo_red_peak, price_tempo_red_off_peak,
		       recap_email
		FROM tariff_settings
		WHERE user_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, userID)
	var s models.TariffSettings
	if err := row.Scan(
		&s.BatteryCapacity,
		&s.PricePeak,
		&s.PriceOffPeak,
		&s.PriceTempoBluePeak,
		&s.PriceTempoBlueOffPeak,
		&s.PriceTempoWhitePeak,
		&s.PriceTempoWhiteOffPeak,
		&s.PriceTempoRedPeak,
		&s.PriceTempoRedOffPeak,
		&s.RecapEmail,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert saves the user's settings, last write wins.
func (r *SettingsRepository) Upsert(ctx context.Context, userID int64, s models.TariffSettings) error {
	const query = `
		INSERT INTO tariff_settings (
			user_id, battery_capacity, price_peak, price_off_peak,
			price_tempo_blue_peak, price_tempo_blue_off_peak,
			price_tempo_white_peak, price_tempo_white_off_peak,
			price_tempo_red_peak, price_tempo_red_off_peak,
			recap_email, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			battery_capacity = EXCLUDED.battery_capacity,
			price_peak = EXCLUDED.price_peak,
			price_off_peak = EXCLUDED.price_off_peak,
			price_tempo_blue_peak = EXCLUDED.price_tempo_blue_peak,
			price_tempo_blue_off_peak = EXCLUDED.price_tempo_blue_off_peak,
			price_tempo_white_peak = EXCLUDED.price_tempo_white_peak,
			price_tempo_white_off_peak = EXCLUDED.price_tempo_white_off_peak,
			price_tempo_red_peak = EXCLUDED.price_tempo_red_peak,
			price_tempo_red_off_peak = EXCLUDED.price_tempo_red_off_peak,
			recap_email = EXCLUDED.recap_email,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query,
		userID,
		s.BatteryCapacity,
		s.PricePeak,
		s.PriceOffPeak,
		s.PriceTempoBluePeak,
		s.PriceTempoBlueOffPeak,
		s.PriceTempoWhitePeak,
		s.PriceTempoWhiteOffPeak,
		s.PriceTempoRedPeak,
		s.PriceTempoRedOffPeak,
		s.RecapEmail,
	)
	return err
}
