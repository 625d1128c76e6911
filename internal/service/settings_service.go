package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chargelog/internal/models"
	"chargelog/internal/repository"
	"chargelog/internal/ws"
)

// ErrInvalidSettings is wrapped by settings validation failures.
var ErrInvalidSettings = errors.New("settings: invalid settings")

// SettingsService reads and writes per-user tariff settings. Users without
// a saved row get the defaults; saving is last-write-wins.
type SettingsService struct {
	store    SettingsStore
	notifier Notifier
	logger   *zap.Logger
}

// NewSettingsService builds service.
func NewSettingsService(store SettingsStore, notifier Notifier, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Get returns the user's settings, falling back to defaults.
func (s *SettingsService) Get(ctx context.Context, userID int64) (models.TariffSettings, error) {
	settings, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return models.DefaultSettings(), nil
		}
		return models.TariffSettings{}, err
	}
	return *settings, nil
}

// Update validates and saves the settings, then notifies connected clients
// so open views recompute their derived values with the new prices.
func (s *SettingsService) Update(ctx context.Context, userID int64, settings models.TariffSettings) error {
	if settings.BatteryCapacity <= 0 {
		return fmt.Errorf("%w: battery capacity must be positive", ErrInvalidSettings)
	}
	for _, t := range models.AllTariffs() {
		if t == models.TariffQuickCharge {
			continue
		}
		if settings.PriceFor(t) < 0 {
			return fmt.Errorf("%w: price for %s must not be negative", ErrInvalidSettings, t)
		}
	}

	if err := s.store.Upsert(ctx, userID, settings); err != nil {
		return err
	}

	s.logger.Info("tariff settings updated", zap.Int64("user_id", userID))
	if s.notifier != nil {
		s.notifier.Notify(userID, ws.Event{Type: ws.EventSettingsUpdated})
	}
	return nil
}
