package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"chargelog/internal/charge"
	"chargelog/internal/export"
	"chargelog/internal/importer"
	"chargelog/internal/models"
	"chargelog/internal/repository"
	"chargelog/internal/ws"
)

var (
	// ErrInvalidRecord is wrapped by all record validation failures.
	ErrInvalidRecord = errors.New("charge: invalid record")
	// ErrDuplicateOdometer is returned when the odometer reading already exists.
	ErrDuplicateOdometer = errors.New("charge: odometer reading already recorded")
)

// ChargeStore defines the persistence contract for raw records.
type ChargeStore interface {
	Create(ctx context.Context, userID int64, rec *models.ChargeRecord) error
	CreateBatch(ctx context.Context, userID int64, records []models.ChargeRecord) error
	ListByUser(ctx context.Context, userID int64) ([]models.ChargeRecord, error)
	Delete(ctx context.Context, userID, id int64) error
}

// SettingsStore defines the persistence contract for tariff settings.
type SettingsStore interface {
	Get(ctx context.Context, userID int64) (*models.TariffSettings, error)
	Upsert(ctx context.Context, userID int64, settings models.TariffSettings) error
}

// Notifier pushes change events to connected clients.
type Notifier interface {
	Notify(userID int64, event ws.Event)
}

// ChargeService owns the charge record lifecycle: validation, persistence,
// derivation and the import/export boundary. Derived values are recomputed
// from raw rows plus current settings on every read, never cached.
type ChargeService struct {
	charges  ChargeStore
	settings SettingsStore
	notifier Notifier
	logger   *zap.Logger
}

// NewChargeService builds service.
func NewChargeService(charges ChargeStore, settings SettingsStore, notifier Notifier, logger *zap.Logger) *ChargeService {
	return &ChargeService{
		charges:  charges,
		settings: settings,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the user's processed history, odometer-ascending.
func (s *ChargeService) List(ctx context.Context, userID int64) ([]models.ProcessedCharge, error) {
	records, settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return charge.Process(records, settings), nil
}

// Add validates and stores one manually entered record.
func (s *ChargeService) Add(ctx context.Context, userID int64, rec models.ChargeRecord) (*models.ChargeRecord, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	existing, err := s.charges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Odometer == rec.Odometer {
			return nil, ErrDuplicateOdometer
		}
	}

	if err := s.charges.Create(ctx, userID, &rec); err != nil {
		return nil, err
	}

	s.logger.Info("charge record created",
		zap.Int64("user_id", userID),
		zap.Int64("record_id", rec.ID),
		zap.Int("odometer", rec.Odometer),
	)
	s.notify(userID, ws.Event{Type: ws.EventRecordCreated})
	return &rec, nil
}

// Delete removes one record.
func (s *ChargeService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.charges.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("charge record deleted", zap.Int64("user_id", userID), zap.Int64("record_id", id))
	s.notify(userID, ws.Event{Type: ws.EventRecordDeleted})
	return nil
}

// ImportSummary reports the outcome of one file import.
type ImportSummary struct {
	Added       int      `json:"added"`
	Skipped     int      `json:"skipped"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Import parses an uploaded CSV, rejects malformed rows with per-row
// diagnostics, deduplicates on odometer against the existing history (and
// within the file) and stores the remainder in one batch. A file with any
// diagnostic imports nothing, matching the all-or-nothing behaviour users
// expect from a review-then-retry flow.
func (s *ChargeService) Import(ctx context.Context, userID int64, r io.Reader) (*ImportSummary, error) {
	parsed, err := importer.ParseCSV(r)
	if err != nil {
		return nil, err
	}
	if len(parsed.Errors) > 0 {
		return &ImportSummary{Diagnostics: parsed.Errors}, nil
	}

	existing, err := s.charges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec.Odometer] = struct{}{}
	}

	var fresh []models.ChargeRecord
	skipped := 0
	for _, rec := range parsed.Records {
		if _, dup := seen[rec.Odometer]; dup {
			skipped++
			continue
		}
		seen[rec.Odometer] = struct{}{}
		fresh = append(fresh, rec)
	}

	if err := s.charges.CreateBatch(ctx, userID, fresh); err != nil {
		return nil, err
	}

	s.logger.Info("charge records imported",
		zap.Int64("user_id", userID),
		zap.Int("added", len(fresh)),
		zap.Int("skipped", skipped),
	)
	if len(fresh) > 0 {
		s.notify(userID, ws.Event{Type: ws.EventRecordsImported, Payload: map[string]int{"added": len(fresh)}})
	}
	return &ImportSummary{Added: len(fresh), Skipped: skipped}, nil
}

// ExportCSV writes the processed history as CSV.
func (s *ChargeService) ExportCSV(ctx context.Context, userID int64, w io.Writer) error {
	processed, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, processed)
}

// Stats aggregates the processed history into period statistics.
func (s *ChargeService) Stats(ctx context.Context, userID int64, period charge.Period, filter []models.Tariff) ([]models.PeriodStat, error) {
	processed, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return charge.Aggregate(processed, period, filter), nil
}

// Dashboard bundles the landing-page views.
type Dashboard struct {
	Summary       charge.Summary          `json:"summary"`
	CostBreakdown []charge.BreakdownSlice `json:"cost_breakdown"`
	MonthlyStats  []models.PeriodStat     `json:"monthly_stats"`
}

const dashboardMonths = 6

// GetDashboard computes the lifetime summary, the cost breakdown and the
// last six monthly rows in one pass over the history.
func (s *ChargeService) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	processed, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthly := charge.Aggregate(processed, charge.PeriodMonthly, nil)
	if len(monthly) > dashboardMonths {
		monthly = monthly[len(monthly)-dashboardMonths:]
	}

	return &Dashboard{
		Summary:       charge.Summarize(processed),
		CostBreakdown: charge.CostBreakdown(processed),
		MonthlyStats:  monthly,
	}, nil
}

func (s *ChargeService) load(ctx context.Context, userID int64) ([]models.ChargeRecord, models.TariffSettings, error) {
	records, err := s.charges.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.TariffSettings{}, err
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return records, models.DefaultSettings(), nil
		}
		return nil, models.TariffSettings{}, err
	}
	return records, *settings, nil
}

func (s *ChargeService) notify(userID int64, event ws.Event) {
	if s.notifier != nil {
		s.notifier.Notify(userID, event)
	}
}

func validateRecord(rec models.ChargeRecord) error {
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	if rec.Odometer < 0 {
		return fmt.Errorf("%w: odometer must not be negative", ErrInvalidRecord)
	}
	if rec.StartPercentage < 0 || rec.StartPercentage > 100 || rec.EndPercentage < 0 || rec.EndPercentage > 100 {
		return fmt.Errorf("%w: percentages must be within 0-100", ErrInvalidRecord)
	}
	if rec.EndPercentage <= rec.StartPercentage {
		return fmt.Errorf("%w: end percentage must be greater than start", ErrInvalidRecord)
	}
	if !rec.Tariff.Valid() {
		return fmt.Errorf("%w: unknown tariff %q", ErrInvalidRecord, rec.Tariff)
	}
	if rec.Tariff == models.TariffQuickCharge {
		if rec.CustomPrice == nil || *rec.CustomPrice <= 0 {
			return fmt.Errorf("%w: quick charge requires a positive custom price", ErrInvalidRecord)
		}
	} else if rec.CustomPrice != nil {
		return fmt.Errorf("%w: custom price only applies to quick charge", ErrInvalidRecord)
	}
	return nil
}
