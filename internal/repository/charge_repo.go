package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chargelog/internal/models"
)

// ErrChargeNotFound represents missing charge rows.
var ErrChargeNotFound = errors.New("charge record not found")

// ChargeRepository persists raw charge records. Derived metrics are never
// stored; reads return raw rows only.
type ChargeRepository struct {
	db *sql.DB
}

// NewChargeRepository returns repository instance.
func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

// Create inserts a new charge record for the user.
func (r *ChargeRepository) Create(ctx context.Context, userID int64, rec *models.ChargeRecord) error {
	const query = `
		INSERT INTO charge_records (user_id, date, odometer, start_percentage, end_percentage, tariff, custom_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		userID,
		rec.Date,
		rec.Odometer,
		rec.StartPercentage,
		rec.EndPercentage,
		string(rec.Tariff),
		rec.CustomPrice,
	).Scan(&rec.ID)
}

// CreateBatch inserts records in one transaction; used by the import
// endpoint after deduplication.
func (r *ChargeRepository) CreateBatch(ctx context.Context, userID int64, records []models.ChargeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO charge_records (user_id, date, odometer, start_percentage, end_percentage, tariff, custom_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			userID,
			rec.Date,
			rec.Odometer,
			rec.StartPercentage,
			rec.EndPercentage,
			string(rec.Tariff),
			rec.CustomPrice,
		); err != nil {
			return fmt.Errorf("insert charge at odometer %d: %w", rec.Odometer, err)
		}
	}

	return tx.Commit()
}

// ListByUser returns the user's raw charge history, unordered from the
// caller's point of view (processing sorts by odometer anyway).
func (r *ChargeRepository) ListByUser(ctx context.Context, userID int64) ([]models.ChargeRecord, error) {
	const query = `
		SELECT id, date, odometer, start_percentage, end_percentage, tariff, custom_price
		FROM charge_records
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ChargeRecord
	for rows.Next() {
		var rec models.ChargeRecord
		var tariff string
		if err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.Odometer,
			&rec.StartPercentage,
			&rec.EndPercentage,
			&tariff,
			&rec.CustomPrice,
		); err != nil {
			return nil, err
		}
		rec.Tariff = models.Tariff(tariff)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes one record owned by the user.
func (r *ChargeRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM charge_records WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrChargeNotFound
	}
	return nil
}
