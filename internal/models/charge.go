package models

import "time"

// ChargeRecord is a raw charge session as entered by the user. Immutable
// once created; only raw records are persisted, derived values are
// recomputed on every read.
type ChargeRecord struct {
	ID              int64     `db:"id" json:"id"`
	Date            time.Time `db:"date" json:"date"`
	Odometer        int       `db:"odometer" json:"odometer"`
	StartPercentage int       `db:"start_percentage" json:"start_percentage"`
	EndPercentage   int       `db:"end_percentage" json:"end_percentage"`
	Tariff          Tariff    `db:"tariff" json:"tariff"`
	CustomPrice     *float64  `db:"custom_price" json:"custom_price,omitempty"`
}

// ProcessedCharge is a ChargeRecord enriched with derived metrics. Distance
// and consumption are nil for the record with the lowest odometer, and
// consumption is nil whenever the odometer delta is not positive.
type ProcessedCharge struct {
	ChargeRecord
	KwhAdded            float64  `json:"kwh_added"`
	Cost                float64  `json:"cost"`
	PricePerKwh         float64  `json:"price_per_kwh"`
	DistanceDriven      *int     `json:"distance_driven"`
	ConsumptionKwh100km *float64 `json:"consumption_kwh_100km"`
}

// PeriodStat is one aggregated row for a weekly/monthly/yearly group.
type PeriodStat struct {
	Name           string  `json:"name"`
	TotalKwh       float64 `json:"total_kwh"`
	TotalCost      float64 `json:"total_cost"`
	TotalDistance  float64 `json:"total_distance"`
	AvgConsumption float64 `json:"avg_consumption"`
}
