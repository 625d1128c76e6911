package charge

import (
	"fmt"
	"sort"

	"chargelog/internal/models"
)

// Period selects the grouping granularity for Aggregate.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod validates a period string coming from the API.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Aggregate groups processed records into per-period statistics. When filter
// is non-empty only records whose tariff is in the set survive. Group keys
// are zero-padded big-endian strings (YYYY, YYYY-MM, YYYY-Www), so the
// lexicographic output order is also chronological. Weekly keys use ISO-8601
// week numbering with the ISO week-based year.
func Aggregate(records []models.ProcessedCharge, period Period, filter []models.Tariff) []models.PeriodStat {
	var allowed map[models.Tariff]struct{}
	if len(filter) > 0 {
		allowed = make(map[models.Tariff]struct{}, len(filter))
		for _, t := range filter {
			allowed[t] = struct{}{}
		}
	}

	groups := make(map[string][]models.ProcessedCharge)
	for _, rec := range records {
		if allowed != nil {
			if _, ok := allowed[rec.Tariff]; !ok {
				continue
			}
		}
		key := groupKey(rec, period)
		groups[key] = append(groups[key], rec)
	}

	stats := make([]models.PeriodStat, 0, len(groups))
	for key, group := range groups {
		var totalKwh, totalCost float64
		var totalDistance int
		for _, rec := range group {
			totalKwh += rec.KwhAdded
			totalCost += rec.Cost
			if rec.DistanceDriven != nil {
				totalDistance += *rec.DistanceDriven
			}
		}

		var avgConsumption float64
		if totalDistance > 0 {
			avgConsumption = totalKwh / float64(totalDistance) * 100
		}

		stats = append(stats, models.PeriodStat{
			Name:           key,
			TotalKwh:       round2(totalKwh),
			TotalCost:      round2(totalCost),
			TotalDistance:  float64(totalDistance),
			AvgConsumption: round2(avgConsumption),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

func groupKey(rec models.ProcessedCharge, period Period) string {
	switch period {
	case PeriodYearly:
		return rec.Date.Format("2006")
	case PeriodWeekly:
		year, week := rec.Date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return rec.Date.Format("2006-01")
	}
}

// Summary holds the lifetime dashboard totals.
type Summary struct {
	TotalKwh       float64                 `json:"total_kwh"`
	TotalCost      float64                 `json:"total_cost"`
	TotalDistance  int                     `json:"total_distance"`
	AvgConsumption float64                 `json:"avg_consumption"`
	LastCharge     *models.ProcessedCharge `json:"last_charge,omitempty"`
}

// Summarize computes lifetime totals over all processed records. The last
// charge is the one with the highest odometer (records are already sorted).
func Summarize(records []models.ProcessedCharge) Summary {
	var s Summary
	for _, rec := range records {
		s.TotalKwh += rec.KwhAdded
		s.TotalCost += rec.Cost
		if rec.DistanceDriven != nil {
			s.TotalDistance += *rec.DistanceDriven
		}
	}
	if s.TotalDistance > 0 {
		s.AvgConsumption = s.TotalKwh / float64(s.TotalDistance) * 100
	}
	s.TotalKwh = round2(s.TotalKwh)
	s.TotalCost = round2(s.TotalCost)
	s.AvgConsumption = round2(s.AvgConsumption)
	if len(records) > 0 {
		last := records[len(records)-1]
		s.LastCharge = &last
	}
	return s
}

// BreakdownSlice is one wedge of the dashboard cost pie.
type BreakdownSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CostBreakdown splits total cost into off-peak, peak and quick-charge
// buckets. Bucketing matches on the tariff tag; empty buckets are dropped.
func CostBreakdown(records []models.ProcessedCharge) []BreakdownSlice {
	var offPeak, peak, quick float64
	for _, rec := range records {
		switch {
		case rec.Tariff.IsOffPeakKind():
			offPeak += rec.Cost
		case rec.Tariff.IsPeakKind():
			peak += rec.Cost
		case rec.Tariff == models.TariffQuickCharge:
			quick += rec.Cost
		}
	}

	slices := []BreakdownSlice{
		{Name: "Heures Creuses", Value: round2(offPeak)},
		{Name: "Heures Pleines", Value: round2(peak)},
		{Name: "Recharge Rapide", Value: round2(quick)},
	}

	out := slices[:0]
	for _, s := range slices {
		if s.Value > 0 {
			out = append(out, s)
		}
	}
	return out
}
