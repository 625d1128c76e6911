package charge

import (
	"math"
	"sort"
	"testing"

	"chargelog/internal/models"
)

func sampleProcessed(t *testing.T) []models.ProcessedCharge {
	t.Helper()
	records := []models.ChargeRecord{
		{ID: 1, Date: day("2024-01-08"), Odometer: 1000, StartPercentage: 20, EndPercentage: 80, Tariff: models.TariffOffPeak},
		{ID: 2, Date: day("2024-01-20"), Odometer: 1300, StartPercentage: 30, EndPercentage: 90, Tariff: models.TariffPeak},
		{ID: 3, Date: day("2024-02-03"), Odometer: 1700, StartPercentage: 10, EndPercentage: 80, Tariff: models.TariffOffPeak},
		{ID: 4, Date: day("2024-02-18"), Odometer: 2100, StartPercentage: 15, EndPercentage: 95, Tariff: models.TariffQuickCharge, CustomPrice: floatPtr(0.55)},
		{ID: 5, Date: day("2025-01-02"), Odometer: 2600, StartPercentage: 20, EndPercentage: 70, Tariff: models.TariffTempoBlueOffPeak},
	}
	settings := models.TariffSettings{
		BatteryCapacity:       50,
		PricePeak:             0.25,
		PriceOffPeak:          0.18,
		PriceTempoBlueOffPeak: 0.13,
	}
	return Process(records, settings)
}

func TestAggregateMonthlyGroupsAndSorts(t *testing.T) {
	stats := Aggregate(sampleProcessed(t), PeriodMonthly, nil)

	if len(stats) != 3 {
		t.Fatalf("expected 3 monthly groups, got %d", len(stats))
	}
	wantNames := []string{"2024-01", "2024-02", "2025-01"}
	for i, want := range wantNames {
		if stats[i].Name != want {
			t.Fatalf("expected group %d to be %s, got %s", i, want, stats[i].Name)
		}
	}
	if !sort.SliceIsSorted(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name }) {
		t.Fatalf("stats not sorted by name")
	}
}

func TestAggregateYearlyKeys(t *testing.T) {
	stats := Aggregate(sampleProcessed(t), PeriodYearly, nil)

	if len(stats) != 2 {
		t.Fatalf("expected 2 yearly groups, got %d", len(stats))
	}
	if stats[0].Name != "2024" || stats[1].Name != "2025" {
		t.Fatalf("unexpected yearly keys: %s, %s", stats[0].Name, stats[1].Name)
	}
}

func TestAggregateWeeklyUsesISOWeekYear(t *testing.T) {
	records := []models.ChargeRecord{
		// Monday 2024-12-30 belongs to ISO week 1 of 2025.
		{ID: 1, Date: day("2024-12-30"), Odometer: 100, StartPercentage: 20, EndPercentage: 60, Tariff: models.TariffOffPeak},
		{ID: 2, Date: day("2024-12-23"), Odometer: 50, StartPercentage: 20, EndPercentage: 60, Tariff: models.TariffOffPeak},
	}
	processed := Process(records, models.TariffSettings{BatteryCapacity: 50, PriceOffPeak: 0.18})

	stats := Aggregate(processed, PeriodWeekly, nil)
	if len(stats) != 2 {
		t.Fatalf("expected 2 weekly groups, got %d", len(stats))
	}
	if stats[0].Name != "2024-W52" {
		t.Fatalf("expected first group 2024-W52, got %s", stats[0].Name)
	}
	if stats[1].Name != "2025-W01" {
		t.Fatalf("expected second group 2025-W01, got %s", stats[1].Name)
	}
}

func TestAggregateSumsMatchProcessedTotals(t *testing.T) {
	processed := sampleProcessed(t)
	stats := Aggregate(processed, PeriodMonthly, nil)

	var wantCost, gotCost float64
	for _, rec := range processed {
		wantCost += rec.Cost
	}
	for _, stat := range stats {
		gotCost += stat.TotalCost
	}
	if math.Abs(wantCost-gotCost) > 0.01 {
		t.Fatalf("aggregated cost %v does not match processed total %v", gotCost, wantCost)
	}
}

func TestAggregateTariffFilter(t *testing.T) {
	processed := sampleProcessed(t)

	stats := Aggregate(processed, PeriodMonthly, []models.Tariff{models.TariffOffPeak})
	for _, stat := range stats {
		if stat.TotalKwh == 0 {
			t.Fatalf("filtered group %s has zero energy", stat.Name)
		}
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 groups for off-peak filter, got %d", len(stats))
	}

	var filteredCost float64
	for _, rec := range processed {
		if rec.Tariff == models.TariffOffPeak {
			filteredCost += rec.Cost
		}
	}
	var gotCost float64
	for _, stat := range stats {
		gotCost += stat.TotalCost
	}
	if math.Abs(filteredCost-gotCost) > 0.01 {
		t.Fatalf("filtered cost %v does not match %v", gotCost, filteredCost)
	}
}

func TestAggregateFilterWithoutMatchesReturnsEmpty(t *testing.T) {
	records := []models.ChargeRecord{
		{ID: 1, Date: day("2024-01-08"), Odometer: 1000, StartPercentage: 20, EndPercentage: 80, Tariff: models.TariffOffPeak},
	}
	processed := Process(records, models.TariffSettings{BatteryCapacity: 50, PriceOffPeak: 0.18})

	stats := Aggregate(processed, PeriodMonthly, []models.Tariff{models.TariffQuickCharge})
	if len(stats) != 0 {
		t.Fatalf("expected empty result, got %d groups", len(stats))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	stats := Aggregate(nil, PeriodMonthly, nil)
	if len(stats) != 0 {
		t.Fatalf("expected empty result, got %d groups", len(stats))
	}
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"weekly", "monthly", "yearly"} {
		if _, err := ParsePeriod(valid); err != nil {
			t.Fatalf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParsePeriod("daily"); err == nil {
		t.Fatalf("expected error for unknown period")
	}
}

func TestSummarize(t *testing.T) {
	processed := sampleProcessed(t)
	summary := Summarize(processed)

	var wantKwh float64
	var wantDistance int
	for _, rec := range processed {
		wantKwh += rec.KwhAdded
		if rec.DistanceDriven != nil {
			wantDistance += *rec.DistanceDriven
		}
	}

	if math.Abs(summary.TotalKwh-round2(wantKwh)) > 0.01 {
		t.Fatalf("expected total kwh %v, got %v", round2(wantKwh), summary.TotalKwh)
	}
	if summary.TotalDistance != wantDistance {
		t.Fatalf("expected total distance %d, got %d", wantDistance, summary.TotalDistance)
	}
	if summary.LastCharge == nil || summary.LastCharge.Odometer != 2600 {
		t.Fatalf("expected last charge at odometer 2600, got %+v", summary.LastCharge)
	}

	empty := Summarize(nil)
	if empty.LastCharge != nil || empty.TotalCost != 0 {
		t.Fatalf("expected zero summary for empty input, got %+v", empty)
	}
}

func TestCostBreakdownGroupsByTag(t *testing.T) {
	processed := sampleProcessed(t)
	breakdown := CostBreakdown(processed)

	byName := make(map[string]float64, len(breakdown))
	for _, slice := range breakdown {
		byName[slice.Name] = slice.Value
	}

	var offPeak, peak, quick float64
	for _, rec := range processed {
		switch rec.Tariff {
		case models.TariffOffPeak, models.TariffTempoBlueOffPeak:
			offPeak += rec.Cost
		case models.TariffPeak:
			peak += rec.Cost
		case models.TariffQuickCharge:
			quick += rec.Cost
		}
	}

	if math.Abs(byName["Heures Creuses"]-round2(offPeak)) > 0.01 {
		t.Fatalf("off-peak bucket mismatch: %v vs %v", byName["Heures Creuses"], offPeak)
	}
	if math.Abs(byName["Heures Pleines"]-round2(peak)) > 0.01 {
		t.Fatalf("peak bucket mismatch: %v vs %v", byName["Heures Pleines"], peak)
	}
	if math.Abs(byName["Recharge Rapide"]-round2(quick)) > 0.01 {
		t.Fatalf("quick bucket mismatch: %v vs %v", byName["Recharge Rapide"], quick)
	}
}

func TestCostBreakdownDropsEmptyBuckets(t *testing.T) {
	records := []models.ChargeRecord{
		{ID: 1, Date: day("2024-01-08"), Odometer: 1000, StartPercentage: 20, EndPercentage: 80, Tariff: models.TariffOffPeak},
	}
	processed := Process(records, models.TariffSettings{BatteryCapacity: 50, PriceOffPeak: 0.18})

	breakdown := CostBreakdown(processed)
	if len(breakdown) != 1 {
		t.Fatalf("expected single bucket, got %d", len(breakdown))
	}
	if breakdown[0].Name != "Heures Creuses" {
		t.Fatalf("unexpected bucket %s", breakdown[0].Name)
	}
}
