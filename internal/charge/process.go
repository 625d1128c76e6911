package charge

import (
	"math"
	"sort"

	"chargelog/internal/models"
)

// AC charging loses energy between the wall plug and the battery; the grid
// meter bills 12% more than what ends up stored. DC fast charging points
// meter at the battery side, so no adjustment applies there.
const acLossFactor = 1.12

// Process derives billing and efficiency metrics for a set of raw charge
// records. The input is copied and sorted by odometer ascending; the input
// slice is never mutated. Pure and total: unresolvable prices degrade to 0,
// non-increasing odometer deltas degrade to nil consumption, never an error.
func Process(records []models.ChargeRecord, settings models.TariffSettings) []models.ProcessedCharge {
	sorted := make([]models.ChargeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Odometer < sorted[j].Odometer
	})

	processed := make([]models.ProcessedCharge, 0, len(sorted))
	for i, rec := range sorted {
		batteryKwh := batteryEnergy(rec, settings)

		gridKwh := batteryKwh
		if rec.Tariff.IsAC() {
			gridKwh = batteryKwh * acLossFactor
		}

		price := resolvePrice(rec, settings)
		cost := gridKwh * price

		var distance *int
		var consumption *float64
		if i > 0 {
			prev := sorted[i-1]
			delta := rec.Odometer - prev.Odometer
			distance = &delta
			if delta > 0 {
				// The energy that covered this distance is what the
				// previous charge put into the battery.
				c := round2(batteryEnergy(prev, settings) / float64(delta) * 100)
				consumption = &c
			}
		}

		processed = append(processed, models.ProcessedCharge{
			ChargeRecord:        rec,
			KwhAdded:            round2(gridKwh),
			Cost:                round2(cost),
			PricePerKwh:         round4(price),
			DistanceDriven:      distance,
			ConsumptionKwh100km: consumption,
		})
	}

	return processed
}

func batteryEnergy(rec models.ChargeRecord, settings models.TariffSettings) float64 {
	percentAdded := rec.EndPercentage - rec.StartPercentage
	return float64(percentAdded) / 100 * settings.BatteryCapacity
}

func resolvePrice(rec models.ChargeRecord, settings models.TariffSettings) float64 {
	if rec.Tariff == models.TariffQuickCharge {
		if rec.CustomPrice == nil {
			return 0
		}
		return *rec.CustomPrice
	}
	return settings.PriceFor(rec.Tariff)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
