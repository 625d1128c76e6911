package models

// TariffSettings is the per-user pricing configuration. One row per user;
// missing configuration falls back to DefaultSettings.
type TariffSettings struct {
	BatteryCapacity        float64 `db:"battery_capacity" json:"battery_capacity"`
	PricePeak              float64 `db:"price_peak" json:"price_peak"`
	PriceOffPeak           float64 `db:"price_off_peak" json:"price_off_peak"`
	PriceTempoBluePeak     float64 `db:"price_tempo_blue_peak" json:"price_tempo_blue_peak"`
	PriceTempoBlueOffPeak  float64 `db:"price_tempo_blue_off_peak" json:"price_tempo_blue_off_peak"`
	PriceTempoWhitePeak    float64 `db:"price_tempo_white_peak" json:"price_tempo_white_peak"`
	PriceTempoWhiteOffPeak float64 `db:"price_tempo_white_off_peak" json:"price_tempo_white_off_peak"`
	PriceTempoRedPeak      float64 `db:"price_tempo_red_peak" json:"price_tempo_red_peak"`
	PriceTempoRedOffPeak   float64 `db:"price_tempo_red_off_peak" json:"price_tempo_red_off_peak"`
	RecapEmail             string  `db:"recap_email" json:"recap_email"`
}

// DefaultSettings returns the out-of-the-box configuration applied to users
// who have not saved their own yet (Renault Zoe capacity, current EDF rates).
func DefaultSettings() TariffSettings {
	return TariffSettings{
		BatteryCapacity:        52,
		PricePeak:              0.2516,
		PriceOffPeak:           0.1828,
		PriceTempoBluePeak:     0.1798,
		PriceTempoBlueOffPeak:  0.1296,
		PriceTempoWhitePeak:    0.3022,
		PriceTempoWhiteOffPeak: 0.1486,
		PriceTempoRedPeak:      0.7562,
		PriceTempoRedOffPeak:   0.1526,
	}
}

// PriceFor resolves the fixed per-kWh price for an AC tariff kind. Quick
// charge and unknown kinds resolve to 0; quick charge pricing comes from the
// record's custom price instead.
func (s TariffSettings) PriceFor(t Tariff) float64 {
	switch t {
	case TariffPeak:
		return s.PricePeak
	case TariffOffPeak:
		return s.PriceOffPeak
	case TariffTempoBluePeak:
		return s.PriceTempoBluePeak
	case TariffTempoBlueOffPeak:
		return s.PriceTempoBlueOffPeak
	case TariffTempoWhitePeak:
		return s.PriceTempoWhitePeak
	case TariffTempoWhiteOffPeak:
		return s.PriceTempoWhiteOffPeak
	case TariffTempoRedPeak:
		return s.PriceTempoRedPeak
	case TariffTempoRedOffPeak:
		return s.PriceTempoRedOffPeak
	default:
		return 0
	}
}
