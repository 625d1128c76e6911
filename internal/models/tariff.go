package models

import "fmt"

// Tariff is a closed enumeration of the billing kinds a charge session can
// be recorded under. All kinds except TariffQuickCharge are AC tariffs with
// a fixed per-kWh price configured in TariffSettings; quick charge is DC
// with a per-session custom price.
type Tariff string

const (
	TariffPeak              Tariff = "peak"
	TariffOffPeak           Tariff = "off_peak"
	TariffTempoBluePeak     Tariff = "tempo_blue_peak"
	TariffTempoBlueOffPeak  Tariff = "tempo_blue_off_peak"
	TariffTempoWhitePeak    Tariff = "tempo_white_peak"
	TariffTempoWhiteOffPeak Tariff = "tempo_white_off_peak"
	TariffTempoRedPeak      Tariff = "tempo_red_peak"
	TariffTempoRedOffPeak   Tariff = "tempo_red_off_peak"
	TariffQuickCharge       Tariff = "quick_charge"
)

var tariffLabels = map[Tariff]string{
	TariffPeak:              "Heures Pleines",
	TariffOffPeak:           "Heures Creuses",
	TariffTempoBluePeak:     "Tempo Bleu - Heures Pleines",
	TariffTempoBlueOffPeak:  "Tempo Bleu - Heures Creuses",
	TariffTempoWhitePeak:    "Tempo Blanc - Heures Pleines",
	TariffTempoWhiteOffPeak: "Tempo Blanc - Heures Creuses",
	TariffTempoRedPeak:      "Tempo Rouge - Heures Pleines",
	TariffTempoRedOffPeak:   "Tempo Rouge - Heures Creuses",
	TariffQuickCharge:       "Recharge borne rapide",
}

// AllTariffs returns every known tariff kind in display order.
func AllTariffs() []Tariff {
	return []Tariff{
		TariffPeak,
		TariffOffPeak,
		TariffTempoBluePeak,
		TariffTempoBlueOffPeak,
		TariffTempoWhitePeak,
		TariffTempoWhiteOffPeak,
		TariffTempoRedPeak,
		TariffTempoRedOffPeak,
		TariffQuickCharge,
	}
}

// Valid reports whether t is a member of the enumeration.
func (t Tariff) Valid() bool {
	_, ok := tariffLabels[t]
	return ok
}

// IsAC reports whether t is billed through lossy AC charging. Quick charge
// is the only DC kind.
func (t Tariff) IsAC() bool {
	return t.Valid() && t != TariffQuickCharge
}

// IsOffPeakKind reports whether t is one of the off-peak sub-rates. Used by
// the dashboard cost breakdown; matching happens on the tag, never on the
// display label.
func (t Tariff) IsOffPeakKind() bool {
	switch t {
	case TariffOffPeak, TariffTempoBlueOffPeak, TariffTempoWhiteOffPeak, TariffTempoRedOffPeak:
		return true
	}
	return false
}

// IsPeakKind reports whether t is one of the peak sub-rates.
func (t Tariff) IsPeakKind() bool {
	switch t {
	case TariffPeak, TariffTempoBluePeak, TariffTempoWhitePeak, TariffTempoRedPeak:
		return true
	}
	return false
}

// Label returns the French display label shown in the UI and used in
// CSV import/export.
func (t Tariff) Label() string {
	if label, ok := tariffLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseTariff resolves either the stable tag or the display label into a
// Tariff value.
func ParseTariff(s string) (Tariff, error) {
	if t := Tariff(s); t.Valid() {
		return t, nil
	}
	for t, label := range tariffLabels {
		if label == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tariff %q", s)
}
