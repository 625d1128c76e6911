package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"chargelog/internal/charge"
	"chargelog/internal/importer"
	"chargelog/internal/models"
)

func TestWriteCSVRoundTripsThroughImporter(t *testing.T) {
	price := 0.59
	records := []models.ChargeRecord{
		{ID: 1, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Odometer: 1000, StartPercentage: 20, EndPercentage: 80, Tariff: models.TariffOffPeak},
		{ID: 2, Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Odometer: 1400, StartPercentage: 10, EndPercentage: 95, Tariff: models.TariffQuickCharge, CustomPrice: &price},
	}
	processed := charge.Process(records, models.TariffSettings{BatteryCapacity: 50, PriceOffPeak: 0.18})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, processed); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\xef\xbb\xbf") {
		t.Fatalf("expected BOM prefix")
	}
	if !strings.Contains(out, "20% → 80%") {
		t.Fatalf("expected combined battery cell, got:\n%s", out)
	}

	result, err := importer.ParseCSV(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("re-import diagnostics: %v", result.Errors)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 re-imported records, got %d", len(result.Records))
	}
	if result.Records[0].Odometer != 1000 || result.Records[1].Odometer != 1400 {
		t.Fatalf("odometers lost in round trip: %+v", result.Records)
	}
	if result.Records[1].CustomPrice == nil || *result.Records[1].CustomPrice != 0.59 {
		t.Fatalf("custom price lost in round trip: %v", result.Records[1].CustomPrice)
	}
}

func TestWriteCSVEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}
