package importer

import (
	"strings"
	"testing"

	"chargelog/internal/models"
)

func TestParseCSVSplitBatteryColumns(t *testing.T) {
	input := "Date;Kilométrage (km);Batterie Avant (%);Batterie Après (%);Tarif;Prix/kWh (€)\n" +
		"2024-03-01;12500;20;80;Heures Creuses;\n" +
		"2024-03-10;12900;10;95;Recharge borne rapide;0,59\n"

	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Errors)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}

	first := result.Records[0]
	if first.Odometer != 12500 || first.StartPercentage != 20 || first.EndPercentage != 80 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Tariff != models.TariffOffPeak {
		t.Fatalf("expected off_peak tariff, got %s", first.Tariff)
	}

	second := result.Records[1]
	if second.Tariff != models.TariffQuickCharge {
		t.Fatalf("expected quick_charge tariff, got %s", second.Tariff)
	}
	if second.CustomPrice == nil || *second.CustomPrice != 0.59 {
		t.Fatalf("expected custom price 0.59, got %v", second.CustomPrice)
	}
}

func TestParseCSVCombinedBatteryColumn(t *testing.T) {
	input := "\xef\xbb\xbfDate;Kilométrage;Batterie;Tarif;Prix/kWh\n" +
		"\"2024-04-02\";\"13400\";\"30% → 85%\";\"Heures Pleines\";\"\"\n"

	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Errors)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.StartPercentage != 30 || rec.EndPercentage != 85 {
		t.Fatalf("combined battery column not parsed: %+v", rec)
	}
	if rec.Tariff != models.TariffPeak {
		t.Fatalf("expected peak tariff, got %s", rec.Tariff)
	}
}

func TestParseCSVAcceptsTariffTags(t *testing.T) {
	input := "date;kilométrage;batterie avant (%);batterie après (%);tarif\n" +
		"2024-05-01;500;40;90;tempo_red_off_peak\n"

	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Tariff != models.TariffTempoRedOffPeak {
		t.Fatalf("tariff tag not accepted: %+v", result.Records)
	}
}

func TestParseCSVRowDiagnostics(t *testing.T) {
	input := "Date;Kilométrage;Batterie Avant (%);Batterie Après (%);Tarif;Prix/kWh\n" +
		"not-a-date;100;20;80;Heures Creuses;\n" + // bad date
		"2024-01-01;200;80;20;Heures Creuses;\n" + // end <= start
		"2024-01-02;300;20;80;Super Tarif;\n" + // unknown tariff
		"2024-01-03;400;20;80;Recharge borne rapide;\n" + // missing custom price
		"2024-01-04;500;20;180;Heures Creuses;\n" // percentage out of range

	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 0 {
		t.Fatalf("expected no valid records, got %d", len(result.Records))
	}
	if len(result.Errors) != 5 {
		t.Fatalf("expected 5 diagnostics, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "row 2:") {
		t.Fatalf("diagnostic should carry row number, got %q", result.Errors[0])
	}
}

func TestParseCSVSkipsBlankRows(t *testing.T) {
	input := "Date;Kilométrage;Batterie Avant (%);Batterie Après (%);Tarif\n" +
		"2024-01-01;100;20;80;Heures Creuses\n" +
		";;;;\n"

	result, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}
	if len(result.Errors) != 0 {
		t.Fatalf("blank row should not produce diagnostics: %v", result.Errors)
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestParseCSVUnknownHeader(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("foo;bar\n1;2\n")); err == nil {
		t.Fatalf("expected error for unrecognised header")
	}
}
