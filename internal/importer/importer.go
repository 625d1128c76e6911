package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"chargelog/internal/models"
)

// Result carries the outcome of parsing one uploaded file. Records hold the
// rows that passed validation (IDs unset, assigned on insert); Errors holds
// one diagnostic per rejected row.
type Result struct {
	Records []models.ChargeRecord
	Errors  []string
}

// Column names recognised in the header row, lowercased. Matches the CSV
// produced by the export endpoint so a round trip works, plus the split
// battery columns used by hand-maintained spreadsheets.
var headerMapping = map[string]string{
	"date":                "date",
	"kilométrage (km)":    "odometer",
	"kilométrage":         "odometer",
	"batterie avant (%)":  "start",
	"batterie après (%)":  "end",
	"batterie":            "battery",
	"tarif":               "tariff",
	"prix/kwh (€)":        "price",
	"prix/kwh":            "price",
}

var batteryPattern = regexp.MustCompile(`(\d+)\s*%\s*(?:→|->)\s*(\d+)\s*%`)

var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// ParseCSV reads a semicolon-separated charge history file and validates
// every row. Rows missing all required fields are skipped silently (trailing
// blank lines); rows that are present but malformed produce a diagnostic.
// Odometer deduplication against existing records happens at the service
// layer, not here.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("importer: empty file")
		}
		return nil, fmt.Errorf("importer: read header: %w", err)
	}

	columns := make(map[int]string, len(header))
	for i, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if mapped, ok := headerMapping[key]; ok {
			columns[i] = mapped
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("importer: no recognised columns in header")
	}

	result := &Result{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: read row: %w", err)
		}
		line++

		fields := make(map[string]string, len(columns))
		for i, cell := range row {
			if name, ok := columns[i]; ok {
				cell = strings.TrimSpace(cell)
				if cell != "" {
					fields[name] = cell
				}
			}
		}

		rec, diag := parseRow(fields)
		if diag != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", line, diag))
			continue
		}
		if rec == nil {
			continue // blank or incomplete row
		}
		result.Records = append(result.Records, *rec)
	}

	return result, nil
}

func parseRow(fields map[string]string) (*models.ChargeRecord, string) {
	if combined, ok := fields["battery"]; ok {
		if _, hasStart := fields["start"]; !hasStart {
			parts := batteryPattern.FindStringSubmatch(combined)
			if parts == nil {
				return nil, fmt.Sprintf("invalid battery format %q, expected \"X%% → Y%%\"", combined)
			}
			fields["start"] = parts[1]
			fields["end"] = parts[2]
		}
	}

	// Rows with missing required cells are treated as blank filler, the way
	// the spreadsheet import always has.
	for _, name := range []string{"date", "odometer", "start", "end", "tariff"} {
		if _, ok := fields[name]; !ok {
			return nil, ""
		}
	}

	date, ok := parseDate(fields["date"])
	if !ok {
		return nil, fmt.Sprintf("invalid date %q", fields["date"])
	}

	odometer, err := strconv.Atoi(fields["odometer"])
	if err != nil || odometer < 0 {
		return nil, fmt.Sprintf("invalid odometer %q", fields["odometer"])
	}

	start, err := strconv.Atoi(fields["start"])
	if err != nil {
		return nil, fmt.Sprintf("invalid start percentage %q", fields["start"])
	}
	end, err := strconv.Atoi(fields["end"])
	if err != nil {
		return nil, fmt.Sprintf("invalid end percentage %q", fields["end"])
	}
	if start < 0 || start > 100 || end < 0 || end > 100 {
		return nil, fmt.Sprintf("percentages must be within 0-100, got %d and %d", start, end)
	}
	if end <= start {
		return nil, fmt.Sprintf("end percentage %d must be greater than start %d", end, start)
	}

	tariff, err := models.ParseTariff(fields["tariff"])
	if err != nil {
		return nil, fmt.Sprintf("unknown tariff %q", fields["tariff"])
	}

	rec := &models.ChargeRecord{
		Date:            date,
		Odometer:        odometer,
		StartPercentage: start,
		EndPercentage:   end,
		Tariff:          tariff,
	}

	if tariff == models.TariffQuickCharge {
		raw := strings.ReplaceAll(fields["price"], ",", ".")
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return nil, fmt.Sprintf("quick charge requires a positive price per kWh, got %q", fields["price"])
		}
		rec.CustomPrice = &price
	}

	return rec, ""
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// stripBOM removes a UTF-8 byte order mark; the export endpoint writes one
// for spreadsheet compatibility.
func stripBOM(r io.Reader) io.Reader {
	return &bomReader{r: r}
}

type bomReader struct {
	r       io.Reader
	checked bool
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, 3)
		n, err := io.ReadFull(b.r, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		head = head[:n]
		if !strings.HasPrefix(string(head), "\xef\xbb\xbf") {
			b.r = io.MultiReader(strings.NewReader(string(head)), b.r)
		} else {
			b.r = io.MultiReader(strings.NewReader(string(head[3:])), b.r)
		}
	}
	return b.r.Read(p)
}
