package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"chargelog/internal/models"
)

var csvHeader = []string{
	"Date", "Kilométrage", "Batterie", "kWh Ajoutés", "Coût", "Tarif", "Prix/kWh", "Conso. (kWh/100km)",
}

// WriteCSV renders processed charges as the semicolon-separated history
// file. A UTF-8 BOM is written first so spreadsheet tools pick up the
// accented headers; the import side accepts the same format back.
func WriteCSV(w io.Writer, charges []models.ProcessedCharge) error {
	if _, err := w.Write([]byte("\xef\xbb\xbf")); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, c := range charges {
		consumption := ""
		if c.ConsumptionKwh100km != nil {
			consumption = fmt.Sprintf("%.2f", *c.ConsumptionKwh100km)
		}
		row := []string{
			c.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", c.Odometer),
			fmt.Sprintf("%d%% → %d%%", c.StartPercentage, c.EndPercentage),
			fmt.Sprintf("%.2f", c.KwhAdded),
			fmt.Sprintf("%.2f", c.Cost),
			c.Tariff.Label(),
			fmt.Sprintf("%.4f", c.PricePerKwh),
			consumption,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
