package gateway

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"retail-dashboard/internal/domain"

	"github.com/shopspring/decimal"
)

// exportColumns extends the table columns with the derived profit figures.
var exportColumns = append(append([]string{}, transactionColumns...), "profit", "profit_margin")

// ExportFileName names a download created at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("retail_sales_filtered_%s.csv", t.Format("20060102_150405"))
}

// SerializeCSV encodes records, header first, as UTF-8 CSV.
func SerializeCSV(records []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV streams records to w. Money columns carry two decimals; the margin
// is left blank when the total sale is zero.
func WriteCSV(w io.Writer, records []domain.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, tx := range records {
		margin := ""
		if m, ok := tx.ProfitMargin(); ok {
			margin = decimal.NewFromFloat(m).StringFixed(2)
		}
		row := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.SaleDate.Format(time.DateOnly),
			strconv.FormatInt(tx.CustomerID, 10),
			tx.Gender,
			strconv.Itoa(tx.Age),
			tx.Category,
			strconv.Itoa(tx.Quantity),
			money(tx.PricePerUnit),
			money(tx.COGS),
			money(tx.TotalSale),
			decimal.NewFromFloat(tx.TotalSale).Sub(decimal.NewFromFloat(tx.COGS)).StringFixed(2),
			margin,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", tx.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
