package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"retail-dashboard/internal/domain"
)

// CSVTransactionRepository implements the TransactionRepository interface for a
// CSV snapshot of the RETAIL_SALES table.
type CSVTransactionRepository struct {
	path string
}

// NewCSVTransactionRepository creates a new repository instance reading path.
func NewCSVTransactionRepository(path string) *CSVTransactionRepository {
	return &CSVTransactionRepository{path: path}
}

// FetchAll reads and parses every row of the CSV file.
func (r *CSVTransactionRepository) FetchAll(ctx context.Context) ([]domain.Transaction, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction file %s: %w", r.path, err)
	}
	defer file.Close()

	transactions, err := ReadTransactionsCSV(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}
	return transactions, nil
}

// ReadTransactionsCSV parses transactions from CSV with a header row. Columns
// are matched by name, case-insensitively, and may appear in any order;
// unknown columns are ignored.
func ReadTransactionsCSV(ctx context.Context, src io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(src)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range transactionColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var transactions []domain.Transaction
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record on line %d: %w", line, err)
		}

		tx, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func parseRecord(record []string, index map[string]int) (domain.Transaction, error) {
	field := func(col string) string { return strings.TrimSpace(record[index[col]]) }

	var tx domain.Transaction
	var err error

	if tx.ID, err = strconv.ParseInt(field(colTransactionID), 10, 64); err != nil {
		return tx, fmt.Errorf("could not parse transaction_id '%s': %w", field(colTransactionID), err)
	}
	if tx.SaleDate, err = parseSaleDate(field(colSaleDate)); err != nil {
		return tx, err
	}
	if tx.CustomerID, err = strconv.ParseInt(field(colCustomerID), 10, 64); err != nil {
		return tx, fmt.Errorf("could not parse customer_id '%s': %w", field(colCustomerID), err)
	}
	if tx.Age, err = strconv.Atoi(field(colAge)); err != nil {
		return tx, fmt.Errorf("could not parse age '%s': %w", field(colAge), err)
	}
	if tx.Quantity, err = strconv.Atoi(field(colQuantity)); err != nil {
		return tx, fmt.Errorf("could not parse quantity '%s': %w", field(colQuantity), err)
	}
	if tx.PricePerUnit, err = parseAmount(colPricePerUnit, field(colPricePerUnit)); err != nil {
		return tx, err
	}
	if tx.COGS, err = parseAmount(colCOGS, field(colCOGS)); err != nil {
		return tx, err
	}
	if tx.TotalSale, err = parseAmount(colTotalSale, field(colTotalSale)); err != nil {
		return tx, err
	}
	tx.Gender = field(colGender)
	tx.Category = field(colCategory)

	return tx, nil
}

// parseAmount parses a money column, rejecting NaN and infinities.
func parseAmount(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s '%s': %w", col, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s '%s' is not a finite amount", col, s)
	}
	return v, nil
}

// parseSaleDate accepts a bare date, a MySQL DATETIME or RFC3339.
func parseSaleDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.DateTime, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse sale_date '%s'", s)
}
