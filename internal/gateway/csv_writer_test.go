package gateway

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"retail-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCSV(t *testing.T) {
	records := []domain.Transaction{
		{ID: 180, SaleDate: mustParseTime("2022-11-05T14:30:00Z"), CustomerID: 117, Gender: "Male", Age: 41, Category: "Clothing", Quantity: 3, PricePerUnit: 300, COGS: 129.1, TotalSale: 900},
		{ID: 181, SaleDate: mustParseDate("2022-11-06"), CustomerID: 4, Gender: "Female", Age: 19, Category: "Beauty, Care", Quantity: 0, PricePerUnit: 0, COGS: 5, TotalSale: 0},
	}

	got, err := SerializeCSV(records)
	require.NoError(t, err)

	want := "transaction_id,sale_date,customer_id,gender,age,category,quantity,price_per_unit,cogs,total_sale,profit,profit_margin\n" +
		"180,2022-11-05,117,Male,41,Clothing,3,300.00,129.10,900.00,770.90,85.66\n" +
		"181,2022-11-06,4,Female,19,\"Beauty, Care\",0,0.00,5.00,0.00,-5.00,\n"
	assert.Equal(t, want, string(got))
}

func TestSerializeCSV_Empty(t *testing.T) {
	got, err := SerializeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "transaction_id,sale_date,customer_id,gender,age,category,quantity,price_per_unit,cogs,total_sale,profit,profit_margin\n", string(got))
}

func TestSerializeCSV_RoundTripsThroughReader(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, SaleDate: mustParseDate("2023-03-01"), CustomerID: 10, Gender: "Female", Age: 27, Category: "Electronics", Quantity: 2, PricePerUnit: 150, COGS: 90.5, TotalSale: 300},
	}

	data, err := SerializeCSV(records)
	require.NoError(t, err)

	got, err := ReadTransactionsCSV(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteCSV_PropagatesWriterError(t *testing.T) {
	err := WriteCSV(failingWriter{}, []domain.Transaction{{ID: 1}})
	assert.EqualError(t, err, "broken pipe")
}

func TestExportFileName(t *testing.T) {
	at := time.Date(2025, 9, 1, 8, 5, 3, 0, time.UTC)
	assert.Equal(t, "retail_sales_filtered_20250901_080503.csv", ExportFileName(at))
}
