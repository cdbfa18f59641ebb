package domain

import "time"

// Transaction represents a single retail sale row from the RETAIL_SALES table.
type Transaction struct {
	ID           int64     `json:"transaction_id"`
	SaleDate     time.Time `json:"sale_date"`
	CustomerID   int64     `json:"customer_id"`
	Gender       string    `json:"gender"`
	Age          int       `json:"age"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	COGS         float64   `json:"cogs"`
	TotalSale    float64   `json:"total_sale"`
}

// Profit is the total sale amount minus the cost of goods sold.
func (t Transaction) Profit() float64 {
	return t.TotalSale - t.COGS
}

// ProfitMargin returns profit as a percentage of the total sale.
// ok is false when the total sale is zero and the margin is undefined.
func (t Transaction) ProfitMargin() (pct float64, ok bool) {
	if t.TotalSale == 0 {
		return 0, false
	}
	return t.Profit() / t.TotalSale * 100, true
}

// Day truncates the sale date to its calendar day.
func (t Transaction) Day() time.Time {
	return DateOnly(t.SaleDate)
}

// DateOnly drops the clock part of t. The calendar day is taken in t's own
// location and returned as UTC midnight so days compare across zones.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
