package usecase_test

import (
	"time"

	"retail-dashboard/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleTransactions spans two months, three categories and both genders.
// 2025-01-06 is a Monday.
func sampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1, SaleDate: day(2025, 1, 6).Add(10 * time.Hour), CustomerID: 100, Gender: "Male", Age: 22, Category: "Beauty", Quantity: 2, PricePerUnit: 50, COGS: 60, TotalSale: 100},
		{ID: 2, SaleDate: day(2025, 1, 7), CustomerID: 101, Gender: "Female", Age: 34, Category: "Clothing", Quantity: 4, PricePerUnit: 50, COGS: 150, TotalSale: 200},
		{ID: 3, SaleDate: day(2025, 1, 20), CustomerID: 100, Gender: "Male", Age: 22, Category: "Electronics", Quantity: 1, PricePerUnit: 500, COGS: 300, TotalSale: 500},
		{ID: 4, SaleDate: day(2025, 2, 3), CustomerID: 102, Gender: "Female", Age: 58, Category: "Clothing", Quantity: 3, PricePerUnit: 100, COGS: 120, TotalSale: 300},
		{ID: 5, SaleDate: day(2025, 2, 14).Add(23 * time.Hour), CustomerID: 103, Gender: "Male", Age: 45, Category: "Beauty", Quantity: 1, PricePerUnit: 25, COGS: 30, TotalSale: 25},
	}
}
