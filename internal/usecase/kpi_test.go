package usecase_test

import (
	"testing"

	"retail-dashboard/internal/domain"
	"retail-dashboard/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestComputeKPIs_Scalars(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	assert.InDelta(t, 1125.0, kpis.TotalRevenue, tolerance)
	assert.InDelta(t, 660.0, kpis.TotalCOGS, tolerance)
	assert.InDelta(t, 465.0, kpis.TotalProfit, tolerance)
	assert.InDelta(t, 465.0/1125.0*100, kpis.ProfitMargin, tolerance)
	assert.Equal(t, 5, kpis.TransactionCount)
	assert.Equal(t, 4, kpis.UniqueCustomers)
	assert.InDelta(t, 225.0, kpis.AvgTransactionValue, tolerance)
	assert.InDelta(t, 93.0, kpis.AvgProfitPerTransaction, tolerance)
	assert.InDelta(t, 281.25, kpis.AvgRevenuePerCustomer, tolerance)
	assert.InDelta(t, 29.0, kpis.AverageMargin, tolerance)
	assert.Equal(t, "Clothing", kpis.TopCategory)
	assert.InDelta(t, 500.0, kpis.TopCategoryRevenue, tolerance)
	assert.Equal(t, 40, kpis.DaysShown)
}

func TestComputeKPIs_TwoRecordExample(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, SaleDate: day(2025, 3, 1), CustomerID: 1, TotalSale: 100, COGS: 60},
		{ID: 2, SaleDate: day(2025, 3, 1), CustomerID: 2, TotalSale: 200, COGS: 150},
	}

	kpis := usecase.ComputeKPIs(records)

	assert.InDelta(t, 300.0, kpis.TotalRevenue, tolerance)
	assert.InDelta(t, 90.0, kpis.TotalProfit, tolerance)
	assert.InDelta(t, 30.0, kpis.ProfitMargin, tolerance)
	assert.Equal(t, 1, kpis.DaysShown)
}

func TestComputeKPIs_Empty(t *testing.T) {
	for name, records := range map[string][]domain.Transaction{
		"nil":   nil,
		"empty": {},
		"filtered to nothing": usecase.ApplyFilter(sampleTransactions(), domain.FilterSpec{
			Ages: &domain.AgeRange{Min: 25, Max: 25},
		}),
	} {
		t.Run(name, func(t *testing.T) {
			kpis := usecase.ComputeKPIs(records)

			assert.Zero(t, kpis.TotalRevenue)
			assert.Zero(t, kpis.TotalProfit)
			assert.Zero(t, kpis.ProfitMargin)
			assert.Zero(t, kpis.TransactionCount)
			assert.Zero(t, kpis.UniqueCustomers)
			assert.Zero(t, kpis.AvgTransactionValue)
			assert.Zero(t, kpis.AvgRevenuePerCustomer)
			assert.Zero(t, kpis.DaysShown)
			assert.Empty(t, kpis.TopCategory)

			assert.NotNil(t, kpis.MonthlySales)
			assert.Empty(t, kpis.MonthlySales)
			assert.Empty(t, kpis.CategorySales)
			assert.Empty(t, kpis.WeekdayRevenue)
			assert.Empty(t, kpis.AgeGenderRevenue)
			assert.Empty(t, kpis.MarginDistribution)
			assert.Empty(t, kpis.TopTransactions)
		})
	}
}

func TestComputeKPIs_ZeroSaleGuardsRatios(t *testing.T) {
	records := []domain.Transaction{
		{ID: 1, SaleDate: day(2025, 1, 1), CustomerID: 1, TotalSale: 0, COGS: 0},
		{ID: 2, SaleDate: day(2025, 1, 1), CustomerID: 1, TotalSale: 0, COGS: 5},
	}

	kpis := usecase.ComputeKPIs(records)

	assert.Zero(t, kpis.TotalRevenue)
	assert.InDelta(t, -5.0, kpis.TotalProfit, tolerance)
	assert.Zero(t, kpis.ProfitMargin)
	assert.Zero(t, kpis.AverageMargin)
	assert.Empty(t, kpis.MarginDistribution)
}

func TestComputeKPIs_CategoryGroupingSumsToTotal(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	require.Len(t, kpis.CategorySales, 3)
	var sum float64
	var count int
	for _, c := range kpis.CategorySales {
		sum += c.Revenue
		count += c.TransactionCount
	}
	assert.InDelta(t, kpis.TotalRevenue, sum, tolerance)
	assert.Equal(t, kpis.TransactionCount, count)

	assert.Equal(t, []domain.CategorySales{
		{Category: "Clothing", Revenue: 500, TransactionCount: 2, AverageProfit: 115},
		{Category: "Electronics", Revenue: 500, TransactionCount: 1, AverageProfit: 200},
		{Category: "Beauty", Revenue: 125, TransactionCount: 2, AverageProfit: 17.5},
	}, kpis.CategorySales)
}

func TestComputeKPIs_MonthlySales(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	assert.Equal(t, []domain.MonthlySales{
		{Month: "2025-01", Year: 2025, MonthNumber: 1, Revenue: 800, Profit: 290, TransactionCount: 3},
		{Month: "2025-02", Year: 2025, MonthNumber: 2, Revenue: 325, Profit: 175, TransactionCount: 2},
	}, kpis.MonthlySales)
}

func TestComputeKPIs_WeekdayAndGender(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	assert.Equal(t, []domain.LabeledRevenue{
		{Label: "Monday", Revenue: 900},
		{Label: "Tuesday", Revenue: 200},
		{Label: "Wednesday", Revenue: 0},
		{Label: "Thursday", Revenue: 0},
		{Label: "Friday", Revenue: 25},
		{Label: "Saturday", Revenue: 0},
		{Label: "Sunday", Revenue: 0},
	}, kpis.WeekdayRevenue)

	assert.Equal(t, []domain.LabeledRevenue{
		{Label: "Female", Revenue: 500},
		{Label: "Male", Revenue: 625},
	}, kpis.GenderRevenue)
}

func TestComputeKPIs_AgeGenderRevenue(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	assert.Equal(t, []domain.AgeGenderRevenue{
		{AgeBand: "18-25", Gender: "Male", Revenue: 600},
		{AgeBand: "26-35", Gender: "Female", Revenue: 200},
		{AgeBand: "36-45", Gender: "Male", Revenue: 25},
		{AgeBand: "55+", Gender: "Female", Revenue: 300},
	}, kpis.AgeGenderRevenue)
}

func TestAgeBand(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, "Unknown"},
		{18, "18-25"},
		{25, "18-25"},
		{26, "26-35"},
		{45, "36-45"},
		{55, "46-55"},
		{56, "55+"},
		{100, "55+"},
		{101, "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.AgeBand(tt.age), "age %d", tt.age)
	}
}

func TestComputeKPIs_MarginDistribution(t *testing.T) {
	kpis := usecase.ComputeKPIs(sampleTransactions())

	require.Len(t, kpis.MarginDistribution, usecase.MarginBins)
	assert.InDelta(t, -20.0, kpis.MarginDistribution[0].Lower, tolerance)
	assert.InDelta(t, 60.0, kpis.MarginDistribution[usecase.MarginBins-1].Upper, tolerance)

	total := 0
	for _, bin := range kpis.MarginDistribution {
		total += bin.Count
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 1, kpis.MarginDistribution[0].Count)
	assert.Equal(t, 2, kpis.MarginDistribution[15].Count)
	assert.Equal(t, 1, kpis.MarginDistribution[19].Count)
}

func TestRankByProfit(t *testing.T) {
	records := sampleTransactions()

	top := usecase.TopByProfit(records, 3)
	assert.Equal(t, []int64{3, 4, 2}, profitIDs(top))
	assert.InDelta(t, 200.0, top[0].Profit, tolerance)
	assert.InDelta(t, 40.0, top[0].ProfitMargin, tolerance)

	bottom := usecase.BottomByProfit(records, 2)
	assert.Equal(t, []int64{5, 1}, profitIDs(bottom))

	t.Run("ties ordered by identifier", func(t *testing.T) {
		tied := []domain.Transaction{
			{ID: 9, TotalSale: 10, COGS: 5},
			{ID: 2, TotalSale: 20, COGS: 15},
			{ID: 5, TotalSale: 5, COGS: 0},
		}
		assert.Equal(t, []int64{2, 5, 9}, profitIDs(usecase.TopByProfit(tied, 5)))
		assert.Equal(t, []int64{2, 5, 9}, profitIDs(usecase.BottomByProfit(tied, 5)))
	})

	t.Run("does not reorder input", func(t *testing.T) {
		usecase.TopByProfit(records, 5)
		assert.Equal(t, sampleTransactions(), records)
	})

	t.Run("non-positive n", func(t *testing.T) {
		assert.Empty(t, usecase.TopByProfit(records, 0))
		assert.Empty(t, usecase.BottomByProfit(records, -1))
	})
}

func profitIDs(rows []domain.TransactionProfit) []int64 {
	out := make([]int64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
