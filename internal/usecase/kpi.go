package usecase

import (
	"sort"
	"time"

	"retail-dashboard/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// RankedTransactions is how many rows the top and bottom profit tables hold.
	RankedTransactions = 5
	// MarginBins is the number of buckets in the margin histogram.
	MarginBins = 20

	unknownAgeBand = "Unknown"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ageBands are right-inclusive upper bounds; the lower bound of the first band is exclusive 0.
var ageBands = []struct {
	upper int
	label string
}{
	{25, "18-25"},
	{35, "26-35"},
	{45, "36-45"},
	{55, "46-55"},
	{100, "55+"},
}

// ComputeKPIs computes the scalar and grouped aggregates over records.
// An empty input yields zero scalars and empty, non-nil groups.
func ComputeKPIs(records []domain.Transaction) domain.KPISet {
	kpis := domain.KPISet{
		MonthlySales:       make([]domain.MonthlySales, 0),
		CategorySales:      make([]domain.CategorySales, 0),
		WeekdayRevenue:     make([]domain.LabeledRevenue, 0),
		GenderRevenue:      make([]domain.LabeledRevenue, 0),
		AgeGenderRevenue:   make([]domain.AgeGenderRevenue, 0),
		MarginDistribution: make([]domain.MarginBin, 0),
		TopTransactions:    make([]domain.TransactionProfit, 0),
		BottomTransactions: make([]domain.TransactionProfit, 0),
	}
	if len(records) == 0 {
		return kpis
	}

	revenue, cogs := decimal.Zero, decimal.Zero
	customers := make(map[int64]struct{})
	var marginSum float64
	var marginCount int
	minDay, maxDay := records[0].Day(), records[0].Day()

	for _, tx := range records {
		revenue = revenue.Add(decimal.NewFromFloat(tx.TotalSale))
		cogs = cogs.Add(decimal.NewFromFloat(tx.COGS))
		customers[tx.CustomerID] = struct{}{}
		if m, ok := tx.ProfitMargin(); ok {
			marginSum += m
			marginCount++
		}
		day := tx.Day()
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}

	kpis.TotalRevenue = revenue.InexactFloat64()
	kpis.TotalCOGS = cogs.InexactFloat64()
	kpis.TotalProfit = revenue.Sub(cogs).InexactFloat64()
	kpis.TransactionCount = len(records)
	kpis.UniqueCustomers = len(customers)
	kpis.ProfitMargin = percent(kpis.TotalProfit, kpis.TotalRevenue)
	kpis.AvgTransactionValue = ratio(kpis.TotalRevenue, float64(kpis.TransactionCount))
	kpis.AvgProfitPerTransaction = ratio(kpis.TotalProfit, float64(kpis.TransactionCount))
	kpis.AvgRevenuePerCustomer = ratio(kpis.TotalRevenue, float64(kpis.UniqueCustomers))
	kpis.AverageMargin = ratio(marginSum, float64(marginCount))
	kpis.DaysShown = int(maxDay.Sub(minDay).Hours()/24) + 1

	kpis.MonthlySales = monthlySales(records)
	kpis.CategorySales = categorySales(records)
	if len(kpis.CategorySales) > 0 {
		kpis.TopCategory = kpis.CategorySales[0].Category
		kpis.TopCategoryRevenue = kpis.CategorySales[0].Revenue
	}
	kpis.WeekdayRevenue = weekdayRevenue(records)
	kpis.GenderRevenue = genderRevenue(records)
	kpis.AgeGenderRevenue = ageGenderRevenue(records)
	kpis.MarginDistribution = marginDistribution(records, MarginBins)
	kpis.TopTransactions = TopByProfit(records, RankedTransactions)
	kpis.BottomTransactions = BottomByProfit(records, RankedTransactions)

	return kpis
}

// AgeBand labels an age; ages outside (0, 100] are "Unknown".
func AgeBand(age int) string {
	if age <= 0 {
		return unknownAgeBand
	}
	for _, band := range ageBands {
		if age <= band.upper {
			return band.label
		}
	}
	return unknownAgeBand
}

// TopByProfit returns up to n transactions with the highest profit.
// Equal profits are ordered by ascending identifier.
func TopByProfit(records []domain.Transaction, n int) []domain.TransactionProfit {
	return rankByProfit(records, n, true)
}

// BottomByProfit returns up to n transactions with the lowest profit.
// Equal profits are ordered by ascending identifier.
func BottomByProfit(records []domain.Transaction, n int) []domain.TransactionProfit {
	return rankByProfit(records, n, false)
}

func rankByProfit(records []domain.Transaction, n int, descending bool) []domain.TransactionProfit {
	sorted := make([]domain.Transaction, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Profit(), sorted[j].Profit()
		if pi != pj {
			if descending {
				return pi > pj
			}
			return pi < pj
		}
		return sorted[i].ID < sorted[j].ID
	})

	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]domain.TransactionProfit, 0, len(sorted))
	for _, tx := range sorted {
		margin, _ := tx.ProfitMargin()
		ranked = append(ranked, domain.TransactionProfit{
			ID:           tx.ID,
			Category:     tx.Category,
			TotalSale:    tx.TotalSale,
			COGS:         tx.COGS,
			Profit:       tx.Profit(),
			ProfitMargin: margin,
		})
	}
	return ranked
}

func monthlySales(records []domain.Transaction) []domain.MonthlySales {
	type acc struct {
		year    int
		month   int
		revenue decimal.Decimal
		profit  decimal.Decimal
		count   int
	}
	months := make(map[string]*acc)
	for _, tx := range records {
		key := tx.SaleDate.Format("2006-01")
		a, ok := months[key]
		if !ok {
			a = &acc{year: tx.SaleDate.Year(), month: int(tx.SaleDate.Month())}
			months[key] = a
		}
		a.revenue = a.revenue.Add(decimal.NewFromFloat(tx.TotalSale))
		a.profit = a.profit.Add(decimal.NewFromFloat(tx.TotalSale).Sub(decimal.NewFromFloat(tx.COGS)))
		a.count++
	}

	result := make([]domain.MonthlySales, 0, len(months))
	for key, a := range months {
		result = append(result, domain.MonthlySales{
			Month:            key,
			Year:             a.year,
			MonthNumber:      a.month,
			Revenue:          a.revenue.InexactFloat64(),
			Profit:           a.profit.InexactFloat64(),
			TransactionCount: a.count,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

func categorySales(records []domain.Transaction) []domain.CategorySales {
	type acc struct {
		revenue decimal.Decimal
		profit  float64
		count   int
	}
	categories := make(map[string]*acc)
	for _, tx := range records {
		a, ok := categories[tx.Category]
		if !ok {
			a = &acc{}
			categories[tx.Category] = a
		}
		a.revenue = a.revenue.Add(decimal.NewFromFloat(tx.TotalSale))
		a.profit += tx.Profit()
		a.count++
	}

	result := make([]domain.CategorySales, 0, len(categories))
	for name, a := range categories {
		result = append(result, domain.CategorySales{
			Category:         name,
			Revenue:          a.revenue.InexactFloat64(),
			TransactionCount: a.count,
			AverageProfit:    ratio(a.profit, float64(a.count)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Revenue != result[j].Revenue {
			return result[i].Revenue > result[j].Revenue
		}
		return result[i].Category < result[j].Category
	})
	return result
}

func weekdayRevenue(records []domain.Transaction) []domain.LabeledRevenue {
	totals := make(map[time.Weekday]decimal.Decimal, len(weekdayOrder))
	for _, tx := range records {
		day := tx.SaleDate.Weekday()
		totals[day] = totals[day].Add(decimal.NewFromFloat(tx.TotalSale))
	}

	result := make([]domain.LabeledRevenue, 0, len(weekdayOrder))
	for _, day := range weekdayOrder {
		result = append(result, domain.LabeledRevenue{Label: day.String(), Revenue: totals[day].InexactFloat64()})
	}
	return result
}

func genderRevenue(records []domain.Transaction) []domain.LabeledRevenue {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range records {
		totals[tx.Gender] = totals[tx.Gender].Add(decimal.NewFromFloat(tx.TotalSale))
	}

	result := make([]domain.LabeledRevenue, 0, len(totals))
	for gender, total := range totals {
		result = append(result, domain.LabeledRevenue{Label: gender, Revenue: total.InexactFloat64()})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	return result
}

func ageGenderRevenue(records []domain.Transaction) []domain.AgeGenderRevenue {
	type key struct{ band, gender string }
	totals := make(map[key]decimal.Decimal)
	for _, tx := range records {
		k := key{AgeBand(tx.Age), tx.Gender}
		totals[k] = totals[k].Add(decimal.NewFromFloat(tx.TotalSale))
	}

	bandRank := make(map[string]int, len(ageBands)+1)
	for i, band := range ageBands {
		bandRank[band.label] = i
	}
	bandRank[unknownAgeBand] = len(ageBands)

	result := make([]domain.AgeGenderRevenue, 0, len(totals))
	for k, total := range totals {
		result = append(result, domain.AgeGenderRevenue{AgeBand: k.band, Gender: k.gender, Revenue: total.InexactFloat64()})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AgeBand != result[j].AgeBand {
			return bandRank[result[i].AgeBand] < bandRank[result[j].AgeBand]
		}
		return result[i].Gender < result[j].Gender
	})
	return result
}

// marginDistribution buckets defined per-record margins into equal-width bins
// spanning the observed minimum and maximum.
func marginDistribution(records []domain.Transaction, bins int) []domain.MarginBin {
	margins := make([]float64, 0, len(records))
	for _, tx := range records {
		if m, ok := tx.ProfitMargin(); ok {
			margins = append(margins, m)
		}
	}
	if len(margins) == 0 || bins <= 0 {
		return make([]domain.MarginBin, 0)
	}

	lo, hi := margins[0], margins[0]
	for _, m := range margins[1:] {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	if lo == hi {
		return []domain.MarginBin{{Lower: lo, Upper: hi, Count: len(margins)}}
	}

	width := (hi - lo) / float64(bins)
	result := make([]domain.MarginBin, bins)
	for i := range result {
		result[i].Lower = lo + float64(i)*width
		result[i].Upper = lo + float64(i+1)*width
	}
	result[bins-1].Upper = hi

	for _, m := range margins {
		idx := int((m - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}

// ratio divides, returning 0 when the denominator is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func percent(num, den float64) float64 {
	return ratio(num, den) * 100
}
