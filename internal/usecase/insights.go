package usecase

import (
	"fmt"

	"retail-dashboard/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// NoDataInsight is the only insight produced for an empty selection.
const NoDataInsight = "No data available for selected filters."

// InsightRules holds the margin thresholds, in percent, used to flag a selection.
type InsightRules struct {
	LowMarginPct  float64 `yaml:"low_margin_pct"`
	HighMarginPct float64 `yaml:"high_margin_pct"`
}

// DefaultInsightRules returns the stock thresholds.
func DefaultInsightRules() InsightRules {
	return InsightRules{LowMarginPct: 20, HighMarginPct: 40}
}

// GenerateInsights applies DefaultInsightRules to kpis.
func GenerateInsights(kpis domain.KPISet) []string {
	return DefaultInsightRules().Generate(kpis)
}

// Generate turns aggregates into recommendation lines. The output depends only
// on kpis and the rule thresholds.
func (r InsightRules) Generate(kpis domain.KPISet) []string {
	if kpis.TransactionCount == 0 {
		return []string{NoDataInsight}
	}

	insights := []string{
		fmt.Sprintf("Total revenue in this selection is %s.", formatMoney(kpis.TotalRevenue)),
	}
	if kpis.TopCategory != "" {
		insights = append(insights, fmt.Sprintf("%s is the top category with %s in sales.",
			kpis.TopCategory, formatMoney(kpis.TopCategoryRevenue)))
	}
	if day, ok := bestWeekday(kpis.WeekdayRevenue); ok {
		insights = append(insights, fmt.Sprintf("%s has the highest sales in this period.", day))
	}
	insights = append(insights, fmt.Sprintf("Average profit margin is %.2f%%.", kpis.AverageMargin))

	switch {
	case kpis.AverageMargin < r.LowMarginPct:
		insights = append(insights, "Profit margins are relatively low. Review pricing or costs.")
	case kpis.AverageMargin > r.HighMarginPct:
		insights = append(insights, "High profit margins. Pricing strategy is working well.")
	}

	return insights
}

// bestWeekday picks the first weekday holding the maximum revenue.
func bestWeekday(days []domain.LabeledRevenue) (string, bool) {
	best := -1
	for i, d := range days {
		if best < 0 || d.Revenue > days[best].Revenue {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return days[best].Label, true
}

// formatMoney renders v as $1,234.56.
func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}
