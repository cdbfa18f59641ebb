package domain

// MonthlySales aggregates one calendar month, keyed as YYYY-MM.
type MonthlySales struct {
	Month            string  `json:"month"`
	Year             int     `json:"year"`
	MonthNumber      int     `json:"month_number"`
	Revenue          float64 `json:"revenue"`
	Profit           float64 `json:"profit"`
	TransactionCount int     `json:"transaction_count"`
}

// CategorySales aggregates one product category.
type CategorySales struct {
	Category         string  `json:"category"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	AverageProfit    float64 `json:"average_profit"`
}

// LabeledRevenue is revenue attributed to a single label (weekday, gender).
type LabeledRevenue struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// AgeGenderRevenue is revenue for one age band and gender pair.
type AgeGenderRevenue struct {
	AgeBand string  `json:"age_band"`
	Gender  string  `json:"gender"`
	Revenue float64 `json:"revenue"`
}

// MarginBin is one bucket of the per-transaction profit margin histogram.
// Bounds are percentages; Upper is inclusive only for the last bin.
type MarginBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// TransactionProfit is a ranked transaction with its derived profit figures.
type TransactionProfit struct {
	ID           int64   `json:"transaction_id"`
	Category     string  `json:"category"`
	TotalSale    float64 `json:"total_sale"`
	COGS         float64 `json:"cogs"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// KPISet holds every scalar and grouped aggregate computed over a filtered view.
// All fields are zero or empty when the view holds no records.
type KPISet struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalCOGS               float64 `json:"total_cogs"`
	TotalProfit             float64 `json:"total_profit"`
	ProfitMargin            float64 `json:"profit_margin"`
	TransactionCount        int     `json:"transaction_count"`
	UniqueCustomers         int     `json:"unique_customers"`
	AvgTransactionValue     float64 `json:"avg_transaction_value"`
	AvgProfitPerTransaction float64 `json:"avg_profit_per_transaction"`
	AvgRevenuePerCustomer   float64 `json:"avg_revenue_per_customer"`
	AverageMargin           float64 `json:"average_margin"`
	TopCategory             string  `json:"top_category"`
	TopCategoryRevenue      float64 `json:"top_category_revenue"`
	DaysShown               int     `json:"days_shown"`

	MonthlySales       []MonthlySales      `json:"monthly_sales"`
	CategorySales      []CategorySales     `json:"category_sales"`
	WeekdayRevenue     []LabeledRevenue    `json:"weekday_revenue"`
	GenderRevenue      []LabeledRevenue    `json:"gender_revenue"`
	AgeGenderRevenue   []AgeGenderRevenue  `json:"age_gender_revenue"`
	MarginDistribution []MarginBin         `json:"margin_distribution"`
	TopTransactions    []TransactionProfit `json:"top_transactions"`
	BottomTransactions []TransactionProfit `json:"bottom_transactions"`
}

// DashboardReport is the top-level structure for the final JSON output.
type DashboardReport struct {
	Filter         FilterSpec `json:"filter"`
	TotalRecords   int        `json:"total_records"`
	MatchedRecords int        `json:"matched_records"`
	KPIs           KPISet     `json:"kpis"`
	Insights       []string   `json:"insights"`
}
