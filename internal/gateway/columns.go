package gateway

// Column names of the RETAIL_SALES table, shared by the SQL query, the CSV
// reader and the CSV export.
const (
	colTransactionID = "transaction_id"
	colSaleDate      = "sale_date"
	colCustomerID    = "customer_id"
	colGender        = "gender"
	colAge           = "age"
	colCategory      = "category"
	colQuantity      = "quantity"
	colPricePerUnit  = "price_per_unit"
	colCOGS          = "cogs"
	colTotalSale     = "total_sale"
)

var transactionColumns = []string{
	colTransactionID,
	colSaleDate,
	colCustomerID,
	colGender,
	colAge,
	colCategory,
	colQuantity,
	colPricePerUnit,
	colCOGS,
	colTotalSale,
}
