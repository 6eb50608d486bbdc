package report

import "time"

// DailySalesRow is one day of aggregated order data.
type DailySalesRow struct {
	Day     time.Time `json:"day"`
	Orders  int64     `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// ProductSalesRow is one product's aggregated sales.
type ProductSalesRow struct {
	Name    string  `json:"name"`
	Units   int64   `json:"units"`
	Revenue float64 `json:"revenue"`
}

// SalesSummary is the reporting screen's payload: range totals plus the
// per-day series that backs the revenue chart widget.
type SalesSummary struct {
	StoreID      string          `json:"store_id"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalOrders  int64           `json:"total_orders"`
	TotalRevenue float64         `json:"total_revenue"`
	Days         []DailySalesRow `json:"days"`
}
