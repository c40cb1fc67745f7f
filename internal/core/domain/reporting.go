package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates sales over a period.
type SalesSummary struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	SaleCount  int             `json:"saleCount"`
	GrossTotal decimal.Decimal `json:"grossTotal"`
	Discounts  decimal.Decimal `json:"discounts"`
}

// ProductSales ranks a product by quantity sold over a period.
type ProductSales struct {
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardSummary backs the dashboard screen.
type DashboardSummary struct {
	TodaySales    SalesSummary `json:"todaySales"`
	LowStockCount int          `json:"lowStockCount"`
	ProductCount  int          `json:"productCount"`
	CustomerCount int          `json:"customerCount"`
}
