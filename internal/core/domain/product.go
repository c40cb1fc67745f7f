package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. StockQty is maintained exclusively by stock
// ledger operations; catalog updates never touch it.
type Product struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	Barcode       *string         `json:"barcode,omitempty"` // unique when present
	CategoryID    string          `json:"categoryID"`
	CategoryName  string          `json:"categoryName,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	StockQty      int             `json:"stockQty"`
	Unit          string          `json:"unit"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// Category groups products for search and reporting.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
}
