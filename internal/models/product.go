package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the database representation of a catalog entry.
type Product struct {
	ProductID     string
	Name          string
	Barcode       sql.NullString
	CategoryID    string
	CategoryName  sql.NullString // joined, not a column of products
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	StockQty      int
	Unit          string
	IsActive      bool
	AuditFields
}

// Category is the database representation of a product category.
type Category struct {
	CategoryID string
	Name       string
}

// AuditFields mirror the created/updated columns shared by several tables.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
