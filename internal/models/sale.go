package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the database representation of a sale header.
type Sale struct {
	SaleID        string
	CustomerID    sql.NullString
	CustomerName  sql.NullString // joined
	UserID        string
	UserName      sql.NullString // joined
	SoldAt        time.Time
	Total         decimal.Decimal
	PaymentMethod string
	Discount      decimal.Decimal
	Notes         sql.NullString
}

// SaleLineItem is the database representation of one sale line.
type SaleLineItem struct {
	LineItemID  string
	SaleID      string
	ProductID   string
	ProductName sql.NullString // joined
	Position    int
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// StockMovement is the database representation of one inventory change.
type StockMovement struct {
	MovementID  string
	ProductID   string
	ProductName sql.NullString // joined
	Direction   string
	Quantity    int
	Reason      string
	MovedAt     time.Time
}
