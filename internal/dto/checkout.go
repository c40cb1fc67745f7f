package dto

import "github.com/shopspring/decimal"

// AddItemRequest adds a product to a cart. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

// SetDiscountRequest sets the cart's discount amount.
type SetDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CommitCartRequest turns the cart into a sale.
type CommitCartRequest struct {
	CustomerID    *string `json:"customerID,omitempty"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,paymentmethod"`
	Notes         string  `json:"notes,omitempty"`
}

// CommitCartResponse carries the identity of the persisted sale.
type CommitCartResponse struct {
	SaleID string `json:"saleID"`
}
