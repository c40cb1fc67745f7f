package dto

import "github.com/shopspring/decimal"

// CreateProductRequest creates a catalog entry. Initial stock enters through
// the stock ledger, not here.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Barcode       *string         `json:"barcode,omitempty"`
	CategoryID    string          `json:"categoryID" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Unit          string          `json:"unit" binding:"required"`
}

// UpdateProductRequest updates catalog fields. Stock quantity is absent on
// purpose: it is maintained solely by stock ledger operations.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Barcode       *string          `json:"barcode,omitempty"`
	CategoryID    *string          `json:"categoryID,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// CreateCategoryRequest creates a product category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
