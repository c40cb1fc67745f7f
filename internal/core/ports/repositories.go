package ports

import (
	"context"
	"time"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
)

// ProductRepository persists catalog entries and categories.
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	// SearchProducts matches name, barcode or category name. With forSale set,
	// only active products with stock on hand are returned (the sale screen's
	// product picker).
	SearchProducts(ctx context.Context, term string, forSale bool, limit int) ([]domain.Product, error)
	DeactivateProduct(ctx context.Context, productID, userID string, now time.Time) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
}

// UserRepository persists operator accounts and their login counters.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string, now time.Time) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByUsername matches case-insensitively.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	// RecordFailedLogin atomically increments the failed-login counter and
	// locks the account once the counter reaches lockoutThreshold. It reports
	// whether the account is locked after the update.
	RecordFailedLogin(ctx context.Context, userID string, lockoutThreshold int, now time.Time) (bool, error)
	// RecordSuccessfulLogin resets the counter and stamps the login time.
	RecordSuccessfulLogin(ctx context.Context, userID string, now time.Time) error
	UnlockUser(ctx context.Context, userID, updatedBy string, now time.Time) error
	DeactivateUser(ctx context.Context, userID, updatedBy string, now time.Time) error
}

// CustomerRepository persists customer contact records.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	// DeleteCustomer hard-deletes; the store rejects it for customers
	// referenced by any sale (surfaced as ErrForeignKey).
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierRepository persists supplier contact records.
type SupplierRepository interface {
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
	UpdateSupplier(ctx context.Context, supplier domain.Supplier) error
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, limit, offset int) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// SaleRepository persists completed sales.
type SaleRepository interface {
	// CreateSale writes the sale header, its line items, the stock decrements
	// and the stock movements in one database transaction. Insufficient stock
	// for any line aborts the whole sale with ErrInsufficientStock.
	CreateSale(ctx context.Context, sale domain.Sale) error
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSalesBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.Sale, error)
}

// StockRepository records stock movements and answers stock projections.
type StockRepository interface {
	// RecordMovement appends the movement and applies the signed delta to the
	// product's on-hand quantity in one transaction. The outbound check and
	// the update are a single conditional statement, so concurrent movements
	// cannot interleave between check and update.
	RecordMovement(ctx context.Context, movement domain.StockMovement) (int, error)
	ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error)
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
}

// ReportingRepository answers read-only aggregations.
type ReportingRepository interface {
	SalesSummaryBetween(ctx context.Context, from, to time.Time) (domain.SalesSummary, error)
	TopProductsBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error)
	CountActiveProducts(ctx context.Context) (int, error)
	CountCustomers(ctx context.Context) (int, error)
}

// RepositoryProvider bundles every repository for injection into services.
type RepositoryProvider struct {
	ProductRepo   ProductRepository
	UserRepo      UserRepository
	CustomerRepo  CustomerRepository
	SupplierRepo  SupplierRepository
	SaleRepo      SaleRepository
	StockRepo     StockRepository
	ReportingRepo ReportingRepository
}
