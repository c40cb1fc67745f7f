package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/dto"
)

// AuthSvcFacade authenticates operator credentials.
type AuthSvcFacade interface {
	// Authenticate returns the identity for valid credentials. Every denial
	// reason (unknown user, inactive, locked, bad password) surfaces the same
	// ErrUnauthorized to the caller.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// CommitParams carries everything needed to turn a cart into a sale.
type CommitParams struct {
	CustomerID    *string
	PaymentMethod domain.PaymentMethod
	Notes         string
	CashierID     string
}

// CheckoutSvcFacade drives the cart/checkout workflow.
type CheckoutSvcFacade interface {
	OpenCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	SetDiscount(ctx context.Context, cartID string, amount decimal.Decimal) (*domain.Cart, error)
	Cancel(ctx context.Context, cartID string) error
	// Commit persists the sale atomically and returns the new sale ID. On
	// failure the cart is preserved for retry.
	Commit(ctx context.Context, cartID string, params CommitParams) (string, error)
}

// StockSvcFacade is the stock ledger.
type StockSvcFacade interface {
	RecordMovement(ctx context.Context, productID string, direction domain.MovementDirection, qty int, reason domain.MovementReason) (int, error)
	ListMovements(ctx context.Context, productID string, limit int) ([]domain.StockMovement, error)
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
}

// ProductSvcFacade manages the catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	SearchProducts(ctx context.Context, term string, forSale bool, limit int) ([]domain.Product, error)
	DeactivateProduct(ctx context.Context, productID, updaterUserID string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
}

// CustomerSvcFacade manages customer records.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterUserID string) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// SupplierSvcFacade manages supplier records.
type SupplierSvcFacade interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, supplierID string, req dto.UpdateSupplierRequest, updaterUserID string) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context, limit, offset int) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, supplierID string) error
}

// UserSvcFacade manages operator accounts.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, newPassword, updaterUserID string) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UnlockUser(ctx context.Context, userID, updaterUserID string) error
	DeactivateUser(ctx context.Context, userID, updaterUserID string) error
}

// SaleSvcFacade answers queries over completed sales.
type SaleSvcFacade interface {
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSalesBetween(ctx context.Context, from, to time.Time, limit int) ([]domain.Sale, error)
	// RenderReceipt renders the plain-text receipt for a sale.
	RenderReceipt(ctx context.Context, saleID string) (string, error)
}

// ReportingSvcFacade backs the dashboard and report screens.
type ReportingSvcFacade interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	SalesSummary(ctx context.Context, from, to time.Time) (*domain.SalesSummary, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error)
}

// ServiceContainer bundles every service facade for injection into handlers.
type ServiceContainer struct {
	Auth      AuthSvcFacade
	Checkout  CheckoutSvcFacade
	Stock     StockSvcFacade
	Product   ProductSvcFacade
	Customer  CustomerSvcFacade
	Supplier  SupplierSvcFacade
	User      UserSvcFacade
	Sale      SaleSvcFacade
	Reporting ReportingSvcFacade
}
