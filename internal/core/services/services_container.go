package services

import (
	"log/slog"

	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/platform/config"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(cfg *config.Config, repos ports.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:      NewAuthService(repos.UserRepo, cfg.LockoutThreshold, logger),
		Checkout:  NewCheckoutService(repos.ProductRepo, repos.SaleRepo),
		Stock:     NewStockService(repos.StockRepo),
		Product:   NewProductService(repos.ProductRepo),
		Customer:  NewCustomerService(repos.CustomerRepo),
		Supplier:  NewSupplierService(repos.SupplierRepo),
		User:      NewUserService(repos.UserRepo, cfg.BcryptCost),
		Sale:      NewSaleService(repos.SaleRepo),
		Reporting: NewReportingService(repos.ReportingRepo, repos.StockRepo, cfg.LowStockThreshold),
	}
}

// Compile-time facade checks.
var (
	_ portssvc.AuthSvcFacade      = (*AuthService)(nil)
	_ portssvc.CheckoutSvcFacade  = (*CheckoutService)(nil)
	_ portssvc.StockSvcFacade     = (*StockService)(nil)
	_ portssvc.ProductSvcFacade   = (*ProductService)(nil)
	_ portssvc.CustomerSvcFacade  = (*CustomerService)(nil)
	_ portssvc.SupplierSvcFacade  = (*SupplierService)(nil)
	_ portssvc.UserSvcFacade      = (*UserService)(nil)
	_ portssvc.SaleSvcFacade      = (*SaleService)(nil)
	_ portssvc.ReportingSvcFacade = (*ReportingService)(nil)
)
