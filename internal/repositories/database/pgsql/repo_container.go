package pgsql

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendasys/vendas_pos_app/internal/core/ports"
)

// NewRepositoryProvider wires every repository over a single gateway so all
// database access shares one timeout, retry and translation policy.
func NewRepositoryProvider(dbPool *pgxpool.Pool, logger *slog.Logger, cfg GatewayConfig) ports.RepositoryProvider {
	gw := NewGateway(dbPool, logger, cfg)

	return ports.RepositoryProvider{
		ProductRepo:   newPgxProductRepository(gw),
		UserRepo:      newPgxUserRepository(gw),
		CustomerRepo:  newPgxCustomerRepository(gw),
		SupplierRepo:  newPgxSupplierRepository(gw),
		SaleRepo:      newPgxSaleRepository(gw),
		StockRepo:     newPgxStockRepository(gw),
		ReportingRepo: newPgxReportingRepository(gw),
	}
}
