package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/middleware"
	"github.com/vendasys/vendas_pos_app/internal/platform/config"
)

type stockHandler struct {
	cfg          *config.Config
	stockService portssvc.StockSvcFacade
}

func newStockHandler(cfg *config.Config, ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{cfg: cfg, stockService: ss}
}

// registerStockRoutes registers the stock ledger routes.
func registerStockRoutes(rg *gin.RouterGroup, cfg *config.Config, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(cfg, stockService)

	move := middleware.RequireRole(domain.RoleAdministrator, domain.RoleManager, domain.RoleOperator)

	stock := rg.Group("/stock")
	{
		stock.POST("/movements", move, h.recordMovement)
		stock.GET("/movements", h.listMovements)
		stock.GET("/low", h.lowStock)
	}
}

func (h *stockHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	direction, err := domain.ParseMovementDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reason, err := domain.ParseMovementReason(req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	onHand, err := h.stockService.RecordMovement(c.Request.Context(), req.ProductID, direction, req.Quantity, reason)
	if err != nil {
		respondError(c, logger, err, "Failed to record stock movement")
		return
	}
	c.JSON(http.StatusCreated, dto.RecordMovementResponse{ProductID: req.ProductID, OnHand: onHand})
}

func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movements, err := h.stockService.ListMovements(c.Request.Context(), c.Query("productID"), limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list stock movements")
		return
	}
	c.JSON(http.StatusOK, movements)
}

func (h *stockHandler) lowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold", strconv.Itoa(h.cfg.LowStockThreshold)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold"})
		return
	}

	products, err := h.stockService.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, logger, err, "Failed to list low stock products")
		return
	}
	c.JSON(http.StatusOK, products)
}
