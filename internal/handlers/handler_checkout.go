package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/middleware"
)

type checkoutHandler struct {
	checkoutService portssvc.CheckoutSvcFacade
}

func newCheckoutHandler(cs portssvc.CheckoutSvcFacade) *checkoutHandler {
	return &checkoutHandler{checkoutService: cs}
}

// registerCheckoutRoutes registers the cart workflow. Read-only accounts
// cannot sell.
func registerCheckoutRoutes(rg *gin.RouterGroup, checkoutService portssvc.CheckoutSvcFacade) {
	h := newCheckoutHandler(checkoutService)

	sell := middleware.RequireRole(
		domain.RoleAdministrator, domain.RoleManager, domain.RoleSalesperson, domain.RoleOperator,
	)

	carts := rg.Group("/carts", sell)
	{
		carts.POST("", h.openCart)
		carts.GET("/:id", h.getCart)
		carts.POST("/:id/items", h.addItem)
		carts.DELETE("/:id/items/:productID", h.removeItem)
		carts.PUT("/:id/discount", h.setDiscount)
		carts.DELETE("/:id", h.cancelCart)
		carts.POST("/:id/commit", h.commitCart)
	}
}

func (h *checkoutHandler) openCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cart, err := h.checkoutService.OpenCart(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to open cart")
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *checkoutHandler) getCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cart, err := h.checkoutService.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *checkoutHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	cart, err := h.checkoutService.AddItem(c.Request.Context(), c.Param("id"), req.ProductID, qty)
	if err != nil {
		respondError(c, logger, err, "Failed to add item to cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *checkoutHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cart, err := h.checkoutService.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("productID"))
	if err != nil {
		respondError(c, logger, err, "Failed to remove item from cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *checkoutHandler) setDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	cart, err := h.checkoutService.SetDiscount(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to set discount")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *checkoutHandler) cancelCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.checkoutService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to cancel cart")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *checkoutHandler) commitCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CommitCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	saleID, err := h.checkoutService.Commit(c.Request.Context(), c.Param("id"), portssvc.CommitParams{
		CustomerID:    req.CustomerID,
		PaymentMethod: method,
		Notes:         req.Notes,
		CashierID:     cashierID,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to commit cart")
		return
	}

	logger.Info("Sale committed", slog.String("sale_id", saleID))
	c.JSON(http.StatusCreated, dto.CommitCartResponse{SaleID: saleID})
}
