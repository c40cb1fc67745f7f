package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/middleware"
)

type partyHandler struct {
	customerService portssvc.CustomerSvcFacade
	supplierService portssvc.SupplierSvcFacade
}

func newPartyHandler(cs portssvc.CustomerSvcFacade, ss portssvc.SupplierSvcFacade) *partyHandler {
	return &partyHandler{customerService: cs, supplierService: ss}
}

// registerPartyRoutes registers customer and supplier contact management.
func registerPartyRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, supplierService portssvc.SupplierSvcFacade) {
	h := newPartyHandler(customerService, supplierService)

	manage := middleware.RequireRole(domain.RoleAdministrator, domain.RoleManager)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.POST("", manage, h.createCustomer)
		customers.PUT("/:id", manage, h.updateCustomer)
		customers.DELETE("/:id", manage, h.deleteCustomer)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.listSuppliers)
		suppliers.GET("/:id", h.getSupplier)
		suppliers.POST("", manage, h.createSupplier)
		suppliers.PUT("/:id", manage, h.updateSupplier)
		suppliers.DELETE("/:id", manage, h.deleteSupplier)
	}
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

func (h *partyHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *partyHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *partyHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *partyHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pagination(c)

	customers, err := h.customerService.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}

// deleteCustomer hard-deletes; a customer referenced by sales comes back as
// a conflict.
func (h *partyHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.customerService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *partyHandler) createSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create supplier")
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *partyHandler) updateSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to update supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *partyHandler) getSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	supplier, err := h.supplierService.GetSupplierByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get supplier")
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *partyHandler) listSuppliers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pagination(c)

	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list suppliers")
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *partyHandler) deleteSupplier(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.supplierService.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete supplier")
		return
	}
	c.Status(http.StatusNoContent)
}
