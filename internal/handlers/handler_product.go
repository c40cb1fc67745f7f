package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	portssvc "github.com/vendasys/vendas_pos_app/internal/core/ports/services"
	"github.com/vendasys/vendas_pos_app/internal/dto"
	"github.com/vendasys/vendas_pos_app/internal/middleware"
)

type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: ps}
}

// registerProductRoutes registers catalog routes. Any authenticated user can
// read; writes need manager rights.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)

	manage := middleware.RequireRole(domain.RoleAdministrator, domain.RoleManager)

	products := rg.Group("/products")
	{
		products.GET("", h.searchProducts)
		products.GET("/:id", h.getProduct)
		products.GET("/barcode/:code", h.getProductByBarcode)
		products.POST("", manage, h.createProduct)
		products.PUT("/:id", manage, h.updateProduct)
		products.DELETE("/:id", manage, h.deactivateProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", manage, h.createCategory)
	}
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}
	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, product)
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req, updaterUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) getProductByBarcode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, logger, err, "Failed to get product by barcode")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) searchProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	term := c.Query("q")
	forSale := c.Query("forSale") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	products, err := h.productService.SearchProducts(c.Request.Context(), term, forSale, limit)
	if err != nil {
		respondError(c, logger, err, "Failed to search products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.productService.DeactivateProduct(c.Request.Context(), c.Param("id"), updaterUserID); err != nil {
		respondError(c, logger, err, "Failed to deactivate product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *productHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *productHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	category, err := h.productService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, logger, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}
