package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vendasys/vendas_pos_app/internal/apperrors"
	"github.com/vendasys/vendas_pos_app/internal/core/domain"
	"github.com/vendasys/vendas_pos_app/internal/core/ports"
	"github.com/vendasys/vendas_pos_app/internal/dto"
)

type ProductService struct {
	productRepo ports.ProductRepository
}

func NewProductService(productRepo ports.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	if req.SalePrice.IsNegative() || req.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
	}
	now := time.Now()
	product := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Barcode:       req.Barcode,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		StockQty:      0,
		Unit:          req.Unit,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if product.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for update: %w", err)
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
		if product.Name == "" {
			return nil, fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
		}
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
		}
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: prices must not be negative", apperrors.ErrValidation)
		}
		product.SalePrice = *req.SalePrice
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("failed to get product by barcode: %w", err)
	}
	return product, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, term string, forSale bool, limit int) ([]domain.Product, error) {
	products, err := s.productRepo.SearchProducts(ctx, strings.TrimSpace(term), forSale, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (s *ProductService) DeactivateProduct(ctx context.Context, productID, updaterUserID string) error {
	if err := s.productRepo.DeactivateProduct(ctx, productID, updaterUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return nil
}

func (s *ProductService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *ProductService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
	}
	if err := s.productRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}
