package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/core/domain"
	"github.com/KaranChavda511/FLIPONE-ECOMMERCE-FULL/internal/port"
)

// activeProductsTTL bounds staleness of the public catalog between the
// cache invalidations triggered by product mutations.
const activeProductsTTL = 5 * time.Minute

type ProductService struct {
	products   port.ProductRepository
	categories port.CategoryRepository
	cache      port.CacheRepository
	log        *logrus.Entry
}

func NewProductService(products port.ProductRepository, categories port.CategoryRepository, cache port.CacheRepository, logger *logrus.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		cache:      cache,
		log:        logger.WithField("component", "product_service"),
	}
}

type AddProductInput struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Category      string   `json:"category" validate:"required"`
	Subcategories []string `json:"subcategories"`
	Images        []string `json:"images"`
}

func (s *ProductService) AddProduct(ctx context.Context, sellerID string, in AddProductInput) (domain.Product, error) {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}

	category, err := s.categories.FindByName(ctx, strings.ToLower(in.Category))
	if err != nil {
		return domain.Product{}, domain.ErrInvalidCategory
	}
	subcats, err := validateSubcategories(category, in.Subcategories)
	if err != nil {
		return domain.Product{}, err
	}

	if existing, err := s.products.FindDuplicate(ctx, sid, in.Name, category.ID); err == nil && existing != nil {
		return domain.Product{}, domain.ErrProductExists
	}

	now := time.Now().UTC()
	product, err := s.products.Create(ctx, domain.Product{
		Seller:        sid,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		Category:      domain.CategoryRef{ID: category.ID, Name: category.Name},
		Subcategories: subcats,
		Images:        in.Images,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.invalidateListing(ctx)
	s.log.WithFields(logrus.Fields{
		"sellerId":  sellerID,
		"productId": product.ID.Hex(),
	}).Info("product created")

	return product, nil
}

type UpdateProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Category      *string  `json:"category"`
	Subcategories []string `json:"subcategories"`
}

func (s *ProductService) UpdateProduct(ctx context.Context, sellerID, productID string, in UpdateProductInput) (domain.Product, error) {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return domain.Product{}, err
	}
	// Ownership miss reads identically to a missing product.
	if product.Seller != sid {
		return domain.Product{}, domain.ErrProductNotFound
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Category != nil {
		category, err := s.categories.FindByName(ctx, strings.ToLower(*in.Category))
		if err != nil {
			return domain.Product{}, domain.ErrInvalidCategory
		}
		subcats, err := validateSubcategories(category, in.Subcategories)
		if err != nil {
			return domain.Product{}, err
		}
		product.Category = domain.CategoryRef{ID: category.ID, Name: category.Name}
		product.Subcategories = subcats
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, *product); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.invalidateListing(ctx)
	return *product, nil
}

// AddProductImages appends uploaded image URLs, capped at five per
// product.
func (s *ProductService) AddProductImages(ctx context.Context, sellerID, productID string, images []string) (domain.Product, error) {
	const maxImages = 5

	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return domain.Product{}, err
	}
	if product.Seller != sid {
		return domain.Product{}, domain.ErrProductNotFound
	}

	if len(product.Images)+len(images) > maxImages {
		return domain.Product{}, fmt.Errorf("%w: maximum %d images allowed", domain.ErrTooManyImages, maxImages)
	}
	product.Images = append(product.Images, images...)
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, *product); err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	s.invalidateListing(ctx)
	return *product, nil
}

// DeactivateProduct hides a product from the catalog. Products are never
// hard-deleted.
func (s *ProductService) DeactivateProduct(ctx context.Context, sellerID, productID string) error {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.ErrInvalidID
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	product, err := s.products.FindByID(ctx, pid)
	if err != nil {
		return err
	}
	if product.Seller != sid {
		return domain.ErrProductNotFound
	}

	product.IsActive = false
	product.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, *product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	s.invalidateListing(ctx)
	s.log.WithFields(logrus.Fields{
		"sellerId":  sellerID,
		"productId": productID,
	}).Info("product deactivated")
	return nil
}

func (s *ProductService) SellerProducts(ctx context.Context, sellerID, status string) ([]domain.Product, error) {
	sid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.products.FindBySeller(ctx, sid, status != "inactive")
}

// ActiveProducts serves the public catalog through the cache.
func (s *ProductService) ActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if products, ok, err := s.cache.GetActiveProducts(ctx); err == nil && ok {
		return products, nil
	} else if err != nil {
		// Cache trouble degrades to the store, never to an error.
		s.log.WithError(err).Warn("product cache read failed")
	}

	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active products: %w", err)
	}

	if err := s.cache.SetActiveProducts(ctx, products, activeProductsTTL); err != nil {
		s.log.WithError(err).Warn("product cache write failed")
	}
	return products, nil
}

func (s *ProductService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateActiveProducts(ctx); err != nil {
		s.log.WithError(err).Warn("product cache invalidation failed")
	}
}

func validateSubcategories(category *domain.Category, subcategories []string) ([]string, error) {
	if len(subcategories) == 0 {
		return []string{}, nil
	}

	valid := make(map[string]bool, len(category.Subcategories))
	for _, sc := range category.Subcategories {
		valid[strings.ToLower(sc)] = true
	}

	out := make([]string, 0, len(subcategories))
	for _, sc := range subcategories {
		lc := strings.ToLower(sc)
		if !valid[lc] {
			return nil, domain.ErrInvalidSubcategories
		}
		out = append(out, lc)
	}
	return out, nil
}
