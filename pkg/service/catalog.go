package service

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/joyashop/pkg/models"
)

// CatalogService manages products and categories, keeps the categoryName
// denormalization and the productCount counter in step, and serves product
// reads through the cache.
type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	cache      ProductCache
	logger     *zap.Logger
}

func NewCatalogService(products ProductStore, categories CategoryStore, cache ProductCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		cache:      cache,
		logger:     logger,
	}
}

// --- products ---

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, errors.Wrap(models.ErrInvalidInput, "product name is required")
	}
	if p.Price < 0 {
		return nil, errors.Wrap(models.ErrInvalidInput, "price cannot be negative")
	}
	if p.Stock < 0 {
		return nil, errors.Wrap(models.ErrInvalidInput, "stock cannot be negative")
	}

	category, err := s.categories.FindByID(ctx, p.CategoryID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, errors.Wrapf(models.ErrInvalidInput, "category %s does not exist", p.CategoryID.Hex())
		}
		return nil, err
	}
	p.CategoryName = category.Name

	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}

	if err := s.categories.IncProductCount(ctx, p.CategoryID, 1); err != nil {
		s.logger.Warn("product count not incremented",
			zap.String("category_id", p.CategoryID.Hex()),
			zap.Error(err))
	}
	return p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	// View counting is best effort and bypasses the cache on purpose.
	if err := s.products.IncViews(ctx, id); err != nil {
		s.logger.Debug("view counter not incremented", zap.Error(err))
	}

	if s.cache != nil {
		if p, err := s.cache.GetProduct(ctx, id.Hex()); err == nil {
			return p, nil
		}
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheProduct(ctx, p); err != nil {
			s.logger.Debug("product not cached", zap.Error(err))
		}
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, errors.Wrap(models.ErrInvalidInput, "price cannot be negative")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, errors.Wrap(models.ErrInvalidInput, "stock cannot be negative")
	}

	// Moving the product to another category re-validates the reference,
	// refreshes the denormalized name and shifts the counters.
	var previousCategory primitive.ObjectID
	if patch.CategoryID != nil {
		existing, err := s.products.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		previousCategory = existing.CategoryID

		category, err := s.categories.FindByID(ctx, *patch.CategoryID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, errors.Wrapf(models.ErrInvalidInput, "category %s does not exist", patch.CategoryID.Hex())
			}
			return nil, err
		}
		patch.CategoryName = &category.Name
	}

	updated, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil && previousCategory != *patch.CategoryID {
		if err := s.categories.IncProductCount(ctx, previousCategory, -1); err != nil {
			s.logger.Warn("product count not decremented",
				zap.String("category_id", previousCategory.Hex()), zap.Error(err))
		}
		if err := s.categories.IncProductCount(ctx, *patch.CategoryID, 1); err != nil {
			s.logger.Warn("product count not incremented",
				zap.String("category_id", patch.CategoryID.Hex()), zap.Error(err))
		}
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categories.IncProductCount(ctx, deleted.CategoryID, -1); err != nil {
		s.logger.Warn("product count not decremented",
			zap.String("category_id", deleted.CategoryID.Hex()), zap.Error(err))
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProduct(ctx, id.Hex()); err != nil {
		s.logger.Debug("product cache not invalidated", zap.Error(err))
	}
}

// --- categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.Name == "" {
		return nil, errors.Wrap(models.ErrInvalidInput, "category name is required")
	}
	c.ProductCount = 0
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id primitive.ObjectID, patch models.CategoryPatch) (*models.Category, error) {
	return s.categories.Update(ctx, id, patch)
}

// DeleteCategory refuses to remove a category that still has products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category.ProductCount > 0 {
		return errors.Wrapf(models.ErrInvalidInput,
			"category %s still has %d associated products", id.Hex(), category.ProductCount)
	}
	return s.categories.Delete(ctx, id)
}
