package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
	"github.com/jordanvasquez/threadline-backend/pkg/pagination"
)

// txRunner abstracts the transactional scope the stock mutation runs inside.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
	DB   txRunner
}

// Service exposes catalog read paths and the inventory mutation.
type Service interface {
	GetProductDetail(ctx context.Context, publicID int64) (*ProductDetailDTO, error)
	FindByPublicIDs(ctx context.Context, publicIDs []int64) ([]ProductSummary, error)
	Search(ctx context.Context, filters SearchFilters, params pagination.Params) (SearchPageDTO, error)
	RecordStockMutation(ctx context.Context, publicID, skuID int64, quantity int) (*ProductDetailDTO, error)
}

type service struct {
	repo *Repository
	db   txRunner
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{repo: params.Repo, db: params.DB}, nil
}

// GetProductDetail resolves the public id to the full product payload.
func (s *service) GetProductDetail(ctx context.Context, publicID int64) (*ProductDetailDTO, error) {
	product, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return NewProductDetailDTO(product), nil
}

// FindByPublicIDs projects the active subset of the requested ids. Missing
// and inactive ids are dropped, never reported as errors.
func (s *service) FindByPublicIDs(ctx context.Context, publicIDs []int64) ([]ProductSummary, error) {
	products, err := s.repo.FindActiveByPublicIDs(ctx, publicIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, NewProductSummary(&products[i]))
	}
	return summaries, nil
}

// Search returns the filtered, cursor-paginated catalog page.
func (s *service) Search(ctx context.Context, filters SearchFilters, params pagination.Params) (SearchPageDTO, error) {
	products, nextCursor, total, err := s.repo.Search(ctx, filters, params)
	if err != nil {
		return SearchPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, NewProductSummary(&products[i]))
	}
	return SearchPageDTO{
		Products:   summaries,
		Total:      total,
		NextCursor: nextCursor,
	}, nil
}

// RecordStockMutation decrements a variant's counter inside one transaction.
// The variant flips to unavailable when its counter reaches zero, and the
// product's out-of-stock flag is recomputed before the single row write.
// Validation failures leave the row untouched.
func (s *service) RecordStockMutation(ctx context.Context, publicID, skuID int64, quantity int) (*ProductDetailDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	var dto *ProductDetailDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindByPublicID(ctx, publicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		variant := product.Variants.Find(skuID)
		if variant == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "sku not found on product")
		}
		if quantity > variant.Inventory {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "requested quantity exceeds available inventory")
		}

		variant.Inventory -= quantity
		if variant.Inventory == 0 {
			variant.Available = false
		}
		product.RecomputeOutOfStock()

		if _, err := repo.Save(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist stock mutation")
		}
		dto = NewProductDetailDTO(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
