package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
)

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	CatalogRepo  *catalog.Repository
	UserRepo     userLoader
}

// Service exposes business rules for wishlist management. Mutations return
// the canonical post-mutation set of raw references; Get returns the
// resolved projection.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (ResolvedWishlistDTO, error)
	Add(ctx context.Context, userID uuid.UUID, publicProductID int64) (AddResultDTO, error)
	Remove(ctx context.Context, userID uuid.UUID, publicProductID int64) ([]uuid.UUID, error)
	Clear(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	wishlistRepo *Repository
	catalogRepo  *catalog.Repository
	userRepo     userLoader
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		catalogRepo:  params.CatalogRepo,
		userRepo:     params.UserRepo,
	}, nil
}

// Get returns the resolved wishlist view. The user row must still exist;
// the auth layer normally guarantees that, but the read guards it anyway.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (ResolvedWishlistDTO, error) {
	if userID == uuid.Nil {
		return ResolvedWishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedWishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return ResolvedWishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	products, err := s.wishlistRepo.ListResolved(ctx, userID)
	if err != nil {
		return ResolvedWishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve wishlist")
	}

	summaries := make([]catalog.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, catalog.NewProductSummary(&products[i]))
	}
	return ResolvedWishlistDTO{Products: summaries}, nil
}

// Add resolves the public product id and inserts the membership. Adding a
// member that is already present is not an error; the result says which of
// the two happened.
func (s *service) Add(ctx context.Context, userID uuid.UUID, publicProductID int64) (AddResultDTO, error) {
	if userID == uuid.Nil {
		return AddResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	product, err := s.resolveProduct(ctx, publicProductID)
	if err != nil {
		return AddResultDTO{}, err
	}

	added, err := s.wishlistRepo.AddItem(ctx, userID, product.ID)
	if err != nil {
		return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}

	refs, err := s.wishlistRepo.ListRefs(ctx, userID)
	if err != nil {
		return AddResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist refs")
	}
	return AddResultDTO{NewlyAdded: added, Refs: refs}, nil
}

// Remove drops the membership if present and returns the canonical set.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, publicProductID int64) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	product, err := s.resolveProduct(ctx, publicProductID)
	if err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.RemoveItem(ctx, userID, product.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}

	refs, err := s.wishlistRepo.ListRefs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist refs")
	}
	return refs, nil
}

// Clear empties the set unconditionally and returns the (empty) canonical set.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.wishlistRepo.Clear(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear wishlist")
	}
	return []uuid.UUID{}, nil
}

// resolveProduct maps the client-facing numeric id to the storage row. A
// product that has gone inactive still resolves: existing members must stay
// removable and an inactive product is not the caller's mistake.
func (s *service) resolveProduct(ctx context.Context, publicProductID int64) (*models.Product, error) {
	product, err := s.catalogRepo.FindByPublicID(ctx, publicProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
