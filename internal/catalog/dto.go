package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	dbtypes "github.com/jordanvasquez/threadline-backend/pkg/db/types"
)

// ProductSummary is the compact projection used by search results and the
// resolved wishlist view. InStock is derived from the variant counters at
// projection time so a stale flag can never leak to clients.
type ProductSummary struct {
	ProductID            int64           `json:"productId"`
	ProductName          string          `json:"productName"`
	Brand                string          `json:"brand"`
	Price                decimal.Decimal `json:"price"`
	MRP                  decimal.Decimal `json:"mrp"`
	DiscountDisplayLabel *string         `json:"discountDisplayLabel,omitempty"`
	SearchImage          string          `json:"searchImage"`
	AdditionalInfo       *string         `json:"additionalInfo,omitempty"`
	Rating               float64         `json:"rating"`
	RatingCount          int             `json:"ratingCount"`
	Category             string          `json:"category"`
	InStock              bool            `json:"inStock"`
}

// NewProductSummary projects the persisted model into the client shape.
func NewProductSummary(product *models.Product) ProductSummary {
	return ProductSummary{
		ProductID:            product.PublicID,
		ProductName:          product.Name,
		Brand:                product.Brand,
		Price:                product.Price,
		MRP:                  product.MRP,
		DiscountDisplayLabel: product.DiscountDisplayLabel,
		SearchImage:          product.SearchImage,
		AdditionalInfo:       product.AdditionalInfo,
		Rating:               product.Rating,
		RatingCount:          product.RatingCount,
		Category:             product.Category,
		InStock:              product.InStock(),
	}
}

// ProductDetailDTO is the full product payload for detail pages.
type ProductDetailDTO struct {
	ProductSummary
	Gender    string              `json:"gender"`
	Images    dbtypes.ImageList   `json:"images"`
	Variants  dbtypes.VariantList `json:"variants"`
	Sizes     string              `json:"sizes"`
	Colour    string              `json:"primaryColour"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// NewProductDetailDTO builds the detail payload from the persisted model.
func NewProductDetailDTO(product *models.Product) *ProductDetailDTO {
	return &ProductDetailDTO{
		ProductSummary: NewProductSummary(product),
		Gender:         product.Gender.String(),
		Images:         product.Images,
		Variants:       product.Variants,
		Sizes:          product.Sizes,
		Colour:         product.PrimaryColour,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// SearchFilters is an independent conjunction: every set filter must match.
type SearchFilters struct {
	Query     string
	Category  string
	Brand     string
	Gender    string
	Colour    string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	MinRating *float64
}

// SearchPageDTO is a cursor-paginated slice of search results.
type SearchPageDTO struct {
	Products   []ProductSummary `json:"products"`
	Total      int64            `json:"total"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// Ref is the raw storage reference for a product, as exposed by wishlist
// mutation responses.
type Ref = uuid.UUID
