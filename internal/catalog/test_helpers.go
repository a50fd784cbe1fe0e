package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	dbtypes "github.com/jordanvasquez/threadline-backend/pkg/db/types"
	"github.com/jordanvasquez/threadline-backend/pkg/enums"
)

type testProductOption func(*models.Product)

func withBrand(brand string) testProductOption {
	return func(p *models.Product) { p.Brand = brand }
}

func withCategory(category string) testProductOption {
	return func(p *models.Product) { p.Category = category }
}

func withPrice(price string) testProductOption {
	return func(p *models.Product) { p.Price = decimal.RequireFromString(price) }
}

func withRating(rating float64) testProductOption {
	return func(p *models.Product) { p.Rating = rating }
}

func withColour(colour string) testProductOption {
	return func(p *models.Product) { p.PrimaryColour = colour }
}

func withGender(gender enums.Gender) testProductOption {
	return func(p *models.Product) { p.Gender = gender }
}

func inactive() testProductOption {
	return func(p *models.Product) { p.IsActive = false }
}

func withVariants(variants ...dbtypes.Variant) testProductOption {
	return func(p *models.Product) {
		p.Variants = variants
		p.RecomputeOutOfStock()
	}
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, publicID int64, opts ...testProductOption) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		PublicID:    publicID,
		Name:        fmt.Sprintf("Test Product %d", publicID),
		Brand:       "Threadline",
		Category:    "Tshirts",
		Gender:      enums.GenderMen,
		Price:       decimal.RequireFromString("499.00"),
		MRP:         decimal.RequireFromString("999.00"),
		SearchImage: "https://cdn.example.com/p.jpg",
		Variants: dbtypes.VariantList{
			{SKUID: publicID*100 + 1, Label: "S", Inventory: 5, Available: true},
			{SKUID: publicID*100 + 2, Label: "M", Inventory: 3, Available: true},
		},
		PrimaryColour:    "Blue",
		Rating:           4.2,
		RatingCount:      17,
		SystemAttributes: pq.StringArray{"casual"},
		IsActive:         true,
	}
	for _, opt := range opts {
		opt(product)
	}
	product.RecomputeOutOfStock()
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
