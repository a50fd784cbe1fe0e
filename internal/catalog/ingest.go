package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm/clause"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	dbtypes "github.com/jordanvasquez/threadline-backend/pkg/db/types"
	"github.com/jordanvasquez/threadline-backend/pkg/enums"
)

// SeedRecord is one product in the seed file. The field names mirror the
// client-facing JSON shape.
type SeedRecord struct {
	ProductID            int64              `json:"productId"`
	ProductName          string             `json:"productName"`
	Brand                string             `json:"brand"`
	Category             string             `json:"category"`
	Gender               string             `json:"gender"`
	Price                decimal.Decimal    `json:"price"`
	MRP                  decimal.Decimal    `json:"mrp"`
	DiscountDisplayLabel *string            `json:"discountDisplayLabel"`
	SearchImage          string             `json:"searchImage"`
	Images               dbtypes.ImageList  `json:"images"`
	Variants             []dbtypes.Variant  `json:"variants"`
	Sizes                string             `json:"sizes"`
	PrimaryColour        string             `json:"primaryColour"`
	AdditionalInfo       *string            `json:"additionalInfo"`
	Rating               float64            `json:"rating"`
	RatingCount          int                `json:"ratingCount"`
	SystemAttributes     []string           `json:"systemAttributes"`
	IsActive             *bool              `json:"isActive"`
}

// IngestResult summarizes one bulk load.
type IngestResult struct {
	Loaded  int
	Skipped int
}

// Ingest bulk-loads products from a JSON array. Records are validated and
// upserted one at a time; a bad record is skipped and reported without
// aborting the rest of the file. The out-of-stock flag is recomputed for
// every record on the way in, never trusted from the input.
func (r *Repository) Ingest(ctx context.Context, reader io.Reader) (IngestResult, error) {
	var records []SeedRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return IngestResult{}, fmt.Errorf("decoding seed file: %w", err)
	}

	var result IngestResult
	var errs error
	for i, record := range records {
		product, err := record.toModel()
		if err != nil {
			result.Skipped++
			errs = multierr.Append(errs, fmt.Errorf("record %d (productId %d): %w", i, record.ProductID, err))
			continue
		}
		err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "public_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "brand", "category", "gender", "price", "mrp",
				"discount_display_label", "search_image", "images", "variants",
				"sizes", "primary_colour", "additional_info", "rating",
				"rating_count", "system_attributes", "is_active",
				"is_out_of_stock", "updated_at",
			}),
		}).Create(product).Error
		if err != nil {
			result.Skipped++
			errs = multierr.Append(errs, fmt.Errorf("record %d (productId %d): %w", i, record.ProductID, err))
			continue
		}
		result.Loaded++
	}
	return result, errs
}

func (r SeedRecord) toModel() (*models.Product, error) {
	if r.ProductID <= 0 {
		return nil, fmt.Errorf("productId must be positive")
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return nil, fmt.Errorf("productName is required")
	}
	gender, err := enums.ParseGender(r.Gender)
	if err != nil {
		return nil, err
	}
	for _, variant := range r.Variants {
		if variant.SKUID <= 0 {
			return nil, fmt.Errorf("variant skuId must be positive")
		}
		if variant.Inventory < 0 {
			return nil, fmt.Errorf("variant %d inventory must not be negative", variant.SKUID)
		}
	}

	product := &models.Product{
		ID:                   uuid.New(),
		PublicID:             r.ProductID,
		Name:                 strings.TrimSpace(r.ProductName),
		Brand:                r.Brand,
		Category:             r.Category,
		Gender:               gender,
		Price:                r.Price,
		MRP:                  r.MRP,
		DiscountDisplayLabel: r.DiscountDisplayLabel,
		SearchImage:          r.SearchImage,
		Images:               r.Images,
		Variants:             dbtypes.VariantList(r.Variants),
		PrimaryColour:        r.PrimaryColour,
		AdditionalInfo:       r.AdditionalInfo,
		Rating:               r.Rating,
		RatingCount:          r.RatingCount,
		SystemAttributes:     pq.StringArray(r.SystemAttributes),
		IsActive:             true,
	}
	if r.Sizes != "" {
		product.Sizes = r.Sizes
	} else {
		product.Sizes = "Onesize"
	}
	if product.Images == nil {
		product.Images = dbtypes.ImageList{}
	}
	if product.Variants == nil {
		product.Variants = dbtypes.VariantList{}
	}
	if product.SystemAttributes == nil {
		product.SystemAttributes = pq.StringArray{}
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	product.RecomputeOutOfStock()
	return product, nil
}

// TruncateProducts removes every product row. Used by the seeder when a
// clean reload is requested.
func (r *Repository) TruncateProducts(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Product{}).Error
}
