package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	dbtypes "github.com/jordanvasquez/threadline-backend/pkg/db/types"
	"github.com/jordanvasquez/threadline-backend/pkg/enums"
)

// Product is a catalog entry. PublicID is the stable numeric id clients use
// in URLs and wishlist calls; ID is the storage-internal reference the
// wishlist relation points at.
type Product struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PublicID int64     `gorm:"column:public_id;not null;uniqueIndex:products_public_id_key"`

	Name     string       `gorm:"column:name;not null"`
	Brand    string       `gorm:"column:brand;not null;index:products_brand_idx"`
	Category string       `gorm:"column:category;not null;index:products_category_idx"`
	Gender   enums.Gender `gorm:"column:gender;not null;index:products_gender_idx"`

	Price                decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	MRP                  decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);not null"`
	DiscountDisplayLabel *string         `gorm:"column:discount_display_label"`

	SearchImage string            `gorm:"column:search_image;not null"`
	Images      dbtypes.ImageList `gorm:"column:images;type:jsonb;not null;default:'[]'"`

	// Variants are embedded so inventory and the derived flag always change
	// in the same row write.
	Variants dbtypes.VariantList `gorm:"column:variants;type:jsonb;not null;default:'[]'"`
	Sizes    string              `gorm:"column:sizes;not null;default:'Onesize'"`

	PrimaryColour  string  `gorm:"column:primary_colour;not null;index:products_colour_idx"`
	AdditionalInfo *string `gorm:"column:additional_info"`

	Rating      float64 `gorm:"column:rating;not null;default:0"`
	RatingCount int     `gorm:"column:rating_count;not null;default:0"`

	SystemAttributes pq.StringArray `gorm:"column:system_attributes;type:text[];not null;default:ARRAY[]::text[]"`

	IsActive     bool `gorm:"column:is_active;not null;default:true;index:products_active_idx"`
	IsOutOfStock bool `gorm:"column:is_out_of_stock;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// RecomputeOutOfStock refreshes the persisted availability flag from the
// variant counters. Every write path that touches Variants must call this
// before saving.
func (p *Product) RecomputeOutOfStock() {
	p.IsOutOfStock = p.Variants.TotalAvailable() == 0
}

// InStock reports whether any available variant still has inventory.
func (p *Product) InStock() bool {
	return p.Variants.TotalAvailable() > 0
}
