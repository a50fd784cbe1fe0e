package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	"github.com/jordanvasquez/threadline-backend/pkg/pagination"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product by its storage reference.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByPublicID loads the product by its client-facing numeric id.
func (r *Repository) FindByPublicID(ctx context.Context, publicID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "public_id = ?", publicID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindActiveByPublicIDs returns the active products among the requested ids.
// Unknown and inactive ids are silently omitted. Callers that need to know
// which ids resolved must diff the result against their input.
func (r *Repository) FindActiveByPublicIDs(ctx context.Context, publicIDs []int64) ([]models.Product, error) {
	if len(publicIDs) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("public_id IN ? AND is_active = ?", publicIDs, true).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists the full product row, variants included.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Search applies the conjunction of set filters over active products and
// returns a cursor-paginated page ordered by (created_at, id) descending.
func (r *Repository) Search(ctx context.Context, filters SearchFilters, params pagination.Params) ([]models.Product, string, int64, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", 0, err
	}

	base := r.applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), filters)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, "", 0, err
	}

	query := base.Session(&gorm.Session{})
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}
	query = query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, "", 0, err
	}

	nextCursor := ""
	if len(products) > normalizedLimit {
		products = products[:normalizedLimit]
		last := products[len(products)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return products, nextCursor, total, nil
}

func (r *Repository) applyFilters(query *gorm.DB, filters SearchFilters) *gorm.DB {
	query = query.Where("is_active = ?", true)

	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Brand != "" {
		query = query.Where("brand = ?", filters.Brand)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
	}
	if filters.Colour != "" {
		query = query.Where("primary_colour = ?", filters.Colour)
	}
	if filters.PriceMin != nil {
		query = query.Where("price >= ?", filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("price <= ?", filters.PriceMax)
	}
	if filters.MinRating != nil {
		query = query.Where("rating >= ?", *filters.MinRating)
	}
	return query
}
