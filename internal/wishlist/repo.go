package wishlist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence. Every mutation is a single
// SQL statement, so per-(user, product) serializability comes from the
// storage engine and the unique index, not from application locking.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry. The returned flag is true only when this
// call created the row; a conflicting concurrent insert reports false here.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return false, gorm.ErrInvalidValue
	}

	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO wishlist_items (id, user_id, product_id, created_at) VALUES (?, ?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`,
		uuid.New(), userID, productID, time.Now().UTC(),
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveItem deletes the entry if it exists. Removing a non-member is a no-op.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// Clear drops every entry for the user, present or not.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.WishlistItem{}).
		Error
}

// ListRefs returns the raw product references in insertion order.
func (r *Repository) ListRefs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	refs := []uuid.UUID{}
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("product_id", &refs).
		Error; err != nil {
		return nil, err
	}
	return refs, nil
}

// ListResolved joins each member to its product row, keeping only active
// products. The underlying set is never modified by this read: a member
// whose product went inactive simply drops out of the resolved view.
func (r *Repository) ListResolved(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("p.*").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ? AND p.is_active = ?", userID, true).
		Order("wi.created_at ASC").
		Scan(&products).
		Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Count reports the raw set size, resolvable or not.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return count, nil
}
