package wishlist

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jordanvasquez/threadline-backend/pkg/db/models"
	dbtypes "github.com/jordanvasquez/threadline-backend/pkg/db/types"
	"github.com/jordanvasquez/threadline-backend/pkg/enums"
)

var testSchemas = []string{
	`CREATE TABLE users (
    id text PRIMARY KEY,
    email text NOT NULL UNIQUE,
    password_hash text NOT NULL,
    name text NOT NULL DEFAULT '',
    is_active integer NOT NULL DEFAULT 1,
    last_login_at datetime,
    created_at datetime NOT NULL,
    updated_at datetime NOT NULL
)`,
	`CREATE TABLE products (
    id text PRIMARY KEY,
    public_id integer NOT NULL UNIQUE,
    name text NOT NULL,
    brand text NOT NULL,
    category text NOT NULL,
    gender text NOT NULL,
    price numeric NOT NULL,
    mrp numeric NOT NULL,
    discount_display_label text,
    search_image text NOT NULL DEFAULT '',
    images text NOT NULL DEFAULT '[]',
    variants text NOT NULL DEFAULT '[]',
    sizes text NOT NULL DEFAULT 'Onesize',
    primary_colour text NOT NULL DEFAULT '',
    additional_info text,
    rating real NOT NULL DEFAULT 0,
    rating_count integer NOT NULL DEFAULT 0,
    system_attributes text NOT NULL DEFAULT '{}',
    is_active integer NOT NULL DEFAULT 1,
    is_out_of_stock integer NOT NULL DEFAULT 0,
    created_at datetime NOT NULL,
    updated_at datetime NOT NULL
)`,
	`CREATE TABLE wishlist_items (
    id text PRIMARY KEY,
    user_id text NOT NULL,
    product_id text NOT NULL,
    created_at datetime NOT NULL,
    UNIQUE (user_id, product_id)
)`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	for _, schema := range testSchemas {
		if err := conn.Exec(schema).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("tl_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Name:         "Wishlist Tester",
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, publicID int64, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		PublicID:    publicID,
		Name:        fmt.Sprintf("Wishlist Product %d", publicID),
		Brand:       "Threadline",
		Category:    "Tshirts",
		Gender:      enums.GenderUnisex,
		Price:       decimal.RequireFromString("499.00"),
		MRP:         decimal.RequireFromString("999.00"),
		SearchImage: "https://cdn.example.com/p.jpg",
		Variants: dbtypes.VariantList{
			{SKUID: publicID*100 + 1, Label: "M", Inventory: 4, Available: true},
		},
		PrimaryColour:    "Black",
		Rating:           4.0,
		RatingCount:      9,
		SystemAttributes: pq.StringArray{},
		IsActive:         active,
	}
	product.RecomputeOutOfStock()
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
