package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const productsTestSchema = `
CREATE TABLE products (
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
)`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.Exec(productsTestSchema).Error; err != nil {
		t.Fatalf("create products schema: %v", err)
	}
	return conn
}
