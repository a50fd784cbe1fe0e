package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jordanvasquez/threadline-backend/pkg/migrate"
)

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"public_id bigint NOT NULL",
		"variants jsonb NOT NULL DEFAULT '[]'",
		"system_attributes text[] NOT NULL DEFAULT ARRAY[]::text[]",
		"CREATE UNIQUE INDEX IF NOT EXISTS products_public_id_key",
		"CREATE INDEX IF NOT EXISTS products_search_idx",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWishlistMigrationEnforcesSetSemantics(t *testing.T) {
	content := readMigration(t, "*_create_wishlist_items_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS wishlist_items",
		"CREATE UNIQUE INDEX IF NOT EXISTS wishlist_items_user_product_key ON wishlist_items (user_id, product_id)",
		"REFERENCES users (id) ON DELETE CASCADE",
		"REFERENCES products (id) ON DELETE CASCADE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
