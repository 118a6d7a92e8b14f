package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateMigrationsDir(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestCoreSchemaMigration(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("migrations", "20250301120000_create_core_schema.sql"))
	if err != nil {
		t.Fatalf("read schema migration: %v", err)
	}
	sql := string(raw)

	for _, table := range []string{
		"CREATE TABLE users",
		"CREATE TABLE roles",
		"CREATE TABLE user_roles",
		"CREATE TABLE categories",
		"CREATE TABLE products",
		"CREATE TABLE cart_entries",
		"CREATE TABLE orders",
		"CREATE TABLE order_items",
		"CREATE TABLE order_history",
		"CREATE TABLE reviews",
	} {
		if !strings.Contains(sql, table) {
			t.Errorf("schema migration missing %q", table)
		}
	}

	// stock can never go negative at the database level either
	if !strings.Contains(sql, "CHECK (stock >= 0)") {
		t.Error("products.stock must carry a non-negative check")
	}
	if !strings.Contains(sql, "CHECK (rating BETWEEN 1 AND 5)") {
		t.Error("reviews.rating must be constrained to 1..5")
	}
	if !strings.Contains(sql, "product_id uuid REFERENCES products (id) ON DELETE SET NULL") {
		t.Error("order_items.product_id must null out when the product is deleted")
	}
	if !strings.Contains(sql, "category_id uuid REFERENCES categories (id) ON DELETE SET NULL") {
		t.Error("products.category_id must null out when the category is deleted")
	}
}

func TestRoleSeedMigration(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("migrations", "20250301120100_seed_roles.sql"))
	if err != nil {
		t.Fatalf("read seed migration: %v", err)
	}
	sql := string(raw)

	if !strings.Contains(sql, "'User'") || !strings.Contains(sql, "'Admin'") {
		t.Error("seed migration must insert the User and Admin roles")
	}
	if !strings.Contains(sql, "ON CONFLICT (name) DO NOTHING") {
		t.Error("seed migration must be idempotent")
	}
}
