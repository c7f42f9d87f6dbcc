package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/config"
	"pehlione.com/admin/internal/shared/dberr"
)

// indexes backs the hub list filters. Safe to re-run.
var indexes = []struct{ name, sql string }{
	{"ix_coupons_active_window", `CREATE INDEX ix_coupons_active_window ON coupons (is_active, valid_from, valid_until)`},
	{"ix_coupons_created", `CREATE INDEX ix_coupons_created ON coupons (created_at)`},
	{"ix_products_status_created", `CREATE INDEX ix_products_status_created ON products (status, created_at)`},
	{"ix_product_images_product_pos", `CREATE INDEX ix_product_images_product_pos ON product_images (product_id, position)`},
	{"ix_staff_role_active", `CREATE INDEX ix_staff_role_active ON staff_members (role, is_active)`},
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	for _, ix := range indexes {
		err := db.Exec(ix.sql).Error
		switch {
		case err == nil:
			log.Printf("✓ %s created", ix.name)
		case dberr.IsDuplicateIndex(err):
			log.Printf("· %s already exists", ix.name)
		default:
			log.Fatalf("Failed: %s: %v", ix.name, err)
		}
	}
}
