package main

import (
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/config"
	"pehlione.com/admin/internal/modules/categories"
	"pehlione.com/admin/internal/modules/coupons"
	"pehlione.com/admin/internal/modules/products"
	"pehlione.com/admin/internal/modules/staff"
)

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

	models := []any{
		&categories.Category{},
		&coupons.Coupon{},
		&products.Product{},
		&products.Image{},
		&staff.Member{},
	}
	if err := db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4").AutoMigrate(models...); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err == nil {
			log.Printf("✓ %s table ready", stmt.Schema.Table)
		}
	}
}
