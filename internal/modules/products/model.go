package products

import (
	"math"
	"time"

	"gorm.io/datatypes"

	"pehlione.com/admin/internal/wizard"
)

const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

var (
	Statuses   = []string{StatusDraft, StatusActive, StatusArchived}
	Currencies = []string{"EUR", "USD", "GBP", "TRY"}
)

type Product struct {
	ID          string                      `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string                      `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string                      `gorm:"type:varchar(220);not null;uniqueIndex:ux_products_slug" json:"slug"`
	Description string                      `gorm:"type:text" json:"description"`
	Status      string                      `gorm:"type:varchar(16);not null;index:ix_products_status" json:"status"`
	PriceCents  int                         `gorm:"not null" json:"priceCents"`
	Currency    string                      `gorm:"type:char(3);not null" json:"currency"`
	Stock       int                         `gorm:"not null;default:0" json:"stock"`
	Categories  datatypes.JSONSlice[string] `gorm:"type:json" json:"categories"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json" json:"tags"`
	Images      []Image                     `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt   time.Time                   `gorm:"type:datetime(3);not null" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"type:datetime(3);not null" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type Image struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_product_images_product_id" json:"productId"`
	StorageKey string    `gorm:"type:varchar(255);not null" json:"-"`
	URL        string    `gorm:"type:varchar(512);not null" json:"url"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null" json:"createdAt"`
}

func (Image) TableName() string { return "product_images" }

// Price is the decimal price.
func (p Product) Price() float64 { return float64(p.PriceCents) / 100 }

// Input is the create/update payload. Price is decimal; it is stored in cents.
type Input struct {
	Name        string   `json:"name" yaml:"name" binding:"required,max=200"`
	Slug        string   `json:"slug" yaml:"slug" binding:"omitempty,max=220"`
	Description string   `json:"description" yaml:"description"`
	Status      string   `json:"status" yaml:"status" binding:"omitempty,oneof=draft active archived"`
	Price       float64  `json:"price" yaml:"price"`
	Currency    string   `json:"currency" yaml:"currency"`
	Stock       int      `json:"stock" yaml:"stock"`
	Categories  []string `json:"categories" yaml:"categories"`
	Tags        []string `json:"tags" yaml:"tags"`
}

func (p Product) Input() Input {
	return Input{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Status:      p.Status,
		Price:       p.Price(),
		Currency:    p.Currency,
		Stock:       p.Stock,
		Categories:  []string(p.Categories),
		Tags:        []string(p.Tags),
	}
}

// Cents converts the decimal price.
func (in Input) Cents() int { return int(math.Round(in.Price * 100)) }

// FormData renders the payload the way the wizard holds it.
func (in Input) FormData() wizard.FormData {
	return wizard.FormData{
		"name":        in.Name,
		"slug":        in.Slug,
		"description": in.Description,
		"status":      in.Status,
		"price":       in.Price,
		"currency":    in.Currency,
		"stock":       float64(in.Stock),
		"categories":  wizard.JoinList(in.Categories),
		"tags":        wizard.JoinList(in.Tags),
	}
}

// Seed is the edit-wizard seed for an existing product.
func Seed(p Product) wizard.FormData { return p.Input().FormData() }
