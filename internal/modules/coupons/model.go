package coupons

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

const (
	StatusActive    = "active"
	StatusScheduled = "scheduled"
	StatusExpired   = "expired"
	StatusInactive  = "inactive"
)

type Coupon struct {
	ID                   string                      `gorm:"type:char(36);primaryKey" json:"id"`
	Code                 string                      `gorm:"type:varchar(40);not null;uniqueIndex:ux_coupons_code" json:"code"`
	Name                 string                      `gorm:"type:varchar(120);not null" json:"name"`
	Description          string                      `gorm:"type:text" json:"description"`
	DiscountType         string                      `gorm:"type:varchar(16);not null" json:"discountType"`
	DiscountValue        float64                     `gorm:"type:decimal(12,2);not null" json:"discountValue"`
	MinOrderAmount       *float64                    `gorm:"type:decimal(12,2)" json:"minOrderAmount,omitempty"`
	MaxDiscountAmount    *float64                    `gorm:"type:decimal(12,2)" json:"maxDiscountAmount,omitempty"`
	ValidFrom            time.Time                   `gorm:"type:datetime(3);not null;index:ix_coupons_validity,priority:1" json:"validFrom"`
	ValidUntil           *time.Time                  `gorm:"type:datetime(3);index:ix_coupons_validity,priority:2" json:"validUntil,omitempty"`
	UsageLimit           *int                        `json:"usageLimit,omitempty"`
	PerUserLimit         *int                        `json:"perUserLimit,omitempty"`
	UsedCount            int                         `gorm:"not null;default:0" json:"usedCount"`
	ApplicableCategories datatypes.JSONSlice[string] `gorm:"type:json" json:"applicableCategories"`
	ApplicableProducts   datatypes.JSONSlice[string] `gorm:"type:json" json:"applicableProducts"`
	IsActive             bool                        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt            time.Time                   `gorm:"type:datetime(3);not null" json:"createdAt"`
	UpdatedAt            time.Time                   `gorm:"type:datetime(3);not null" json:"updatedAt"`
}

func (Coupon) TableName() string { return "coupons" }

// Status derives the lifecycle label shown in lists.
func (c Coupon) Status(now time.Time) string {
	switch {
	case !c.IsActive:
		return StatusInactive
	case c.ValidUntil != nil && !c.ValidUntil.After(now):
		return StatusExpired
	case c.ValidFrom.After(now):
		return StatusScheduled
	default:
		return StatusActive
	}
}

// Input is the create/update payload.
type Input struct {
	Code                 string     `json:"code" yaml:"code" binding:"required"`
	Name                 string     `json:"name" yaml:"name" binding:"required"`
	Description          string     `json:"description" yaml:"description"`
	DiscountType         string     `json:"discountType" yaml:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue        float64    `json:"discountValue" yaml:"discountValue"`
	MinOrderAmount       *float64   `json:"minOrderAmount,omitempty" yaml:"minOrderAmount,omitempty"`
	MaxDiscountAmount    *float64   `json:"maxDiscountAmount,omitempty" yaml:"maxDiscountAmount,omitempty"`
	ValidFrom            time.Time  `json:"validFrom" yaml:"validFrom"`
	ValidUntil           *time.Time `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
	UsageLimit           *int       `json:"usageLimit,omitempty" yaml:"usageLimit,omitempty"`
	PerUserLimit         *int       `json:"perUserLimit,omitempty" yaml:"perUserLimit,omitempty"`
	ApplicableCategories []string   `json:"applicableCategories" yaml:"applicableCategories"`
	ApplicableProducts   []string   `json:"applicableProducts" yaml:"applicableProducts"`
	IsActive             bool       `json:"isActive" yaml:"isActive"`
}

func (c Coupon) Input() Input {
	return Input{
		Code:                 c.Code,
		Name:                 c.Name,
		Description:          c.Description,
		DiscountType:         c.DiscountType,
		DiscountValue:        c.DiscountValue,
		MinOrderAmount:       c.MinOrderAmount,
		MaxDiscountAmount:    c.MaxDiscountAmount,
		ValidFrom:            c.ValidFrom,
		ValidUntil:           c.ValidUntil,
		UsageLimit:           c.UsageLimit,
		PerUserLimit:         c.PerUserLimit,
		ApplicableCategories: []string(c.ApplicableCategories),
		ApplicableProducts:   []string(c.ApplicableProducts),
		IsActive:             c.IsActive,
	}
}
