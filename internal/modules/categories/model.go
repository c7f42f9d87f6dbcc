package categories

import (
	"time"

	"pehlione.com/admin/internal/wizard"
)

type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(140);not null;uniqueIndex:ux_categories_slug" json:"slug"`
	ParentID    *string   `gorm:"type:char(36);index:ix_categories_parent_id" json:"parentId,omitempty"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sortOrder"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// Input is the create/update payload.
type Input struct {
	Name        string  `json:"name" yaml:"name" binding:"required,max=120"`
	Slug        string  `json:"slug" yaml:"slug" binding:"omitempty,max=140"`
	ParentID    *string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Description string  `json:"description" yaml:"description"`
	SortOrder   int     `json:"sortOrder" yaml:"sortOrder"`
	IsActive    bool    `json:"isActive" yaml:"isActive"`
}

func (c Category) Input() Input {
	return Input{
		Name:        c.Name,
		Slug:        c.Slug,
		ParentID:    c.ParentID,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
	}
}

// FormData renders the payload the way the wizard holds it.
func (in Input) FormData() wizard.FormData {
	parent := ""
	if in.ParentID != nil {
		parent = *in.ParentID
	}
	return wizard.FormData{
		"name":        in.Name,
		"slug":        in.Slug,
		"parentId":    parent,
		"description": in.Description,
		"sortOrder":   float64(in.SortOrder),
		"isActive":    in.IsActive,
	}
}

// Seed is the edit-wizard seed for an existing category.
func Seed(c Category) wizard.FormData { return c.Input().FormData() }
