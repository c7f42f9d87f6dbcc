package categories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/shared/dberr"
	"pehlione.com/admin/internal/shared/paging"
)

type Repository interface {
	List(ctx context.Context, p paging.Params) (paging.Result[Category], error)
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	Names(ctx context.Context, ids []string) (map[string]string, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p paging.Params) (paging.Result[Category], error) {
	base := r.db.WithContext(ctx).Model(&Category{})
	switch p.Status {
	case "active":
		base = base.Where("is_active = ?", true)
	case "inactive":
		base = base.Where("is_active = ?", false)
	}
	if p.Q != "" {
		base = base.Where("(name LIKE ? OR slug LIKE ?)", p.Like(), p.Like())
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return paging.Result[Category]{}, err
	}

	var items []Category
	if err := base.
		Order("sort_order ASC, name ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return paging.Result[Category]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

func (r *Repo) Get(ctx context.Context, id string) (Category, error) {
	var c Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if dberr.IsNotFound(err) {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *Repo) Create(ctx context.Context, c *Category) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt, c.UpdatedAt = now, now
	err := r.db.WithContext(ctx).Create(c).Error
	if dberr.IsDuplicateKey(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *Repo) Update(ctx context.Context, c *Category) error {
	c.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":        c.Name,
			"slug":        c.Slug,
			"parent_id":   c.ParentID,
			"description": c.Description,
			"sort_order":  c.SortOrder,
			"is_active":   c.IsActive,
			"updated_at":  c.UpdatedAt,
		})
	if dberr.IsDuplicateKey(res.Error) {
		return ErrDuplicateSlug
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Names(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Category
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c.Name
	}
	return out, nil
}
