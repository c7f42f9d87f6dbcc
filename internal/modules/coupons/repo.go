package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pehlione.com/admin/internal/shared/dberr"
	"pehlione.com/admin/internal/shared/paging"
)

type Repository interface {
	List(ctx context.Context, p paging.Params, now time.Time) (paging.Result[Coupon], error)
	Get(ctx context.Context, id string) (Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	// Update loads the row under lock, applies fn and saves the result.
	Update(ctx context.Context, id string, fn func(*Coupon) error) (Coupon, error)
	Delete(ctx context.Context, id string) error
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p paging.Params, now time.Time) (paging.Result[Coupon], error) {
	base := r.db.WithContext(ctx).Model(&Coupon{})
	switch p.Status {
	case StatusInactive:
		base = base.Where("is_active = ?", false)
	case StatusExpired:
		base = base.Where("is_active = ? AND valid_until IS NOT NULL AND valid_until <= ?", true, now)
	case StatusScheduled:
		base = base.Where("is_active = ? AND valid_from > ? AND (valid_until IS NULL OR valid_until > ?)", true, now, now)
	case StatusActive:
		base = base.Where("is_active = ? AND valid_from <= ? AND (valid_until IS NULL OR valid_until > ?)", true, now, now)
	}
	if p.Q != "" {
		base = base.Where("(code LIKE ? OR name LIKE ?)", p.Like(), p.Like())
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return paging.Result[Coupon]{}, err
	}

	var items []Coupon
	if err := base.
		Order("created_at DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return paging.Result[Coupon]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

func (r *Repo) Get(ctx context.Context, id string) (Coupon, error) {
	var c Coupon
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if dberr.IsNotFound(err) {
		return Coupon{}, ErrNotFound
	}
	return c, err
}

func (r *Repo) Create(ctx context.Context, c *Coupon) error {
	now := time.Now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt, c.UpdatedAt = now, now
	err := r.db.WithContext(ctx).Create(c).Error
	if dberr.IsDuplicateKey(err) {
		return ErrDuplicateCode
	}
	return err
}

func (r *Repo) Update(ctx context.Context, id string, fn func(*Coupon) error) (Coupon, error) {
	var out Coupon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Coupon
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&c, "id = ?", id).Error; err != nil {
			if dberr.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := fn(&c); err != nil {
			return err
		}
		c.UpdatedAt = time.Now()
		if err := tx.Save(&c).Error; err != nil {
			if dberr.IsDuplicateKey(err) {
				return ErrDuplicateCode
			}
			return err
		}
		out = c
		return nil
	})
	return out, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Coupon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
