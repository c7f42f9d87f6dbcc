package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/shared/dberr"
	"pehlione.com/admin/internal/shared/paging"
)

type Repository interface {
	List(ctx context.Context, p paging.Params) (paging.Result[Product], error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	// Delete removes the product and its image rows and returns the images
	// so their files can be removed from storage.
	Delete(ctx context.Context, id string) ([]Image, error)

	AddImage(ctx context.Context, productID, storageKey, url string) (Image, error)
	GetImage(ctx context.Context, productID, imageID string) (Image, error)
	DeleteImage(ctx context.Context, productID, imageID string) error

	Names(ctx context.Context, ids []string) (map[string]string, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p paging.Params) (paging.Result[Product], error) {
	base := r.db.WithContext(ctx).Model(&Product{})
	if p.Status != "" {
		base = base.Where("status = ?", p.Status)
	}
	if p.Q != "" {
		base = base.Where("(name LIKE ? OR slug LIKE ?)", p.Like(), p.Like())
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return paging.Result[Product]{}, err
	}

	var items []Product
	if err := base.
		Order("updated_at DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return paging.Result[Product]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&p, "id = ?", id).Error
	if dberr.IsNotFound(err) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	err := r.db.WithContext(ctx).Omit("Images").Create(p).Error
	if dberr.IsDuplicateKey(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *Repo) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"slug":        p.Slug,
			"description": p.Description,
			"status":      p.Status,
			"price_cents": p.PriceCents,
			"currency":    p.Currency,
			"stock":       p.Stock,
			"categories":  p.Categories,
			"tags":        p.Tags,
			"updated_at":  p.UpdatedAt,
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

func (r *Repo) Delete(ctx context.Context, id string) ([]Image, error) {
	var images []Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&images, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Image{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// AddImage appends the image after the current last position.
func (r *Repo) AddImage(ctx context.Context, productID, storageKey, url string) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		CreatedAt:  time.Now(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		var maxPos *int
		if err := tx.Model(&Image{}).
			Where("product_id = ?", productID).
			Select("MAX(position)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		if maxPos != nil {
			im.Position = *maxPos + 1
		}
		return tx.Create(&im).Error
	})
	if err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) GetImage(ctx context.Context, productID, imageID string) (Image, error) {
	var im Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND product_id = ?", imageID, productID).Error
	if dberr.IsNotFound(err) {
		return Image{}, ErrImageNotFound
	}
	return im, err
}

func (r *Repo) DeleteImage(ctx context.Context, productID, imageID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&Image{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *Repo) Names(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []Product
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p.Name
	}
	return out, nil
}
