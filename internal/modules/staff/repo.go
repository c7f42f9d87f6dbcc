package staff

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pehlione.com/admin/internal/shared/dberr"
	"pehlione.com/admin/internal/shared/paging"
)

type Repository interface {
	List(ctx context.Context, p paging.Params) (paging.Result[Member], error)
	Get(ctx context.Context, id string) (Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// List filters by Status, which is either active/inactive or a role name.
func (r *Repo) List(ctx context.Context, p paging.Params) (paging.Result[Member], error) {
	base := r.db.WithContext(ctx).Model(&Member{})
	switch p.Status {
	case "":
	case "active":
		base = base.Where("is_active = ?", true)
	case "inactive":
		base = base.Where("is_active = ?", false)
	default:
		base = base.Where("role = ?", p.Status)
	}
	if p.Q != "" {
		like := p.Like()
		base = base.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)", like, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return paging.Result[Member]{}, err
	}

	var items []Member
	if err := base.
		Order("last_name ASC, first_name ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&items).Error; err != nil {
		return paging.Result[Member]{}, err
	}
	return paging.NewResult(items, total, p), nil
}

func (r *Repo) Get(ctx context.Context, id string) (Member, error) {
	var m Member
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if dberr.IsNotFound(err) {
		return Member{}, ErrNotFound
	}
	return m, err
}

func (r *Repo) Create(ctx context.Context, m *Member) error {
	now := time.Now()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt, m.UpdatedAt = now, now
	err := r.db.WithContext(ctx).Create(m).Error
	if dberr.IsDuplicateKey(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *Repo) Update(ctx context.Context, m *Member) error {
	m.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&Member{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"first_name":    m.FirstName,
			"last_name":     m.LastName,
			"email":         m.Email,
			"phone":         m.Phone,
			"role":          m.Role,
			"department":    m.Department,
			"hire_date":     m.HireDate,
			"salary":        m.Salary,
			"permissions":   m.Permissions,
			"password_hash": m.PasswordHash,
			"is_active":     m.IsActive,
			"updated_at":    m.UpdatedAt,
		})
	if dberr.IsDuplicateKey(res.Error) {
		return ErrDuplicateEmail
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
	res := r.db.WithContext(ctx).Delete(&Member{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
