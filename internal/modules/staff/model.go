package staff

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"pehlione.com/admin/internal/wizard"
)

const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleSupport   = "support"
	RoleWarehouse = "warehouse"
)

var Roles = []string{RoleAdmin, RoleManager, RoleSupport, RoleWarehouse}

// Permissions a staff member can be granted.
var Permissions = []string{
	"categories.read", "categories.write",
	"coupons.read", "coupons.write",
	"products.read", "products.write",
	"staff.read", "staff.write",
	"orders.read", "orders.write",
}

type Member struct {
	ID           string                      `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName    string                      `gorm:"type:varchar(80);not null" json:"firstName"`
	LastName     string                      `gorm:"type:varchar(80);not null" json:"lastName"`
	Email        string                      `gorm:"type:varchar(255);not null;uniqueIndex:ux_staff_email" json:"email"`
	Phone        string                      `gorm:"type:varchar(32)" json:"phone"`
	Role         string                      `gorm:"type:varchar(16);not null;index:ix_staff_role" json:"role"`
	Department   string                      `gorm:"type:varchar(80)" json:"department"`
	HireDate     *time.Time                  `gorm:"type:date" json:"hireDate,omitempty"`
	Salary       *float64                    `gorm:"type:decimal(12,2)" json:"salary,omitempty"`
	Permissions  datatypes.JSONSlice[string] `gorm:"type:json" json:"permissions"`
	PasswordHash string                      `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool                        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time                   `gorm:"type:datetime(3);not null" json:"createdAt"`
	UpdatedAt    time.Time                   `gorm:"type:datetime(3);not null" json:"updatedAt"`
}

func (Member) TableName() string { return "staff_members" }

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Input is the create/update payload. Password is only required on create;
// a blank password on update keeps the current one.
type Input struct {
	FirstName   string     `json:"firstName" yaml:"firstName" binding:"required"`
	LastName    string     `json:"lastName" yaml:"lastName" binding:"required"`
	Email       string     `json:"email" yaml:"email" binding:"required,email"`
	Phone       string     `json:"phone" yaml:"phone"`
	Role        string     `json:"role" yaml:"role" binding:"required"`
	Department  string     `json:"department" yaml:"department"`
	HireDate    *time.Time `json:"hireDate,omitempty" yaml:"hireDate,omitempty"`
	Salary      *float64   `json:"salary,omitempty" yaml:"salary,omitempty"`
	Permissions []string   `json:"permissions" yaml:"permissions"`
	Password    string     `json:"password,omitempty" yaml:"password,omitempty"`
	IsActive    bool       `json:"isActive" yaml:"isActive"`
}

func (m Member) Input() Input {
	return Input{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Role:        m.Role,
		Department:  m.Department,
		HireDate:    m.HireDate,
		Salary:      m.Salary,
		Permissions: []string(m.Permissions),
		IsActive:    m.IsActive,
	}
}

// FormData renders the payload the way the wizard holds it.
func (in Input) FormData() wizard.FormData {
	salary := any("")
	if in.Salary != nil {
		salary = *in.Salary
	}
	return wizard.FormData{
		"firstName":   in.FirstName,
		"lastName":    in.LastName,
		"email":       in.Email,
		"phone":       in.Phone,
		"role":        in.Role,
		"department":  in.Department,
		"hireDate":    wizard.FormatDate(in.HireDate),
		"salary":      salary,
		"permissions": wizard.JoinList(in.Permissions),
		"password":    in.Password,
		"isActive":    in.IsActive,
	}
}

// Seed is the edit-wizard seed. The password is never seeded.
func Seed(m Member) wizard.FormData { return m.Input().FormData() }
