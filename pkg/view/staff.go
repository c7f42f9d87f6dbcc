package view

type StaffRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Active     bool   `json:"active"`
}

type StaffDetail struct {
	StaffRow
	Phone       string   `json:"phone,omitempty"`
	HireDate    string   `json:"hireDate,omitempty"`
	Salary      string   `json:"salary,omitempty"`
	Permissions []string `json:"permissions"`
}
