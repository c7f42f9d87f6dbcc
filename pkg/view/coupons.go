package view

type CouponRow struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Discount string `json:"discount"`
	Validity string `json:"validity"`
	Usage    string `json:"usage"`
	Status   string `json:"status"`
}

type CouponDetail struct {
	CouponRow
	Description       string  `json:"description"`
	MinOrderAmount    string  `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount string  `json:"maxDiscountAmount,omitempty"`
	PerUserLimit      string  `json:"perUserLimit,omitempty"`
	Categories        []Named `json:"categories"`
	Products          []Named `json:"products"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}
