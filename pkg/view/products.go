package view

type ProductRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
	Price  string `json:"price"`
	Stock  int    `json:"stock"`
}

type ProductImage struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type ProductDetail struct {
	ProductRow
	DescriptionHTML string         `json:"descriptionHtml"`
	Categories      []Named        `json:"categories"`
	Tags            []string       `json:"tags"`
	Images          []ProductImage `json:"images"`
	UpdatedAt       string         `json:"updatedAt"`
}
