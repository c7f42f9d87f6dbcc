package view

type CategoryRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Parent    string `json:"parent,omitempty"`
	SortOrder int    `json:"sortOrder"`
	Active    bool   `json:"active"`
}

type CategoryDetail struct {
	CategoryRow
	DescriptionHTML string `json:"descriptionHtml"`
}
