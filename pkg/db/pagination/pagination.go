package pagination

// Pagination carries page-based query parameters.
type Pagination struct {
	Page  int `form:"page,default=1" validate:"gte=1"`
	Limit int `form:"limit,default=10" validate:"gte=1,lte=100"`
}

// Meta describes the page window of a list response.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// BuildMeta computes page counts for a total row count.
func BuildMeta(p Pagination, totalItems int64) Meta {
	n := p.Normalize()
	totalPages := int(totalItems) / n.Limit
	if int(totalItems)%n.Limit != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return Meta{
		CurrentPage:  n.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: n.Limit,
	}
}
