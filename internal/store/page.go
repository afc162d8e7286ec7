package store

// Pagination carries the page request parameters for paginated queries.
// Pages are 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps nonsensical pagination values to usable defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// Offset returns the row offset for the page request.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPageMeta computes page metadata from the request and the total row count.
func NewPageMeta(p Pagination, totalItems int) PageMeta {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + p.Limit - 1) / p.Limit
	}
	return PageMeta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
