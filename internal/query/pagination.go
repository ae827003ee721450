package query

// Page size limits.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// PageRequest selects a 1-based page.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// PageMeta describes a page within a result set.
type PageMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Page is one page of items.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination PageMeta `json:"pagination"`
}

func paginate[T any](items []T, req PageRequest) Page[T] {
	req = req.normalize()
	total := len(items)
	totalPages := (total + req.PageSize - 1) / req.PageSize

	start := min((req.Page-1)*req.PageSize, total)
	end := min(start+req.PageSize, total)

	page := make([]T, end-start)
	copy(page, items[start:end])

	return Page[T]{
		Items: page,
		Pagination: PageMeta{
			Page:        req.Page,
			PageSize:    req.PageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasNext:     req.Page < totalPages,
			HasPrevious: req.Page > 1,
		},
	}
}
