package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

func NewPaginatedResponse[T any](data []T, params PaginationParams, totalItems int64) PaginatedResponse[T] {
	params.Normalize()
	totalPages := int((totalItems + int64(params.PageSize) - 1) / int64(params.PageSize))
	if data == nil {
		data = []T{}
	}

	return PaginatedResponse[T]{
		Data:       data,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PaginationParams) Offset() int {
	p.Normalize()
	return (p.Page - 1) * p.PageSize
}

func (p PaginationParams) Limit() int {
	p.Normalize()
	return p.PageSize
}
