package domain

type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"limit" query:"limit"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func DefaultPagination() PaginationParams {
	return PaginationParams{Page: 1, PageSize: 50}
}

func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func NewPagination(params PaginationParams, total int64) Pagination {
	pages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	return Pagination{
		Page:  params.Page,
		Limit: params.PageSize,
		Total: total,
		Pages: pages,
	}
}
