package handler

import (
	"github.com/sangkips/counter-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/counter-billing/pkg/pagination"
)

// paginationFrom turns search query parameters into validated pagination params
func paginationFrom(req request.CatalogSearchRequest) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if req.Page > 0 {
		params.Page = req.Page
	}
	if req.PerPage > 0 {
		params.PerPage = req.PerPage
	}
	params.Validate()
	return params
}
