package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/counter-billing/internal/application/service"
	"github.com/sangkips/counter-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/counter-billing/internal/presentation/http/dto/response"
	"github.com/sangkips/counter-billing/pkg/pagination"
)

// CatalogHandler handles catalog browsing
type CatalogHandler struct {
	counter *service.CounterService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(counter *service.CounterService) *CatalogHandler {
	return &CatalogHandler{counter: counter}
}

// Search lists products whose name contains q, a page at a time.
func (h *CatalogHandler) Search(c *gin.Context) {
	var req request.CatalogSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products := h.counter.Search(req.Query)
	result := pagination.Paginate(products, paginationFrom(req))

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}
