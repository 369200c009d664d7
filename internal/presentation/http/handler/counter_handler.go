package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/counter-billing/internal/application/service"
	"github.com/sangkips/counter-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/counter-billing/internal/presentation/http/dto/response"
)

// CounterHandler handles the current bill
type CounterHandler struct {
	counter *service.CounterService
}

// NewCounterHandler creates a new counter handler
func NewCounterHandler(counter *service.CounterService) *CounterHandler {
	return &CounterHandler{counter: counter}
}

// GetCart returns the current bill
func (h *CounterHandler) GetCart(c *gin.Context) {
	response.OK(c, "Cart retrieved successfully", h.counter.View())
}

// AddLine adds a product to the current bill
func (h *CounterHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	added, err := h.counter.AddLine(req.Name, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added to bill", added)
}

// Clear empties the current bill
func (h *CounterHandler) Clear(c *gin.Context) {
	response.OK(c, "Bill cleared", h.counter.Clear())
}

// SetDiscount sets the flat discount on the current bill
func (h *CounterHandler) SetDiscount(c *gin.Context) {
	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	view, err := h.counter.SetDiscount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied", view)
}

// Preview returns the receipt for the current bill without printing it
func (h *CounterHandler) Preview(c *gin.Context) {
	preview, err := h.counter.Preview()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt preview generated", preview)
}

// Print sends the current bill to the printer
func (h *CounterHandler) Print(c *gin.Context) {
	result, err := h.counter.Print(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if !result.Printed {
		response.OK(c, "Receipt generated but printing failed", result)
		return
	}
	if result.Sale != nil {
		response.OK(c, "Receipt printed and sale completed", result)
		return
	}
	response.OK(c, "Receipt printed successfully", result)
}

// Finalize completes the current bill
func (h *CounterHandler) Finalize(c *gin.Context) {
	completed, err := h.counter.Finalize(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed", completed)
}
