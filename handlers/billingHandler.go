package handlers

import (
	"DreyCare/services"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// GetInvoice derives the itemized bill for a visit. Recomputed per request,
// never stored.
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.InvoiceForVisit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(200, invoice)
}
