package handlers

import (
	"DreyCare/services"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	service *services.PrescriptionService
}

func NewPrescriptionHandler(service *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{service: service}
}

// GetPrescriptions lists a visit's prescriptions in the order the doctor
// staged them, each with its drug resolved.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	prescriptions, err := h.service.ForVisit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, prescriptions)
}
