package handlers

import (
	"DreyCare/middlewares"
	"DreyCare/models"
	"DreyCare/services"

	"github.com/gin-gonic/gin"
)

type LabHandler struct {
	service *services.LabService
}

func NewLabHandler(service *services.LabService) *LabHandler {
	return &LabHandler{service: service}
}

// CreateLabResult appends a test outcome to a visit, stamped with the
// performing technician.
func (h *LabHandler) CreateLabResult(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}

	var result models.LabResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	result.VisitID = c.Param("id")
	result.PerformedBy = userID

	if err := h.service.Record(c.Request.Context(), &result); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(201, result)
}

func (h *LabHandler) GetLabResults(c *gin.Context) {
	results, err := h.service.ResultsForVisit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, results)
}
