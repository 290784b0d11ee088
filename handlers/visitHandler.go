package handlers

import (
	"DreyCare/middlewares"
	"DreyCare/models"
	"DreyCare/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	visits *services.VisitService
	router *services.RouterService
}

func NewVisitHandler(visits *services.VisitService, router *services.RouterService) *VisitHandler {
	return &VisitHandler{visits: visits, router: router}
}

// Queue lists the non-completed visits waiting at a department, oldest first.
func (h *VisitHandler) Queue(c *gin.Context) {
	location := models.Location(c.Param("location"))
	if !models.ValidLocation(location) {
		c.JSON(400, gin.H{"error": "unknown location"})
		return
	}
	visits, err := h.visits.Queue(c.Request.Context(), location)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, visits)
}

func (h *VisitHandler) GetVisit(c *gin.Context) {
	visit, err := h.visits.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if visit == nil {
		c.JSON(404, gin.H{"error": "Visit not found"})
		return
	}
	c.JSON(200, visit)
}

func (h *VisitHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	visits, err := h.visits.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, visits)
}

func (h *VisitHandler) PatientHistory(c *gin.Context) {
	visits, err := h.visits.History(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, visits)
}

// Intake registers a new visit at the front desk.
func (h *VisitHandler) Intake(c *gin.Context) {
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user role not found"})
		return
	}
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}

	var params services.IntakeParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	params.CreatedBy = userID

	visit, err := h.router.Intake(c.Request.Context(), role, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(201, visit)
}

// Route moves a visit to another department on behalf of the authenticated
// actor. The actor's role must match the visit's current location.
func (h *VisitHandler) Route(c *gin.Context) {
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user role not found"})
		return
	}

	var body struct {
		Target models.Location `json:"target"`
		services.RoutePayload
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidLocation(body.Target) {
		c.JSON(400, gin.H{"error": "unknown target location"})
		return
	}

	visit, err := h.router.Route(c.Request.Context(), c.Param("id"), role, body.Target, body.RoutePayload)
	if err != nil {
		// A partial failure still moved the visit; report both.
		if visit != nil {
			c.JSON(502, gin.H{"error": err.Error(), "visit": visit})
			return
		}
		respondDomainError(c, err)
		return
	}
	c.JSON(200, visit)
}

// CompletePayment is the accounts terminal transition.
func (h *VisitHandler) CompletePayment(c *gin.Context) {
	role, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user role not found"})
		return
	}

	visit, err := h.router.CompletePayment(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(200, visit)
}
