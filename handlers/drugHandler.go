package handlers

import (
	"DreyCare/models"
	"DreyCare/services"

	"github.com/gin-gonic/gin"
)

type DrugHandler struct {
	drugs *services.DrugService
	stock *services.StockService
}

func NewDrugHandler(drugs *services.DrugService, stock *services.StockService) *DrugHandler {
	return &DrugHandler{drugs: drugs, stock: stock}
}

func (h *DrugHandler) CreateDrug(c *gin.Context) {
	var drug models.Drug
	if err := c.ShouldBindJSON(&drug); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.drugs.Create(c.Request.Context(), &drug); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, drug)
}

func (h *DrugHandler) GetDrugByID(c *gin.Context) {
	drug, err := h.drugs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if drug == nil {
		c.JSON(404, gin.H{"error": "Drug not found"})
		return
	}
	c.JSON(200, gin.H{"drug": drug, "stock_status": drug.StockStatus()})
}

func (h *DrugHandler) GetAllDrugs(c *gin.Context) {
	drugs, err := h.drugs.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, drugs)
}

// GetInventory lists the catalog emptiest shelves first, with the read-time
// stock classification attached.
func (h *DrugHandler) GetInventory(c *gin.Context) {
	drugs, err := h.drugs.GetInventory(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	type inventoryRow struct {
		models.Drug
		StockStatus string `json:"stock_status"`
	}
	rows := make([]inventoryRow, 0, len(drugs))
	for _, d := range drugs {
		rows = append(rows, inventoryRow{Drug: d, StockStatus: d.StockStatus()})
	}
	c.JSON(200, rows)
}

func (h *DrugHandler) UpdateDrug(c *gin.Context) {
	var drug models.Drug
	if err := c.ShouldBindJSON(&drug); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	drug.ID = c.Param("id")
	if err := h.drugs.Update(c.Request.Context(), &drug); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, drug)
}

func (h *DrugHandler) DeleteDrug(c *gin.Context) {
	if err := h.drugs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Drug deleted"})
}

// Dispense atomically decrements stock for a dispensed unit.
func (h *DrugHandler) Dispense(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	drug, err := h.stock.Dispense(c.Request.Context(), c.Param("id"), body.Quantity)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(200, gin.H{"drug": drug, "stock_status": drug.StockStatus()})
}
