package handlers

import (
	"DreyCare/services"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondDomainError translates typed domain errors into HTTP responses.
// Routing refusals and stock refusals are client-resolvable conflicts; a
// PersistenceError means a store write failed partway and the message names
// the failed sub-operation so staff can reconcile manually.
func respondDomainError(c *gin.Context, err error) {
	var routingErr *services.RoutingError
	if errors.As(err, &routingErr) {
		switch routingErr.Code {
		case services.RoutingUnknownVisit:
			c.JSON(404, gin.H{"error": routingErr.Error()})
		default:
			c.JSON(409, gin.H{"error": routingErr.Error()})
		}
		return
	}

	var stockErr *services.StockError
	if errors.As(err, &stockErr) {
		switch stockErr.Kind {
		case services.StockUnknownDrug:
			c.JSON(404, gin.H{"error": stockErr.Error()})
		case services.StockInvalidQuantity:
			c.JSON(400, gin.H{"error": stockErr.Error()})
		default:
			c.JSON(409, gin.H{"error": stockErr.Error()})
		}
		return
	}

	var persistErr *services.PersistenceError
	if errors.As(err, &persistErr) {
		c.JSON(502, gin.H{"error": persistErr.Error(), "failed_operation": persistErr.Op})
		return
	}

	c.JSON(500, gin.H{"error": err.Error()})
}
