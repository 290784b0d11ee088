package handlers

import (
	"DreyCare/middlewares"
	"DreyCare/models"
	"DreyCare/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}

	var message models.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	message.FromUserID = userID

	if err := h.service.Send(c.Request.Context(), &message); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, message)
}

// Inbox returns the caller's messages plus any addressed to their role.
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}
	role, _ := middlewares.ExtractUserRoleFromContext(c.Request.Context())

	messages, err := h.service.Inbox(c.Request.Context(), userID, role)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, messages)
}

// DepartmentBoard lists the messages addressed to a whole department.
func (h *MessageHandler) DepartmentBoard(c *gin.Context) {
	messages, err := h.service.DepartmentBoard(c.Request.Context(), c.Param("role"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, messages)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	message, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, message)
}
