package controllers

import (
	"DreyCare/handlers"
	"DreyCare/middlewares"
	"DreyCare/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/reset-password", ac.Handler.ResetPassword)
	router.POST("/auth/refresh-token", ac.Handler.RefreshToken)

	// Protected routes: Requires a valid token
	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.POST("/logout", ac.Handler.Logout)
		authGroup.GET("/profile", ac.Handler.GetProfile)
		authGroup.GET("/doctors", ac.Handler.GetDoctors)
	}

	// Admin routes: Requires a valid token and "admin" role
	adminGroup := router.Group("/auth/admin").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware(models.RoleAdmin),
	)
	{
		adminGroup.POST("/register", ac.Handler.Register)
		adminGroup.GET("/staff", ac.Handler.GetAllStaff)
	}
}
