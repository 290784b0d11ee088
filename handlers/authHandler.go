package handlers

import (
	"DreyCare/middlewares"
	"DreyCare/models"
	"DreyCare/services"
	"DreyCare/utils"
	"fmt"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// Register creates a staff account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.ValidateAndCreateUser(ctx, &user); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}

	c.Status(201)
}

// Login authenticates the user, flags them online, and returns tokens along
// with the user profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.AuthenticateUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate tokens: %v", err)})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(200, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// Logout flags the user offline and clears auth cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context()); err == nil {
		if err := h.UserService.SetOnline(c.Request.Context(), userID, false); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
	}
	utils.ClearAuthCookies(c)
	c.JSON(200, gin.H{"message": "Logged out"})
}

// RefreshToken mints a fresh access token from a valid one.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token := c.DefaultQuery("accessToken", "")
	if token == "" {
		c.JSON(400, gin.H{"error": "access token is required"})
		return
	}

	claims, err := utils.ValidateToken(token, models.AllRoles()...)
	if err != nil {
		c.JSON(401, gin.H{"error": "Invalid access token"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to generate access token: %v", err)})
		return
	}

	c.JSON(200, gin.H{"accessToken": accessToken})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}
	user, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}
	c.JSON(200, user)
}

// GetDoctors lists doctors for front-desk assignment; ?online=true narrows
// to doctors currently signed in.
func (h *AuthHandler) GetDoctors(c *gin.Context) {
	onlineOnly := c.Query("online") == "true"
	doctors, err := h.UserService.GetDoctors(c.Request.Context(), onlineOnly)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, doctors)
}

// GetAllStaff lists every staff account. Admin only.
func (h *AuthHandler) GetAllStaff(c *gin.Context) {
	users, err := h.UserService.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, users)
}

// SendResetCode emails a password reset code to a staff member.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil || user == nil {
		// Do not reveal whether the address is registered.
		c.JSON(200, gin.H{"message": "If the email is registered, a code has been sent"})
		return
	}

	code := utils.GenerateResetCode()
	if err := utils.SetResetCode(ctx, data.Email, code); err != nil {
		c.JSON(500, gin.H{"error": "Failed to store reset code"})
		return
	}
	if err := utils.SendResetCodeEmail(data.Email, code); err != nil {
		c.JSON(500, gin.H{"error": "Failed to send reset email"})
		return
	}

	c.JSON(200, gin.H{"message": "If the email is registered, a code has been sent"})
}

// ResetPassword validates a reset code and sets a new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		ResetCode   string `json:"reset_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	stored, err := utils.GetResetCode(ctx, data.Email)
	if err != nil || stored == nil || *stored != data.ResetCode {
		c.JSON(401, gin.H{"error": "Invalid reset code"})
		return
	}
	if len(data.NewPassword) < 8 {
		c.JSON(400, gin.H{"error": utils.ErrPasswordTooShort.Error()})
		return
	}

	user, err := h.UserService.GetUserByEmail(ctx, data.Email)
	if err != nil || user == nil {
		c.JSON(404, gin.H{"error": "User not found"})
		return
	}

	hashed, err := utils.HashPassword(data.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := h.UserService.UpdateUserPassword(ctx, user.ID, hashed); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := utils.DeleteResetCode(ctx, data.Email); err != nil {
		c.JSON(500, gin.H{"error": "Failed to clear reset code"})
		return
	}
	c.JSON(200, gin.H{"message": "Password updated"})
}
