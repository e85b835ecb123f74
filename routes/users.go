package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
	"decor-booking-server/utils"
)

// UserSyncRequest upserts a user profile. Sign-ins from the web client
// post the profile here so the backend row tracks the latest name/photo.
type UserSyncRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL"`
}

// RoleUpdateRequest changes a user's role (admin only)
type RoleUpdateRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// RegisterUserRoutes registers user management routes
func RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/me", GetCurrentUser)
	router.GET("/:email", getUserByEmail)
	router.POST("", syncUser)
	router.PATCH("/role", middleware.RequireRoles(models.RoleAdmin), updateUserRole)
}

// getUserByEmail returns a user's profile. Users may read their own row;
// admins may read anyone's.
func getUserByEmail(c *gin.Context) {
	email := c.Param("email")

	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Not authenticated",
			"message": "Authentication required",
		})
		return
	}

	if current.Email != email && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only view your own profile",
		})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "No user exists with this email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// syncUser upserts the caller's profile row. Creating is idempotent: a
// repeat post updates name/photo and reports the existing role.
func syncUser(c *gin.Context) {
	var req UserSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	current, ok := middleware.CurrentUser(c)
	if !ok || current.Email != req.Email {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only sync your own profile",
		})
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		user.Name = req.Name
		if req.PhotoURL != "" {
			user.PhotoURL = req.PhotoURL
		}
		if err := database.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to update user profile",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    user,
		})
		return
	}
	if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Lookup failed",
			"message": "Failed to look up user",
		})
		return
	}

	user = models.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleClient,
		IsActive: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "User creation failed",
			"message": "Failed to create user profile",
		})
		return
	}

	log.Printf("✅ User profile created: %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// updateUserRole promotes or demotes a user (admin only)
func updateUserRole(c *gin.Context) {
	var req RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !models.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role",
			"message": "Role must be one of: client, decorator, admin",
		})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid email",
			"message": "Email address is not valid",
		})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "No user exists with this email",
		})
		return
	}

	user.Role = models.UserRole(req.Role)
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update user role",
		})
		return
	}

	log.Printf("✅ Role updated: %s is now %s", user.Email, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
