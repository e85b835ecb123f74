package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
	"decor-booking-server/services"
)

// RegisterDecoratorRoutes registers decorator management routes. The group
// is mounted behind AuthMiddleware.
func RegisterDecoratorRoutes(router *gin.RouterGroup) {
	router.GET("", listDecorators)
	router.GET("/email/:email", getDecoratorByEmail)
	router.GET("/:id/earnings", getDecoratorEarnings)
	router.POST("", applyAsDecorator)
	router.PATCH("/:id", middleware.RequireRoles(models.RoleAdmin), updateDecorator)
	router.PATCH("/:id/task", middleware.RequireRoles(models.RoleAdmin), adjustDecoratorTasks)
	router.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), deleteDecorator)
}

// listDecorators returns decorator profiles filtered by status and location
func listDecorators(c *gin.Context) {
	query := database.DB.Model(&models.Decorator{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}

	var decorators []models.Decorator
	if err := query.Order("created_at DESC").Find(&decorators).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch decorators",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decorators,
		"count":   len(decorators),
	})
}

// getDecoratorByEmail returns one decorator profile. Used by the decorator
// dashboard to resolve its own profile after sign-in.
func getDecoratorByEmail(c *gin.Context) {
	email := c.Param("email")

	current, _ := middleware.CurrentUser(c)
	if current.Email != email && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only view your own decorator profile",
		})
		return
	}

	var decorator models.Decorator
	if err := database.DB.Where("email = ?", email).First(&decorator).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Decorator not found",
			"message": "No decorator exists with this email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decorator,
	})
}

// getDecoratorEarnings returns the decorator's completed bookings with the
// per-booking share and the running total.
func getDecoratorEarnings(c *gin.Context) {
	var decorator models.Decorator
	if err := database.DB.First(&decorator, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Decorator not found",
			"message": "No decorator exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if current.Email != decorator.Email && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only view your own earnings",
		})
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Where("assign_to = ? AND status = ?", decorator.ID, models.BookingStatusCompleted).
		Order("completed_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch completed bookings",
		})
		return
	}

	rows := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, gin.H{
			"bookingId":   b.ID,
			"serviceName": b.ServiceName,
			"clientName":  b.ClientName,
			"completedAt": b.CompletedAt,
			"totalCost":   b.TotalCost,
			"earning":     services.DecoratorEarning(b),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"data":          rows,
		"totalEarnings": services.TotalDecoratorEarnings(bookings),
		"shareRate":     services.DecoratorShareRate,
	})
}

// applyAsDecorator creates a pending decorator profile for the caller.
// Identity fields come from the user record; reapplying is rejected.
func applyAsDecorator(c *gin.Context) {
	var req models.DecoratorApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !req.Expertise.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid expertise",
			"message": "Unknown decoration category",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)

	// The email's unique index covers removed rows too, so the lookup must
	// include them: a removed profile gets restored, not re-inserted.
	var existing models.Decorator
	if err := database.DB.Unscoped().Where("email = ?", current.Email).First(&existing).Error; err == nil {
		if !existing.DeletedAt.Valid {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Already applied",
				"message": "A decorator profile already exists for this account",
			})
			return
		}

		existing.Name = current.Name
		existing.PhotoURL = current.PhotoURL
		existing.Reapply(req)
		if err := database.DB.Unscoped().Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Application failed",
				"message": "Failed to restore decorator profile",
			})
			return
		}

		log.Printf("✅ Decorator re-application: %s (%s)", existing.Email, existing.Expertise)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    existing,
		})
		return
	}

	decorator := models.Decorator{
		Name:       current.Name,
		Email:      current.Email,
		PhotoURL:   current.PhotoURL,
		Expertise:  req.Expertise,
		Location:   req.Location,
		Experience: req.Experience,
		Status:     models.DecoratorStatusPending,
	}

	if err := database.DB.Create(&decorator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Application failed",
			"message": "Failed to create decorator profile",
		})
		return
	}

	log.Printf("✅ Decorator application: %s (%s)", decorator.Email, decorator.Expertise)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    decorator,
	})
}

// updateDecorator accepts or adjusts a decorator profile (admin only).
// Acceptance also flips the owning user's role to decorator, in the same
// transaction as the profile update.
func updateDecorator(c *gin.Context) {
	var decorator models.Decorator
	if err := database.DB.First(&decorator, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Decorator not found",
			"message": "No decorator exists with this id",
		})
		return
	}

	var req models.DecoratorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Status != "" &&
		req.Status != models.DecoratorStatusPending &&
		req.Status != models.DecoratorStatusAccepted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status",
			"message": "Status must be pending or accepted",
		})
		return
	}

	promoted := req.Status == models.DecoratorStatusAccepted && !decorator.IsAccepted()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if promoted {
			// Acceptance starts the decorator with clean counters
			decorator.Accept()
		} else if req.Status != "" {
			decorator.Status = req.Status
		}
		if req.TaskPending != nil {
			decorator.TaskPending = *req.TaskPending
		}
		if req.TaskCompleted != nil {
			decorator.TaskCompleted = *req.TaskCompleted
		}
		if err := tx.Save(&decorator).Error; err != nil {
			return err
		}

		if promoted {
			if err := tx.Model(&models.User{}).
				Where("email = ?", decorator.Email).
				Update("role", models.RoleDecorator).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update decorator",
		})
		return
	}

	if promoted {
		log.Printf("✅ Decorator accepted: %s", decorator.Email)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decorator,
	})
}

// adjustDecoratorTasks nudges the pending-task counter (admin only). Used
// by back-office corrections, not the normal assignment flow.
func adjustDecoratorTasks(c *gin.Context) {
	var decorator models.Decorator
	if err := database.DB.First(&decorator, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Decorator not found",
			"message": "No decorator exists with this id",
		})
		return
	}

	var req models.DecoratorTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	decorator.TaskPending += req.IncPendingBy
	if decorator.TaskPending < 0 {
		decorator.TaskPending = 0
	}

	if err := database.DB.Save(&decorator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update task counter",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    decorator,
	})
}

// deleteDecorator soft deletes a decorator profile (admin only). Profiles
// with pending work stay until their queue drains.
func deleteDecorator(c *gin.Context) {
	var decorator models.Decorator
	if err := database.DB.First(&decorator, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Decorator not found",
			"message": "No decorator exists with this id",
		})
		return
	}

	if decorator.TaskPending > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Deletion rejected",
			"message": "Decorator still has pending bookings",
		})
		return
	}

	if err := database.DB.Delete(&decorator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deletion failed",
			"message": "Failed to delete decorator",
		})
		return
	}

	log.Printf("✅ Decorator deleted: %s", decorator.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decorator deleted successfully",
	})
}
