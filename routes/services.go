package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
	"decor-booking-server/websocket"
)

// RegisterServiceRoutes registers the service catalog routes. Listing and
// detail are public; writes are admin only.
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", listServices)
	router.GET("/categories", getServiceCategories)
	router.GET("/:id", getService)

	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("", createService)
		admin.PATCH("/:id", updateService)
		admin.DELETE("/:id", deleteService)
	}
}

// listServices returns catalog entries filtered by the query parameters:
// search (name substring), category, min_cost/max_cost, and sort
// (latest | cost_low | cost_high | rating_high).
func listServices(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.ServiceCategory(category).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"message": "Unknown service category",
		})
		return
	}

	var minCost, maxCost float64
	var hasMin, hasMax bool
	if raw := c.Query("min_cost"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid cost filter",
				"message": "min_cost must be a number",
			})
			return
		}
		minCost, hasMin = v, true
	}
	if raw := c.Query("max_cost"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid cost filter",
				"message": "max_cost must be a number",
			})
			return
		}
		maxCost, hasMax = v, true
	}

	query := database.DB.Model(&models.Service{})

	if search := c.Query("search"); search != "" {
		query = query.Where("service_name ILIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if hasMin {
		query = query.Where("cost >= ?", minCost)
	}
	if hasMax {
		query = query.Where("cost <= ?", maxCost)
	}

	switch c.DefaultQuery("sort", "latest") {
	case "cost_low":
		query = query.Order("cost ASC")
	case "cost_high":
		query = query.Order("cost DESC")
	case "rating_high":
		query = query.Order("rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch services",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services,
		"count":   len(services),
	})
}

// broadcastCatalogChange pushes a catalog refresh hint to every connected
// dashboard so open service lists reload.
func broadcastCatalogChange(action string, service models.Service) {
	if wsHub == nil {
		return
	}
	wsHub.Broadcast <- &websocket.Message{
		Type: "catalog_updated",
		Data: map[string]interface{}{
			"action":      action,
			"service_id":  service.ID,
			"serviceName": service.ServiceName,
			"category":    service.Category,
		},
		Timestamp: time.Now(),
	}
}

// getServiceCategories returns the fixed category list
func getServiceCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.GetServiceCategories(),
	})
}

// getService returns one catalog entry
func getService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with this id",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// createService adds a catalog entry (admin only)
func createService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !req.Category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"message": "Unknown service category",
		})
		return
	}

	admin, _ := middleware.CurrentUser(c)

	service := models.Service{
		ServiceName:    req.ServiceName,
		Category:       req.Category,
		Cost:           req.Cost,
		Unit:           req.Unit,
		Description:    req.Description,
		Rating:         req.Rating,
		TotalReviews:   req.TotalReviews,
		CreatedByEmail: admin.Email,
		CreatedDate:    time.Now().Format("2006-01-02"),
	}

	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Creation failed",
			"message": "Failed to create service",
		})
		return
	}

	broadcastCatalogChange("created", service)

	log.Printf("✅ Service created: %s (%s)", service.ServiceName, service.Category)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// updateService edits a catalog entry (admin only). Existing bookings keep
// the unit price they were created with.
func updateService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with this id",
		})
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !req.Category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"message": "Unknown service category",
		})
		return
	}

	service.ServiceName = req.ServiceName
	service.Category = req.Category
	service.Cost = req.Cost
	service.Unit = req.Unit
	service.Description = req.Description
	service.Rating = req.Rating
	service.TotalReviews = req.TotalReviews

	if err := database.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update service",
		})
		return
	}

	broadcastCatalogChange("updated", service)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// deleteService soft deletes a catalog entry (admin only)
func deleteService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with this id",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deletion failed",
			"message": "Failed to delete service",
		})
		return
	}

	broadcastCatalogChange("deleted", service)

	log.Printf("✅ Service deleted: %s", service.ServiceName)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service deleted successfully",
	})
}
