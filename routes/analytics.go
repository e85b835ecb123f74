package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decor-booking-server/database"
	"decor-booking-server/models"
	"decor-booking-server/services"
)

// RegisterAnalyticsRoutes registers the admin analytics routes. The group
// is mounted behind AuthMiddleware plus an admin role gate.
func RegisterAnalyticsRoutes(router *gin.RouterGroup) {
	router.GET("/summary", getAnalyticsSummary)
}

// getAnalyticsSummary returns the admin dashboard numbers: booking volume,
// completed revenue, decorator payouts and per-category demand.
func getAnalyticsSummary(c *gin.Context) {
	var bookings []models.Booking
	if err := database.DB.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch bookings",
		})
		return
	}

	demand := services.DemandByCategory(bookings)
	demandRows := make([]gin.H, 0, len(demand))
	for _, category := range models.GetServiceCategories() {
		if count, ok := demand[category]; ok {
			demandRows = append(demandRows, gin.H{
				"category": category,
				"count":    count,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalBookings":     len(bookings),
			"completedBookings": services.CompletedCount(bookings),
			"completedRevenue":  services.CompletedRevenue(bookings),
			"decoratorPayouts":  services.TotalDecoratorEarnings(bookings),
			"demandByCategory":  demandRows,
		},
	})
}
