package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
)

// RegisterTransactionRoutes registers payment history routes. The group is
// mounted behind AuthMiddleware.
func RegisterTransactionRoutes(router *gin.RouterGroup) {
	router.GET("", listTransactions)
}

// listTransactions returns the payment history for ?email=. Clients read
// their own history; admins may read anyone's or, with no filter, all.
func listTransactions(c *gin.Context) {
	email := c.Query("email")

	current, _ := middleware.CurrentUser(c)
	if !current.IsAdmin() {
		if email == "" {
			email = current.Email
		} else if email != current.Email {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "You may only view your own transactions",
			})
			return
		}
	}

	query := database.DB.Model(&models.Transaction{})
	if email != "" {
		query = query.Where("client_email = ?", email)
	}

	var transactions []models.Transaction
	if err := query.Order("paid_at DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch transactions",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
		"count":   len(transactions),
	})
}
