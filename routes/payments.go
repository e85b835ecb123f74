package routes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"decor-booking-server/config"
	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
)

// CheckoutRequest starts a payment session for a booking
type CheckoutRequest struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

// RegisterPaymentRoutes registers checkout and confirmation routes on the
// authenticated group. The confirmation path matches the web client's
// post-payment redirect target.
func RegisterPaymentRoutes(router *gin.RouterGroup) {
	router.POST("/payments/checkout", createCheckoutSession)
	router.PATCH("/payment-success", confirmPayment)
}

// createCheckoutSession opens a payment session for an unpaid booking and
// returns the redirect URLs the web client navigates with.
func createCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, req.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if current.Email != booking.ClientEmail {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only pay for your own bookings",
		})
		return
	}

	if booking.Paid {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already paid",
			"message": "This booking has already been paid",
		})
		return
	}

	sessionID, err := middleware.GenerateSecureToken(24)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Session creation failed",
			"message": "Failed to create payment session",
		})
		return
	}

	session := models.PaymentSession{
		SessionID:   "cs_" + sessionID,
		BookingID:   booking.ID,
		ClientEmail: booking.ClientEmail,
		Amount:      booking.TotalCost,
		Status:      models.SessionStatusCreated,
	}

	if err := database.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Session creation failed",
			"message": "Failed to create payment session",
		})
		return
	}

	log.Printf("✅ Payment session %s opened for booking %d (%.2f)", session.SessionID, booking.ID, session.Amount)
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"session_id":  session.SessionID,
		"amount":      session.Amount,
		"success_url": config.AppConfig.Payment.SuccessURL + "?session_id=" + session.SessionID,
		"cancel_url":  config.AppConfig.Payment.CancelURL,
	})
}

// confirmPayment settles the session named by ?session_id. Repeat calls
// with the same session are acknowledged without a second transaction.
func confirmPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing session id",
			"message": "session_id query parameter is required",
		})
		return
	}

	var session models.PaymentSession
	if err := database.DB.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Session not found",
			"message": "No payment session exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if current.Email != session.ClientEmail && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only confirm your own payments",
		})
		return
	}

	if session.Status == models.SessionStatusCompleted {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment already confirmed",
		})
		return
	}

	tokenPart, err := middleware.GenerateSecureToken(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Confirmation failed",
			"message": "Failed to confirm payment",
		})
		return
	}

	var booking models.Booking
	transaction := models.Transaction{
		TransactionID: "txn_" + tokenPart,
		BookingID:     session.BookingID,
		ClientEmail:   session.ClientEmail,
		Amount:        session.Amount,
		Status:        models.TransactionPaid,
		PaidAt:        time.Now(),
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Re-read under a row lock so concurrent confirms of the same
		// session serialize; only the first one records a transaction.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", sessionID).
			First(&session).Error; err != nil {
			return err
		}
		if err := session.Complete(); err != nil {
			return err
		}
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if err := tx.First(&booking, session.BookingID).Error; err != nil {
			return err
		}
		booking.Paid = true
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		transaction.ServiceName = booking.ServiceName
		return tx.Create(&transaction).Error
	})

	if errors.Is(err, models.ErrSessionCompleted) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment already confirmed",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Confirmation failed",
			"message": "Failed to confirm payment",
		})
		return
	}

	if bookingNotifier != nil {
		bookingNotifier.NotifyPaymentConfirmed(booking, transaction)
	}

	log.Printf("✅ Payment confirmed: booking %d, transaction %s", booking.ID, transaction.TransactionID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transaction,
	})
}
