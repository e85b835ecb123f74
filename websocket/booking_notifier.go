package websocket

import (
	"log"
	"time"

	"decor-booking-server/database"
	"decor-booking-server/models"
)

// BookingNotifier pushes booking lifecycle events to connected clients.
type BookingNotifier struct {
	hub *Hub
}

// NewBookingNotifier creates a new booking notifier
func NewBookingNotifier(hub *Hub) *BookingNotifier {
	return &BookingNotifier{hub: hub}
}

// NotifyAssigned tells the assigned decorator (if connected) about the new
// task and refreshes admin dashboards.
func (bn *BookingNotifier) NotifyAssigned(booking models.Booking, decorator models.Decorator) {
	if bn.hub == nil {
		log.Printf("⚠️ WebSocket hub not available for assignment broadcast")
		return
	}

	message := &Message{
		Type:      "booking_assigned",
		BookingID: booking.ID,
		Data: map[string]interface{}{
			"booking_id":     booking.ID,
			"service_name":   booking.ServiceName,
			"category":       booking.ServiceCategory,
			"client_name":    booking.ClientName,
			"booking_date":   booking.BookingDate,
			"location":       booking.Location,
			"total_cost":     booking.TotalCost,
			"decorator_id":   decorator.ID,
			"decorator_name": decorator.Name,
			"status":         booking.Status,
		},
		Timestamp: time.Now(),
	}

	// The decorator signs in with the same email as their user row
	var user models.User
	if err := database.DB.Where("email = ?", decorator.Email).First(&user).Error; err == nil {
		bn.hub.SendToUser(user.ID, message)
	}
	bn.hub.SendToRole("admin", message)

	log.Printf("📡 Booking %d assignment broadcasted to decorator %d", booking.ID, decorator.ID)
}

// NotifyStatusChanged tells the booking's client about a progress update.
func (bn *BookingNotifier) NotifyStatusChanged(booking models.Booking) {
	if bn.hub == nil {
		return
	}

	message := &Message{
		Type:      "booking_status",
		BookingID: booking.ID,
		Data: map[string]interface{}{
			"booking_id":   booking.ID,
			"service_name": booking.ServiceName,
			"status":       booking.Status,
			"completed_at": booking.CompletedAt,
		},
		Timestamp: time.Now(),
	}

	var user models.User
	if err := database.DB.Where("email = ?", booking.ClientEmail).First(&user).Error; err == nil {
		bn.hub.SendToUser(user.ID, message)
	}
	bn.hub.SendToRole("admin", message)
}

// NotifyPaymentConfirmed tells admin dashboards a booking was paid.
func (bn *BookingNotifier) NotifyPaymentConfirmed(booking models.Booking, transaction models.Transaction) {
	if bn.hub == nil {
		return
	}

	message := &Message{
		Type:      "payment_confirmed",
		BookingID: booking.ID,
		Data: map[string]interface{}{
			"booking_id":     booking.ID,
			"transaction_id": transaction.TransactionID,
			"amount":         transaction.Amount,
			"client_email":   transaction.ClientEmail,
		},
		Timestamp: time.Now(),
	}

	bn.hub.SendToRole("admin", message)
}
