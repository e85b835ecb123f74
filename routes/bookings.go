package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"decor-booking-server/database"
	"decor-booking-server/middleware"
	"decor-booking-server/models"
	"decor-booking-server/websocket"
)

var (
	wsHub           *websocket.Hub
	bookingNotifier *websocket.BookingNotifier
)

// InitBookingNotifier wires the WebSocket hub into the route handlers
func InitBookingNotifier(hub *websocket.Hub) {
	wsHub = hub
	bookingNotifier = websocket.NewBookingNotifier(hub)
}

// RegisterBookingRoutes registers booking lifecycle routes. The group is
// mounted behind AuthMiddleware.
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.GET("", middleware.RequireRoles(models.RoleAdmin), listBookings)
	router.GET("/client/:email", getClientBookings)
	router.GET("/decorator/:decoratorId", getDecoratorBookings)
	router.POST("", createBooking)
	router.PATCH("/:id", editBooking)
	router.DELETE("/:id", cancelBooking)
	router.PATCH("/:id/assign", middleware.RequireRoles(models.RoleAdmin), assignBooking)
	router.PATCH("/:id/status", updateBookingStatus)
}

// listBookings returns the admin booking table, filtered by assignment and
// payment state, paginated and sorted by event date.
func listBookings(c *gin.Context) {
	query := database.DB.Model(&models.Booking{})

	if assigned := c.Query("assigned"); assigned != "" {
		query = query.Where("assigned = ?", assigned == "true")
	}
	if paid := c.Query("paid"); paid != "" {
		query = query.Where("paid = ?", paid == "true")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to count bookings",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	if c.DefaultQuery("sortDate", "desc") == "asc" {
		query = query.Order("booking_date ASC")
	} else {
		query = query.Order("booking_date DESC")
	}

	var bookings []models.Booking
	if err := query.
		Preload("Decorator").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       bookings,
		"totalCount": totalCount,
		"page":       page,
		"limit":      limit,
	})
}

// getClientBookings returns a client's bookings, newest first. Clients may
// only read their own; admins may read anyone's.
func getClientBookings(c *gin.Context) {
	email := c.Param("email")

	current, _ := middleware.CurrentUser(c)
	if current.Email != email && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only view your own bookings",
		})
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Where("client_email = ?", email).
		Preload("Decorator").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// getDecoratorBookings returns the bookings assigned to a decorator. The
// decorator may only read their own queue; admins may read anyone's.
func getDecoratorBookings(c *gin.Context) {
	decoratorID, err := strconv.Atoi(c.Param("decoratorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid decorator id",
			"message": "Decorator id must be numeric",
		})
		return
	}

	var decorator models.Decorator
	if err := database.DB.First(&decorator, decoratorID).Error; err != nil {
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
			"message": "You may only view your own assigned bookings",
		})
		return
	}

	var bookings []models.Booking
	if err := database.DB.
		Where("assign_to = ?", decorator.ID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to fetch bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// createBooking books a catalog service for the authenticated client. The
// price is always taken from the catalog, never from the payload.
func createBooking(c *gin.Context) {
	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking date",
			"message": "Booking date must be in yyyy-mm-dd format",
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)

	booking := models.Booking{
		ClientName:      current.Name,
		ClientEmail:     current.Email,
		ServiceID:       service.ID,
		ServiceName:     service.ServiceName,
		ServiceCategory: service.Category,
		ProviderEmail:   service.CreatedByEmail,
		Unit:            req.Unit,
		UnitCost:        service.Cost,
		BookingDate:     req.BookingDate,
		Location:        req.Location,
		Contact:         req.Contact,
		Status:          models.BookingStatusPending,
	}
	booking.RecomputeTotal()

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Creation failed",
			"message": "Failed to create booking",
		})
		return
	}

	log.Printf("✅ Booking created: %d (%s for %s)", booking.ID, booking.ServiceName, booking.ClientEmail)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    booking,
	})
}

// editBooking updates the client-editable fields of a booking and
// recomputes the total from the catalog's current unit price.
func editBooking(c *gin.Context) {
	var booking models.Booking
	if err := database.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if current.Email != booking.ClientEmail && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only edit your own bookings",
		})
		return
	}

	var req models.BookingEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking date",
			"message": "Booking date must be in yyyy-mm-dd format",
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, booking.ServiceID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Lookup failed",
			"message": "Failed to load the booked service",
		})
		return
	}

	if err := booking.ApplyEdit(req, service.Cost); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrBookingCompleted) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error":   "Edit rejected",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// cancelBooking deletes a booking that has not been assigned yet. Once a
// decorator is on it, cancellation goes through support instead.
func cancelBooking(c *gin.Context) {
	var booking models.Booking
	if err := database.DB.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with this id",
		})
		return
	}

	current, _ := middleware.CurrentUser(c)
	if current.Email != booking.ClientEmail && !current.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You may only cancel your own bookings",
		})
		return
	}

	if booking.Assigned {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cancellation rejected",
			"message": "An assigned booking cannot be cancelled",
		})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deletion failed",
			"message": "Failed to cancel booking",
		})
		return
	}

	log.Printf("✅ Booking cancelled: %d", booking.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
	})
}

// assignBooking binds a booking to an accepted decorator (admin only). The
// booking row and the decorator's pending counter move in one transaction.
func assignBooking(c *gin.Context) {
	var req models.BookingAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var booking models.Booking
	var decorator models.Decorator

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, c.Param("id")).Error; err != nil {
			return err
		}
		if err := tx.First(&decorator, req.AssignTo).Error; err != nil {
			return err
		}
		if err := booking.ApplyAssignment(&decorator); err != nil {
			return err
		}
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.Save(&decorator).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not found",
				"message": "Booking or decorator not found",
			})
		case errors.Is(err, models.ErrBookingAssigned),
			errors.Is(err, models.ErrBookingCompleted),
			errors.Is(err, models.ErrDecoratorNotActive):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Assignment rejected",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Assignment failed",
				"message": "Failed to assign booking",
			})
		}
		return
	}

	if bookingNotifier != nil {
		bookingNotifier.NotifyAssigned(booking, decorator)
	}

	log.Printf("✅ Booking %d assigned to decorator %d (%s)", booking.ID, decorator.ID, decorator.Name)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// updateBookingStatus advances a booking along its progress ladder. Only
// the assigned decorator (or an admin) may move it, and only forward.
// Completion settles the decorator's task counters in the same transaction.
func updateBookingStatus(c *gin.Context) {
	var req models.BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	current, _ := middleware.CurrentUser(c)

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, c.Param("id")).Error; err != nil {
			return err
		}
		if !booking.Assigned || booking.AssignTo == nil {
			return models.ErrBookingNotAssigned
		}

		var decorator models.Decorator
		if err := tx.First(&decorator, *booking.AssignTo).Error; err != nil {
			return err
		}
		if current.Email != decorator.Email && !current.IsAdmin() {
			return errForbidden
		}

		if err := booking.AdvanceTo(req.Status, &decorator, time.Now()); err != nil {
			return err
		}
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.Save(&decorator).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Booking not found",
				"message": "No booking exists with this id",
			})
		case errors.Is(err, errForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Only the assigned decorator may update this booking",
			})
		case errors.Is(err, models.ErrBookingCompleted),
			errors.Is(err, models.ErrBookingNotAssigned),
			errors.Is(err, models.ErrInvalidStatusChange):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Status change rejected",
				"message": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Update failed",
				"message": "Failed to update booking status",
			})
		}
		return
	}

	if bookingNotifier != nil {
		bookingNotifier.NotifyStatusChanged(booking)
	}

	log.Printf("✅ Booking %d moved to %s", booking.ID, booking.Status)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

var errForbidden = errors.New("forbidden")
