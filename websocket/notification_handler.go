package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"decor-booking-server/utils"
)

// NotificationHandler upgrades dashboard connections onto the hub.
type NotificationHandler struct {
	hub *Hub
}

// NewNotificationHandler creates a handler bound to the given hub
func NewNotificationHandler(hub *Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// HandleConnection authenticates the caller and joins them to the hub.
// Browsers cannot set headers on WebSocket upgrades, so the access token
// arrives as ?token= instead of an Authorization header.
func (h *NotificationHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Missing token",
			"message": "token query parameter is required",
		})
		return
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		log.Printf("❌ WebSocket auth failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "Token is invalid or expired",
		})
		return
	}

	ServeWebSocket(h.hub, c.Writer, c.Request, claims.UserID, claims.Role)
}
