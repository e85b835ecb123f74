package jobs

import (
	"log"
	"time"

	"decor-booking-server/database"
	"decor-booking-server/models"
	"decor-booking-server/services"
)

// Sessions older than this without confirmation are considered abandoned.
const sessionTTL = 24 * time.Hour

// CleanupJob prunes expired refresh tokens and abandoned payment sessions
type CleanupJob struct {
	jwtService *services.JWTService
	stopChan   chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		jwtService: services.NewJWTService(),
		stopChan:   make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Cleanup job stopped")
}

// run executes the cleanup job
func (j *CleanupJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanupTokens()
			j.cleanupSessions()
		case <-j.stopChan:
			return
		}
	}
}

// cleanupTokens removes expired refresh tokens
func (j *CleanupJob) cleanupTokens() {
	if err := j.jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
	}
}

// cleanupSessions deletes payment sessions that were opened but never
// confirmed. Completed sessions stay; the transaction table is the record.
func (j *CleanupJob) cleanupSessions() {
	cutoff := time.Now().Add(-sessionTTL)

	result := database.DB.
		Where("status = ? AND created_at < ?", models.SessionStatusCreated, cutoff).
		Delete(&models.PaymentSession{})

	if result.Error != nil {
		log.Printf("❌ Error cleaning payment sessions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Removed %d abandoned payment sessions", result.RowsAffected)
	}
}
