package models

import (
	"time"

	"gorm.io/gorm"
)

// DecoratorStatus represents the approval state of a decorator request
type DecoratorStatus string

const (
	DecoratorStatusPending  DecoratorStatus = "pending"
	DecoratorStatusAccepted DecoratorStatus = "accepted"
)

// Decorator represents a vendor profile that can be assigned bookings.
// A client creates one (pending) by applying; an admin accepts it, which
// also flips the owning user's role to decorator.
type Decorator struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Email         string          `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PhotoURL      string          `json:"photoURL" gorm:"size:500"`
	Expertise     ServiceCategory `json:"decorationExpertise" gorm:"type:varchar(20);not null"`
	Location      string          `json:"location" gorm:"size:255;not null;index"`
	Experience    int             `json:"experience" gorm:"default:0"` // years
	Status        DecoratorStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	TaskPending   int             `json:"taskPending" gorm:"default:0"`
	TaskCompleted int             `json:"taskCompleted" gorm:"default:0"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `json:"deletedAt,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Decorator model
func (Decorator) TableName() string {
	return "decorators"
}

// IsAccepted reports whether the decorator may receive assignments
func (d *Decorator) IsAccepted() bool {
	return d.Status == DecoratorStatusAccepted
}

// Accept approves the profile and clears the task counters for a clean
// start.
func (d *Decorator) Accept() {
	d.Status = DecoratorStatusAccepted
	d.TaskPending = 0
	d.TaskCompleted = 0
}

// Reapply restores a removed profile for a fresh application. The unique
// email index spans removed rows too, so re-applying must reuse the row
// instead of inserting a duplicate.
func (d *Decorator) Reapply(req DecoratorApplyRequest) {
	d.DeletedAt = gorm.DeletedAt{}
	d.Expertise = req.Expertise
	d.Location = req.Location
	d.Experience = req.Experience
	d.Status = DecoratorStatusPending
	d.TaskPending = 0
	d.TaskCompleted = 0
}

// DecoratorApplyRequest is the payload for a client's decorator application.
// Name, email and photo come from the authenticated user record.
type DecoratorApplyRequest struct {
	Expertise  ServiceCategory `json:"decorationExpertise" binding:"required"`
	Location   string          `json:"location" binding:"required"`
	Experience int             `json:"experience" binding:"gte=0"`
}

// DecoratorUpdateRequest is the admin payload for accepting or adjusting a
// decorator profile.
type DecoratorUpdateRequest struct {
	Status        DecoratorStatus `json:"status"`
	TaskPending   *int            `json:"taskPending"`
	TaskCompleted *int            `json:"taskCompleted"`
}

// DecoratorTaskRequest adjusts the pending-task counter.
type DecoratorTaskRequest struct {
	IncPendingBy int `json:"incPendingBy" binding:"required"`
}
