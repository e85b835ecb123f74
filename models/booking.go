package models

import (
	"errors"
	"time"
)

// BookingStatus is one step of a booking's progress ladder. A freshly
// created booking sits outside the ladder as "pending" until an admin
// assigns a decorator.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAssigned  BookingStatus = "Assigned"
	BookingStatusPlanning  BookingStatus = "Planning"
	BookingStatusEquipping BookingStatus = "Equipping"
	BookingStatusOnWay     BookingStatus = "On Way"
	BookingStatusSettingUp BookingStatus = "Setting up"
	BookingStatusCompleted BookingStatus = "Completed"
)

// StatusSequence is the fixed, totally-ordered progress ladder for an
// assigned booking. Transitions may only move strictly forward through
// this list; skips are allowed, regressions are not.
var StatusSequence = []BookingStatus{
	BookingStatusAssigned,
	BookingStatusPlanning,
	BookingStatusEquipping,
	BookingStatusOnWay,
	BookingStatusSettingUp,
	BookingStatusCompleted,
}

var statusRank = func() map[BookingStatus]int {
	m := make(map[BookingStatus]int, len(StatusSequence))
	for i, s := range StatusSequence {
		m[s] = i
	}
	return m
}()

// SequenceIndex returns the status's position in the ladder, or -1 for
// pending/unknown values.
func (s BookingStatus) SequenceIndex() int {
	if i, ok := statusRank[s]; ok {
		return i
	}
	return -1
}

// IsTerminal reports whether the status freezes the booking.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted
}

// CanAdvanceTo reports whether next is a legal transition target from s.
// Both statuses must be on the ladder and next must sit strictly after s.
func (s BookingStatus) CanAdvanceTo(next BookingStatus) bool {
	cur, target := s.SequenceIndex(), next.SequenceIndex()
	if cur < 0 || target < 0 {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return target > cur
}

// RemainingStatuses returns the ladder suffix after s, the options a
// decorator may pick from. Empty for terminal or off-ladder statuses.
func (s BookingStatus) RemainingStatuses() []BookingStatus {
	i := s.SequenceIndex()
	if i < 0 || i == len(StatusSequence)-1 {
		return nil
	}
	out := make([]BookingStatus, len(StatusSequence)-i-1)
	copy(out, StatusSequence[i+1:])
	return out
}

var (
	ErrBookingCompleted    = errors.New("booking is already completed")
	ErrBookingAssigned     = errors.New("booking is already assigned")
	ErrBookingNotAssigned  = errors.New("booking has no assigned decorator")
	ErrDecoratorNotActive  = errors.New("decorator is not accepted")
	ErrInvalidStatusChange = errors.New("status may only move forward through the sequence")
	ErrInvalidUnit         = errors.New("unit must be greater than zero")
)

// Booking represents one client engagement of a catalog service.
type Booking struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ClientName      string          `json:"clientName" gorm:"size:255;not null"`
	ClientEmail     string          `json:"clientEmail" gorm:"size:255;not null;index"`
	ServiceID       uint            `json:"serviceId" gorm:"not null"`
	ServiceName     string          `json:"serviceName" gorm:"size:200;not null"`
	ServiceCategory ServiceCategory `json:"serviceCategory" gorm:"type:varchar(20);not null"`
	ProviderEmail   string          `json:"serviceProviderEmail" gorm:"size:255"`
	Unit            int             `json:"unit" gorm:"not null"`
	UnitCost        float64         `json:"unitCost" gorm:"type:decimal(10,2);not null"`
	TotalCost       float64         `json:"totalCost" gorm:"type:decimal(12,2);not null"`
	BookingDate     string          `json:"bookingDate" gorm:"type:varchar(10);not null"` // yyyy-mm-dd
	Location        string          `json:"location" gorm:"size:255;not null"`
	Contact         string          `json:"contact" gorm:"size:50"`
	Status          BookingStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Assigned        bool            `json:"assigned" gorm:"default:false;index"`
	AssignTo        *uint           `json:"assignTo"`
	Paid            bool            `json:"paid" gorm:"default:false;index"`
	CompletedAt     *time.Time      `json:"completedAt"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationships
	Service   Service    `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Decorator *Decorator `json:"decorator,omitempty" gorm:"foreignKey:AssignTo"`
}

func (Booking) TableName() string {
	return "bookings"
}

// RecomputeTotal derives totalCost from unit and the stored unit price.
// The stored total is never trusted from the client.
func (b *Booking) RecomputeTotal() {
	b.TotalCost = float64(b.Unit) * b.UnitCost
}

// CanAssign checks the assignment preconditions: the booking must still be
// unassigned and the decorator must have been accepted by an admin.
func (b *Booking) CanAssign(d *Decorator) error {
	if b.Status.IsTerminal() {
		return ErrBookingCompleted
	}
	if b.Assigned || b.AssignTo != nil {
		return ErrBookingAssigned
	}
	if d.Status != DecoratorStatusAccepted {
		return ErrDecoratorNotActive
	}
	return nil
}

// ApplyAssignment binds the booking to the decorator and moves it onto the
// first ladder step. The decorator's pending counter moves with it; the
// caller persists both rows in one transaction.
func (b *Booking) ApplyAssignment(d *Decorator) error {
	if err := b.CanAssign(d); err != nil {
		return err
	}
	b.Status = BookingStatusAssigned
	b.Assigned = true
	b.AssignTo = &d.ID
	d.TaskPending++
	return nil
}

// AdvanceTo moves the booking forward on the status ladder after
// re-validating the transition; callers must not trust the UI to have
// offered only legal targets. Reaching Completed stamps completedAt and
// settles the decorator's task counters.
func (b *Booking) AdvanceTo(next BookingStatus, d *Decorator, now time.Time) error {
	if b.Status.IsTerminal() {
		return ErrBookingCompleted
	}
	if !b.Assigned || b.AssignTo == nil {
		return ErrBookingNotAssigned
	}
	if !b.Status.CanAdvanceTo(next) {
		return ErrInvalidStatusChange
	}
	b.Status = next
	if next.IsTerminal() {
		b.CompletedAt = &now
		if d != nil {
			if d.TaskPending > 0 {
				d.TaskPending--
			}
			d.TaskCompleted++
		}
	}
	return nil
}

// ApplyEdit updates the client-editable fields and recomputes the total
// from the service's current unit price. Completed bookings are frozen.
func (b *Booking) ApplyEdit(edit BookingEditRequest, unitCost float64) error {
	if b.Status.IsTerminal() {
		return ErrBookingCompleted
	}
	if edit.Unit <= 0 {
		return ErrInvalidUnit
	}
	b.Contact = edit.Contact
	b.Location = edit.Location
	b.Unit = edit.Unit
	b.BookingDate = edit.BookingDate
	b.UnitCost = unitCost
	b.RecomputeTotal()
	return nil
}

// BookingCreateRequest is the payload for creating a booking. Identity and
// pricing fields come from the authenticated user and the catalog, not the
// client.
type BookingCreateRequest struct {
	ServiceID   uint   `json:"serviceId" binding:"required"`
	Unit        int    `json:"unit" binding:"required,gt=0"`
	BookingDate string `json:"bookingDate" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Contact     string `json:"contact" binding:"required"`
}

// BookingEditRequest covers the fields a client may change after creation.
type BookingEditRequest struct {
	Contact     string `json:"contact" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Unit        int    `json:"unit" binding:"required,gt=0"`
	BookingDate string `json:"bookingDate" binding:"required"`
}

// BookingAssignRequest is the admin payload binding a booking to a decorator.
type BookingAssignRequest struct {
	AssignTo uint `json:"assignTo" binding:"required"`
}

// BookingStatusRequest is the decorator payload advancing a booking.
type BookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
