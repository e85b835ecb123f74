package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient    UserRole = "client"
	RoleDecorator UserRole = "decorator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PhotoURL     string    `json:"photoURL" gorm:"size:500"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'client';check:role IN ('client','decorator','admin')"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relationships
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ClientEmail;references:Email"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleClient
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	return IsValidRole(string(u.Role))
}

// IsValidRole reports whether the string names a known role
func IsValidRole(role string) bool {
	switch UserRole(role) {
	case RoleClient, RoleDecorator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsDecorator checks if the user is a decorator
func (u *User) IsDecorator() bool {
	return u.Role == RoleDecorator
}

// IsClient checks if the user is a client
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
