package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceCategory represents the kind of decoration a service covers
type ServiceCategory string

const (
	CategoryHome    ServiceCategory = "home"
	CategoryWedding ServiceCategory = "wedding"
	CategoryOffice  ServiceCategory = "office"
	CategorySeminar ServiceCategory = "seminar"
	CategoryMeeting ServiceCategory = "meeting"
)

// GetServiceCategories returns all available service categories
func GetServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		CategoryHome,
		CategoryWedding,
		CategoryOffice,
		CategorySeminar,
		CategoryMeeting,
	}
}

// IsValid checks if the category is one of the known values
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryHome, CategoryWedding, CategoryOffice, CategorySeminar, CategoryMeeting:
		return true
	default:
		return false
	}
}

// Service represents a catalog entry clients can book
type Service struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	ServiceName    string          `json:"serviceName" gorm:"size:200;not null"`
	Category       ServiceCategory `json:"serviceCategory" gorm:"type:varchar(20);not null;index"`
	Cost           float64         `json:"cost" gorm:"type:decimal(10,2);not null"` // price per unit
	Unit           string          `json:"unit" gorm:"size:50;not null"`            // e.g. "per stage", "per room"
	Description    string          `json:"description" gorm:"type:text"`
	Rating         float64         `json:"rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews   int             `json:"totalReviews" gorm:"default:0"`
	CreatedByEmail string          `json:"createdByEmail" gorm:"size:255"`
	CreatedDate    string          `json:"createdDate" gorm:"type:varchar(10)"` // yyyy-mm-dd
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt  `json:"deletedAt,omitempty" gorm:"index"`
}

// ServiceRequest represents the request structure for creating/updating services
type ServiceRequest struct {
	ServiceName  string          `json:"serviceName" binding:"required"`
	Category     ServiceCategory `json:"serviceCategory" binding:"required"`
	Cost         float64         `json:"cost" binding:"required,gt=0"`
	Unit         string          `json:"unit" binding:"required"`
	Description  string          `json:"description"`
	Rating       float64         `json:"rating"`
	TotalReviews int             `json:"totalReviews"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
