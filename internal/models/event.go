package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event categories
const (
	EventCategorySocial   = "SOCIAL"
	EventCategoryAcademic = "ACADEMIC"
	EventCategoryPrivate  = "PRIVATE"
	EventCategorySports   = "SPORTS"
	EventCategoryOther    = "OTHER"
)

// EventCategories lists the accepted categories, used in error messages
var EventCategories = []string{
	EventCategorySocial,
	EventCategoryAcademic,
	EventCategoryPrivate,
	EventCategorySports,
	EventCategoryOther,
}

// ValidEventCategory reports whether c is a known event category
func ValidEventCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Event represents a campus event
type Event struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	CreatorID   string     `json:"creatorId" gorm:"size:36;index"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category" gorm:"size:20;index"`
	StartDate   time.Time  `json:"startDate" gorm:"index"`
	EndDate     *time.Time `json:"endDate"`
	Location    string     `json:"location"`
	Price       *float64   `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// EventAttendance records that a user is attending an event
type EventAttendance struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	EventID   string    `json:"eventId" gorm:"size:36;index"`
	UserID    string    `json:"userId" gorm:"size:36;index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *EventAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// CreateEventRequest defines the request body for creating an event
type CreateEventRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	StartDate   string   `json:"startDate" validate:"required"` // RFC 3339
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location" validate:"required"`
	Price       *float64 `json:"price"`
}

// UpdateEventRequest defines the request body for updating an event
type UpdateEventRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Location    string   `json:"location,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}
