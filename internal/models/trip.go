package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trip statuses. A trip only moves ACTIVE->FULL or ACTIVE->CANCELLED.
const (
	TripStatusActive    = "ACTIVE"
	TripStatusFull      = "FULL"
	TripStatusCancelled = "CANCELLED"
)

// Trip request statuses. ACCEPTED and REJECTED are terminal.
const (
	TripRequestPending  = "PENDING"
	TripRequestAccepted = "ACCEPTED"
	TripRequestRejected = "REJECTED"
)

// Trip represents a ride offered by a driver
type Trip struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	DriverID       string    `json:"driverId" gorm:"size:36;index"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime" gorm:"index"`
	AvailableSeats int       `json:"availableSeats"`
	Price          *float64  `json:"price"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status" gorm:"size:20;default:'ACTIVE';index"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TripRequest is a passenger's request to occupy a seat on a trip
type TripRequest struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	TripID      string    `json:"tripId" gorm:"size:36;index"`
	PassengerID string    `json:"passengerId" gorm:"size:36;index"`
	Status      string    `json:"status" gorm:"size:20;default:'PENDING'"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *TripRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TripRating is a passenger's rating of the driver, one per (trip, rater)
type TripRating struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	TripID    string    `json:"tripId" gorm:"size:36;uniqueIndex:idx_trip_rater"`
	RaterID   string    `json:"raterId" gorm:"size:36;uniqueIndex:idx_trip_rater"`
	DriverID  string    `json:"driverId" gorm:"size:36;index"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *TripRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// CreateTripRequest defines the request body for creating a trip
type CreateTripRequest struct {
	Origin         string   `json:"origin" validate:"required"`
	Destination    string   `json:"destination" validate:"required"`
	DepartureTime  string   `json:"departureTime" validate:"required"` // RFC 3339
	AvailableSeats int      `json:"availableSeats" validate:"required,min=1"`
	Price          *float64 `json:"price" validate:"omitempty,min=0"`
	Notes          string   `json:"notes"`
}

// UpdateTripRequest defines the request body for updating a trip
type UpdateTripRequest struct {
	Origin         string   `json:"origin,omitempty"`
	Destination    string   `json:"destination,omitempty"`
	DepartureTime  string   `json:"departureTime,omitempty"`
	AvailableSeats *int     `json:"availableSeats,omitempty" validate:"omitempty,min=1"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	Notes          *string  `json:"notes,omitempty"`
}

// ConfirmPassengerRequest identifies the trip request being accepted
type ConfirmPassengerRequest struct {
	RequestID string `json:"requestId" validate:"required"`
}

// CreateRatingRequest defines the request body for rating a driver
type CreateRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
