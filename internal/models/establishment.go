package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Establishment represents a business or venue near campus
type Establishment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Category  string    `json:"category" gorm:"index"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Establishment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// CreateEstablishmentRequest defines the request body for creating an establishment
type CreateEstablishmentRequest struct {
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateEstablishmentRequest defines the request body for updating an establishment
type UpdateEstablishmentRequest struct {
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}
