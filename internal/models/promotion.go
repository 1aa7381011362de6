package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promotion categories
const (
	PromotionCategoryFood    = "FOOD"
	PromotionCategoryDrinks  = "DRINKS"
	PromotionCategoryEvents  = "EVENTS"
	PromotionCategoryParties = "PARTIES"
	PromotionCategoryOther   = "OTHER"
)

// ValidPromotionCategory reports whether c is a known promotion category
func ValidPromotionCategory(c string) bool {
	switch c {
	case PromotionCategoryFood, PromotionCategoryDrinks, PromotionCategoryEvents,
		PromotionCategoryParties, PromotionCategoryOther:
		return true
	}
	return false
}

// Promotion represents a local business promotion shown in the app
type Promotion struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category" gorm:"size:20;index"`
	Discount    *float64  `json:"discount"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	IsActive    bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// CreatePromotionRequest defines the request body for creating a promotion
type CreatePromotionRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
	Category    string   `json:"category" validate:"required"`
	Discount    *float64 `json:"discount" validate:"omitempty,min=0,max=100"`
	ValidUntil  string   `json:"validUntil" validate:"required"` // RFC 3339
	IsActive    *bool    `json:"isActive"`
}

// UpdatePromotionRequest defines the request body for updating a promotion
type UpdatePromotionRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Category    string   `json:"category,omitempty"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,min=0,max=100"`
	ValidUntil  string   `json:"validUntil,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}
