package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Banner is a promotional banner shown on the home screen
type Banner struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Link      string    `json:"link"`
	IsActive  bool      `json:"isActive" gorm:"default:true;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// CreateBannerRequest defines the request body for creating a banner
type CreateBannerRequest struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required,url"`
	Link     string `json:"link" validate:"omitempty,url"`
	IsActive *bool  `json:"isActive"`
}

// UpdateBannerRequest defines the request body for updating a banner
type UpdateBannerRequest struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Link     string `json:"link,omitempty" validate:"omitempty,url"`
	IsActive *bool  `json:"isActive,omitempty"`
}
