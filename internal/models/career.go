package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Career represents a degree program offered on a campus
type Career struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	Name              string    `json:"name"`
	Code              string    `json:"code" gorm:"uniqueIndex"`
	Campus            string    `json:"campus" gorm:"index"`
	Modality          string    `json:"modality" gorm:"index"`
	DurationSemesters int       `json:"durationSemesters"`
	DirectorName      string    `json:"directorName"`
	DirectorEmail     string    `json:"directorEmail"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (c *Career) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CreateCareerRequest defines the request body for creating a career
type CreateCareerRequest struct {
	Name              string `json:"name" validate:"required"`
	Code              string `json:"code" validate:"required"`
	Campus            string `json:"campus" validate:"required"`
	Modality          string `json:"modality" validate:"required"`
	DurationSemesters int    `json:"durationSemesters" validate:"required,min=1,max=20"`
	DirectorName      string `json:"directorName"`
	DirectorEmail     string `json:"directorEmail" validate:"omitempty,email"`
	Description       string `json:"description"`
}

// UpdateCareerRequest defines the request body for updating a career
type UpdateCareerRequest struct {
	Name              string `json:"name,omitempty"`
	Code              string `json:"code,omitempty"`
	Campus            string `json:"campus,omitempty"`
	Modality          string `json:"modality,omitempty"`
	DurationSemesters *int   `json:"durationSemesters,omitempty" validate:"omitempty,min=1,max=20"`
	DirectorName      string `json:"directorName,omitempty"`
	DirectorEmail     string `json:"directorEmail,omitempty" validate:"omitempty,email"`
	Description       string `json:"description,omitempty"`
}
