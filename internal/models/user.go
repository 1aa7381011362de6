package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. DRIVER unlocks trip creation alongside STUDENT.
const (
	RoleStudent = "STUDENT"
	RoleDriver  = "DRIVER"
)

// User represents a registered student profile
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Name      string    `json:"name"`
	Career    string    `json:"career"`
	Gender    string    `json:"gender"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl"`
	Interests []string  `json:"interests" gorm:"serializer:json"`
	Role      string    `json:"role" gorm:"size:20;default:'STUDENT'"`
	IsVisible bool      `json:"isVisible" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// UserCompact is the trimmed user shape embedded in other responses
type UserCompact struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Career    string   `json:"career"`
	AvatarURL string   `json:"avatarUrl"`
	Interests []string `json:"interests,omitempty"`
}

// ToCompact converts a User to its embedded representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		Career:    u.Career,
		AvatarURL: u.AvatarURL,
		Interests: u.Interests,
	}
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Name      string   `json:"name" validate:"required,min=2,max=50"`
	Career    string   `json:"career" validate:"required"`
	Gender    string   `json:"gender" validate:"required"`
	Interests []string `json:"interests"`
}

// LoginRequest defines the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Name      string   `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Career    string   `json:"career,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	Interests []string `json:"interests,omitempty"`
}

// SetVisibilityRequest toggles whether the user appears in discovery
type SetVisibilityRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
