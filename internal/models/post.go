package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post types. MARKETPLACE and LOST_AND_FOUND posts require a title.
const (
	PostTypeConfession   = "CONFESSION"
	PostTypeMarketplace  = "MARKETPLACE"
	PostTypeLostAndFound = "LOST_AND_FOUND"
)

// ValidPostType reports whether t is one of the known post types
func ValidPostType(t string) bool {
	switch t {
	case PostTypeConfession, PostTypeMarketplace, PostTypeLostAndFound:
		return true
	}
	return false
}

// Post represents a campus feed post
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	AuthorID  string    `json:"authorId" gorm:"size:36;index"`
	Type      string    `json:"type" gorm:"size:20;index"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PostReaction is a like or dislike on a post, one row per (post, user)
type PostReaction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PostID    string    `json:"postId" gorm:"size:36;index"`
	UserID    string    `json:"userId" gorm:"size:36;index"`
	IsLike    bool      `json:"isLike"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *PostReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// CreatePostRequest defines the request body for creating a post
type CreatePostRequest struct {
	Type     string `json:"type" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating a post
type UpdatePostRequest struct {
	Content  string `json:"content,omitempty"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// ReactToPostRequest defines the request body for reacting to a post
type ReactToPostRequest struct {
	IsLike *bool `json:"isLike" validate:"required"`
}
