package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionLike is the only interaction type currently recorded.
const InteractionLike = "LIKE"

// UserInteraction records a directed like from one user to another.
// Append-only: repeated likes create repeated rows, only the existence
// of at least one reciprocal row matters for match detection.
type UserInteraction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	User1ID   string    `json:"user1Id" gorm:"size:36;index"` // who liked
	User2ID   string    `json:"user2Id" gorm:"size:36;index"` // who was liked
	Type      string    `json:"type" gorm:"size:20"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *UserInteraction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Connection is a confirmed mutual match between two users.
// user1/user2 ordering is not canonical; lookups check both directions.
type Connection struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	User1ID   string    `json:"user1Id" gorm:"size:36;index"`
	User2ID   string    `json:"user2Id" gorm:"size:36;index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// MatchSummary normalizes a connection to always show the other user
type MatchSummary struct {
	MatchID   string      `json:"matchId"`
	MatchedAt time.Time   `json:"matchedAt"`
	User      UserCompact `json:"user"`
}
