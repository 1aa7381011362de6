package repositories

import (
	"errors"

	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// MatchRepository defines the interface for interaction and connection operations
type MatchRepository interface {
	CreateInteraction(interaction *models.UserInteraction) error
	// HasLike reports whether at least one LIKE from fromID to toID exists.
	HasLike(fromID, toID string) (bool, error)
	CreateConnection(connection *models.Connection) error
	// GetConnectionBetween checks both orderings, since user1/user2 is not canonical.
	GetConnectionBetween(userA, userB string) (*models.Connection, error)
	ListConnectionsByUser(userID string) ([]models.Connection, error)
}

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *gorm.DB
}

// NewPostgresMatchRepository creates a new PostgresMatchRepository
func NewPostgresMatchRepository(db *gorm.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) CreateInteraction(interaction *models.UserInteraction) error {
	return r.db.Create(interaction).Error
}

func (r *PostgresMatchRepository) HasLike(fromID, toID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserInteraction{}).
		Where("user1_id = ? AND user2_id = ? AND type = ?", fromID, toID, models.InteractionLike).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresMatchRepository) CreateConnection(connection *models.Connection) error {
	return r.db.Create(connection).Error
}

func (r *PostgresMatchRepository) GetConnectionBetween(userA, userB string) (*models.Connection, error) {
	var connection models.Connection
	err := r.db.Where(
		"(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
		userA, userB, userB, userA,
	).First(&connection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

func (r *PostgresMatchRepository) ListConnectionsByUser(userID string) ([]models.Connection, error) {
	var connections []models.Connection
	err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").Find(&connections).Error
	return connections, err
}
