package repositories

import (
	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// DiscoverFilter narrows the potential-connections listing
type DiscoverFilter struct {
	Interests []string // match any
	Faculty   string   // career contains, case-insensitive
	Search    string   // name contains, case-insensitive
	Limit     int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListUsers() ([]models.User, error)
	ListVisibleUsers() ([]models.User, error)
	// DiscoverUsers lists visible users the given user has not yet
	// interacted or connected with, applying the filter.
	DiscoverUsers(userID string, filter DiscoverFilter) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *PostgresUserRepository) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) ListVisibleUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_visible = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) DiscoverUsers(userID string, filter DiscoverFilter) ([]models.User, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	interacted := r.db.Model(&models.UserInteraction{}).
		Select("user2_id").Where("user1_id = ?", userID)
	interactedBy := r.db.Model(&models.UserInteraction{}).
		Select("user1_id").Where("user2_id = ?", userID)
	connected1 := r.db.Model(&models.Connection{}).
		Select("user2_id").Where("user1_id = ?", userID)
	connected2 := r.db.Model(&models.Connection{}).
		Select("user1_id").Where("user2_id = ?", userID)

	q := r.db.Model(&models.User{}).
		Where("id <> ?", userID).
		Where("is_visible = ?", true).
		Where("id NOT IN (?)", interacted).
		Where("id NOT IN (?)", interactedBy).
		Where("id NOT IN (?)", connected1).
		Where("id NOT IN (?)", connected2)

	if filter.Faculty != "" {
		q = q.Where("career ILIKE ?", "%"+filter.Faculty+"%")
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var users []models.User
	if err := q.Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	// Interests live in a JSON column, so the any-of filter is applied here
	// rather than in SQL.
	if len(filter.Interests) > 0 {
		wanted := make(map[string]bool, len(filter.Interests))
		for _, i := range filter.Interests {
			wanted[i] = true
		}
		filtered := users[:0]
		for _, u := range users {
			for _, i := range u.Interests {
				if wanted[i] {
					filtered = append(filtered, u)
					break
				}
			}
		}
		users = filtered
	}

	return users, nil
}
