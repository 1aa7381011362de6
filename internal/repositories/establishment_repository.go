package repositories

import (
	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// EstablishmentRepository defines the interface for establishment data operations
type EstablishmentRepository interface {
	CreateEstablishment(establishment *models.Establishment) error
	GetEstablishmentByID(id string) (*models.Establishment, error)
	ListEstablishments(category string) ([]models.Establishment, error)
	UpdateEstablishment(establishment *models.Establishment) error
	DeleteEstablishment(id string) error
}

// PostgresEstablishmentRepository implements EstablishmentRepository for PostgreSQL
type PostgresEstablishmentRepository struct {
	db *gorm.DB
}

// NewPostgresEstablishmentRepository creates a new PostgresEstablishmentRepository
func NewPostgresEstablishmentRepository(db *gorm.DB) *PostgresEstablishmentRepository {
	return &PostgresEstablishmentRepository{db: db}
}

func (r *PostgresEstablishmentRepository) CreateEstablishment(establishment *models.Establishment) error {
	return r.db.Create(establishment).Error
}

func (r *PostgresEstablishmentRepository) GetEstablishmentByID(id string) (*models.Establishment, error) {
	var establishment models.Establishment
	if err := r.db.First(&establishment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &establishment, nil
}

func (r *PostgresEstablishmentRepository) ListEstablishments(category string) ([]models.Establishment, error) {
	q := r.db.Order("name ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var establishments []models.Establishment
	err := q.Find(&establishments).Error
	return establishments, err
}

func (r *PostgresEstablishmentRepository) UpdateEstablishment(establishment *models.Establishment) error {
	return r.db.Save(establishment).Error
}

func (r *PostgresEstablishmentRepository) DeleteEstablishment(id string) error {
	return r.db.Delete(&models.Establishment{}, "id = ?", id).Error
}
