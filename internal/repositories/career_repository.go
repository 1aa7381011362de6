package repositories

import (
	"errors"

	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// CareerRepository defines the interface for career data operations
type CareerRepository interface {
	CreateCareer(career *models.Career) error
	GetCareerByID(id string) (*models.Career, error)
	GetCareerByCode(code string) (*models.Career, error)
	ListCareers() ([]models.Career, error)
	ListCareersByCampus(campus string) ([]models.Career, error)
	ListCareersByModality(modality string) ([]models.Career, error)
	UpdateCareer(career *models.Career) error
	DeleteCareer(id string) error
}

// PostgresCareerRepository implements CareerRepository for PostgreSQL
type PostgresCareerRepository struct {
	db *gorm.DB
}

// NewPostgresCareerRepository creates a new PostgresCareerRepository
func NewPostgresCareerRepository(db *gorm.DB) *PostgresCareerRepository {
	return &PostgresCareerRepository{db: db}
}

func (r *PostgresCareerRepository) CreateCareer(career *models.Career) error {
	return r.db.Create(career).Error
}

func (r *PostgresCareerRepository) GetCareerByID(id string) (*models.Career, error) {
	var career models.Career
	if err := r.db.First(&career, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &career, nil
}

func (r *PostgresCareerRepository) GetCareerByCode(code string) (*models.Career, error) {
	var career models.Career
	err := r.db.First(&career, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &career, nil
}

func (r *PostgresCareerRepository) ListCareers() ([]models.Career, error) {
	var careers []models.Career
	err := r.db.Order("name ASC").Find(&careers).Error
	return careers, err
}

func (r *PostgresCareerRepository) ListCareersByCampus(campus string) ([]models.Career, error) {
	var careers []models.Career
	err := r.db.Where("campus ILIKE ?", "%"+campus+"%").
		Order("name ASC").Find(&careers).Error
	return careers, err
}

func (r *PostgresCareerRepository) ListCareersByModality(modality string) ([]models.Career, error) {
	var careers []models.Career
	err := r.db.Where("modality ILIKE ?", "%"+modality+"%").
		Order("name ASC").Find(&careers).Error
	return careers, err
}

func (r *PostgresCareerRepository) UpdateCareer(career *models.Career) error {
	return r.db.Save(career).Error
}

func (r *PostgresCareerRepository) DeleteCareer(id string) error {
	return r.db.Delete(&models.Career{}, "id = ?", id).Error
}
