package repositories

import (
	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// PromotionFilter narrows the promotion listing
type PromotionFilter struct {
	Category string
	IsActive *bool
	Page     int
	Limit    int
}

// PromotionRepository defines the interface for promotion data operations
type PromotionRepository interface {
	CreatePromotion(promotion *models.Promotion) error
	GetPromotionByID(id string) (*models.Promotion, error)
	ListPromotions(filter PromotionFilter) ([]models.Promotion, int64, error)
	UpdatePromotion(promotion *models.Promotion) error
	DeletePromotion(id string) error
}

// PostgresPromotionRepository implements PromotionRepository for PostgreSQL
type PostgresPromotionRepository struct {
	db *gorm.DB
}

// NewPostgresPromotionRepository creates a new PostgresPromotionRepository
func NewPostgresPromotionRepository(db *gorm.DB) *PostgresPromotionRepository {
	return &PostgresPromotionRepository{db: db}
}

func (r *PostgresPromotionRepository) CreatePromotion(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

func (r *PostgresPromotionRepository) GetPromotionByID(id string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *PostgresPromotionRepository) ListPromotions(filter PromotionFilter) ([]models.Promotion, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	q := r.db.Model(&models.Promotion{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var promotions []models.Promotion
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&promotions).Error
	return promotions, total, err
}

func (r *PostgresPromotionRepository) UpdatePromotion(promotion *models.Promotion) error {
	return r.db.Save(promotion).Error
}

func (r *PostgresPromotionRepository) DeletePromotion(id string) error {
	return r.db.Delete(&models.Promotion{}, "id = ?", id).Error
}
