package repositories

import (
	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// BannerRepository defines the interface for banner data operations
type BannerRepository interface {
	CreateBanner(banner *models.Banner) error
	GetBannerByID(id string) (*models.Banner, error)
	ListBanners(activeOnly bool) ([]models.Banner, error)
	UpdateBanner(banner *models.Banner) error
	DeleteBanner(id string) error
}

// PostgresBannerRepository implements BannerRepository for PostgreSQL
type PostgresBannerRepository struct {
	db *gorm.DB
}

// NewPostgresBannerRepository creates a new PostgresBannerRepository
func NewPostgresBannerRepository(db *gorm.DB) *PostgresBannerRepository {
	return &PostgresBannerRepository{db: db}
}

func (r *PostgresBannerRepository) CreateBanner(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

func (r *PostgresBannerRepository) GetBannerByID(id string) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *PostgresBannerRepository) ListBanners(activeOnly bool) ([]models.Banner, error) {
	q := r.db.Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var banners []models.Banner
	err := q.Find(&banners).Error
	return banners, err
}

func (r *PostgresBannerRepository) UpdateBanner(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

func (r *PostgresBannerRepository) DeleteBanner(id string) error {
	return r.db.Delete(&models.Banner{}, "id = ?", id).Error
}
