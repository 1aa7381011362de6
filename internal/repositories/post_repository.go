package repositories

import (
	"errors"

	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post and reaction operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	ListPosts(postType string, page, limit int) ([]models.Post, int64, error)
	UpdatePost(post *models.Post) error
	GetReaction(postID, userID string) (*models.PostReaction, error)
	CreateReaction(reaction *models.PostReaction) error
	UpdateReaction(reaction *models.PostReaction) error
	ListReactions(postID string) ([]models.PostReaction, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPosts(postType string, page, limit int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := r.db.Model(&models.Post{})
	if postType != "" {
		q = q.Where("type = ?", postType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostgresPostRepository) GetReaction(postID, userID string) (*models.PostReaction, error) {
	var reaction models.PostReaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *PostgresPostRepository) CreateReaction(reaction *models.PostReaction) error {
	return r.db.Create(reaction).Error
}

func (r *PostgresPostRepository) UpdateReaction(reaction *models.PostReaction) error {
	return r.db.Save(reaction).Error
}

func (r *PostgresPostRepository) ListReactions(postID string) ([]models.PostReaction, error) {
	var reactions []models.PostReaction
	err := r.db.Where("post_id = ?", postID).Find(&reactions).Error
	return reactions, err
}
