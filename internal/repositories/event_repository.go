package repositories

import (
	"errors"
	"time"

	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// EventFilter narrows the event listing
type EventFilter struct {
	Category  string
	StartFrom *time.Time
	EndUntil  *time.Time
	Location  string
	Page      int
	Limit     int
}

// EventRepository defines the interface for event and attendance operations
type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetEventByID(id string) (*models.Event, error)
	ListEvents(filter EventFilter) ([]models.Event, int64, error)
	UpdateEvent(event *models.Event) error
	DeleteEvent(id string) error
	GetAttendance(eventID, userID string) (*models.EventAttendance, error)
	CreateAttendance(attendance *models.EventAttendance) error
	DeleteAttendance(eventID, userID string) error
	ListAttendances(eventID string) ([]models.EventAttendance, error)
	CountAttendances(eventID string) (int64, error)
}

// PostgresEventRepository implements EventRepository for PostgreSQL
type PostgresEventRepository struct {
	db *gorm.DB
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) CreateEvent(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *PostgresEventRepository) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *PostgresEventRepository) ListEvents(filter EventFilter) ([]models.Event, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	q := r.db.Model(&models.Event{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.StartFrom != nil {
		q = q.Where("start_date >= ?", *filter.StartFrom)
	}
	if filter.EndUntil != nil {
		q = q.Where("end_date <= ?", *filter.EndUntil)
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := q.Order("start_date ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&events).Error
	return events, total, err
}

func (r *PostgresEventRepository) UpdateEvent(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *PostgresEventRepository) DeleteEvent(id string) error {
	return r.db.Delete(&models.Event{}, "id = ?", id).Error
}

func (r *PostgresEventRepository) GetAttendance(eventID, userID string) (*models.EventAttendance, error) {
	var attendance models.EventAttendance
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *PostgresEventRepository) CreateAttendance(attendance *models.EventAttendance) error {
	return r.db.Create(attendance).Error
}

func (r *PostgresEventRepository) DeleteAttendance(eventID, userID string) error {
	return r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAttendance{}).Error
}

func (r *PostgresEventRepository) ListAttendances(eventID string) ([]models.EventAttendance, error) {
	var attendances []models.EventAttendance
	err := r.db.Where("event_id = ?", eventID).Find(&attendances).Error
	return attendances, err
}

func (r *PostgresEventRepository) CountAttendances(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventAttendance{}).
		Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
