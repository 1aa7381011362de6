package repositories

import (
	"time"

	"github.com/DashCode47/espebackend/internal/models"
	"gorm.io/gorm"
)

// TripFilter narrows the public trip listing
type TripFilter struct {
	Origin      string
	Destination string
	Date        *time.Time // filter to this calendar day
	Page        int
	Limit       int
}

// TripRepository defines the interface for trip, request, and rating operations
type TripRepository interface {
	CreateTrip(trip *models.Trip) error
	GetTripByID(id string) (*models.Trip, error)
	ListActiveTrips(filter TripFilter) ([]models.Trip, int64, error)
	ListTripsByDriver(driverID string) ([]models.Trip, error)
	UpdateTrip(trip *models.Trip) error
	UpdateTripStatus(id, status string) error
	// FindActiveTripAround returns the driver's ACTIVE trip whose departure
	// lies within the window around departure, if any.
	FindActiveTripAround(driverID string, departure time.Time, window time.Duration) (*models.Trip, error)

	CreateRequest(request *models.TripRequest) error
	GetRequestByID(id string) (*models.TripRequest, error)
	GetRequestForPassenger(tripID, passengerID string) (*models.TripRequest, error)
	ListRequestsByTrip(tripID string) ([]models.TripRequest, error)
	ListAcceptedRequests(tripID string) ([]models.TripRequest, error)
	ListAcceptedRequestsByPassenger(passengerID string) ([]models.TripRequest, error)
	CountAcceptedRequests(tripID string) (int64, error)
	UpdateRequestStatus(id, status string) error
	RejectPendingRequests(tripID string) error

	CreateRating(rating *models.TripRating) error
	GetRating(tripID, raterID string) (*models.TripRating, error)
	ListRatingsByTrip(tripID string) ([]models.TripRating, error)
	ListRatingsByDriver(driverID string) ([]models.TripRating, error)
}

// PostgresTripRepository implements TripRepository for PostgreSQL
type PostgresTripRepository struct {
	db *gorm.DB
}

// NewPostgresTripRepository creates a new PostgresTripRepository
func NewPostgresTripRepository(db *gorm.DB) *PostgresTripRepository {
	return &PostgresTripRepository{db: db}
}

func (r *PostgresTripRepository) CreateTrip(trip *models.Trip) error {
	return r.db.Create(trip).Error
}

func (r *PostgresTripRepository) GetTripByID(id string) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.First(&trip, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresTripRepository) ListActiveTrips(filter TripFilter) ([]models.Trip, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	now := time.Now()
	q := r.db.Model(&models.Trip{}).Where("status = ?", models.TripStatusActive)

	if filter.Origin != "" {
		q = q.Where("origin ILIKE ?", "%"+filter.Origin+"%")
	}
	if filter.Destination != "" {
		q = q.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.Date != nil {
		startOfDay := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)
		if startOfDay.Before(now) {
			startOfDay = now
		}
		q = q.Where("departure_time >= ? AND departure_time <= ?", startOfDay, endOfDay)
	} else {
		// Hide departed trips from the default listing
		q = q.Where("departure_time >= ?", now)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []models.Trip
	err := q.Order("departure_time ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&trips).Error
	return trips, total, err
}

func (r *PostgresTripRepository) ListTripsByDriver(driverID string) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Where("driver_id = ?", driverID).
		Order("departure_time DESC").Find(&trips).Error
	return trips, err
}

func (r *PostgresTripRepository) UpdateTrip(trip *models.Trip) error {
	return r.db.Save(trip).Error
}

func (r *PostgresTripRepository) UpdateTripStatus(id, status string) error {
	return r.db.Model(&models.Trip{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *PostgresTripRepository) FindActiveTripAround(driverID string, departure time.Time, window time.Duration) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Where(
		"driver_id = ? AND status = ? AND departure_time >= ? AND departure_time <= ?",
		driverID, models.TripStatusActive,
		departure.Add(-window), departure.Add(window),
	).First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresTripRepository) CreateRequest(request *models.TripRequest) error {
	return r.db.Create(request).Error
}

func (r *PostgresTripRepository) GetRequestByID(id string) (*models.TripRequest, error) {
	var request models.TripRequest
	if err := r.db.First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestForPassenger returns the passenger's most recent request on the
// trip. A prior REJECTED request must not block a new join, so callers check
// the returned status.
func (r *PostgresTripRepository) GetRequestForPassenger(tripID, passengerID string) (*models.TripRequest, error) {
	var request models.TripRequest
	err := r.db.Where("trip_id = ? AND passenger_id = ?", tripID, passengerID).
		Order("created_at DESC").First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PostgresTripRepository) ListRequestsByTrip(tripID string) ([]models.TripRequest, error) {
	var requests []models.TripRequest
	err := r.db.Where("trip_id = ?", tripID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *PostgresTripRepository) ListAcceptedRequests(tripID string) ([]models.TripRequest, error) {
	var requests []models.TripRequest
	err := r.db.Where("trip_id = ? AND status = ?", tripID, models.TripRequestAccepted).
		Find(&requests).Error
	return requests, err
}

func (r *PostgresTripRepository) ListAcceptedRequestsByPassenger(passengerID string) ([]models.TripRequest, error) {
	var requests []models.TripRequest
	err := r.db.Where("passenger_id = ? AND status = ?", passengerID, models.TripRequestAccepted).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *PostgresTripRepository) CountAcceptedRequests(tripID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.TripRequest{}).
		Where("trip_id = ? AND status = ?", tripID, models.TripRequestAccepted).
		Count(&count).Error
	return count, err
}

func (r *PostgresTripRepository) UpdateRequestStatus(id, status string) error {
	return r.db.Model(&models.TripRequest{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *PostgresTripRepository) RejectPendingRequests(tripID string) error {
	return r.db.Model(&models.TripRequest{}).
		Where("trip_id = ? AND status = ?", tripID, models.TripRequestPending).
		Update("status", models.TripRequestRejected).Error
}

func (r *PostgresTripRepository) CreateRating(rating *models.TripRating) error {
	return r.db.Create(rating).Error
}

func (r *PostgresTripRepository) GetRating(tripID, raterID string) (*models.TripRating, error) {
	var rating models.TripRating
	err := r.db.Where("trip_id = ? AND rater_id = ?", tripID, raterID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *PostgresTripRepository) ListRatingsByTrip(tripID string) ([]models.TripRating, error) {
	var ratings []models.TripRating
	err := r.db.Where("trip_id = ?", tripID).
		Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

func (r *PostgresTripRepository) ListRatingsByDriver(driverID string) ([]models.TripRating, error) {
	var ratings []models.TripRating
	err := r.db.Where("driver_id = ?", driverID).Find(&ratings).Error
	return ratings, err
}
