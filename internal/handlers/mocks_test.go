package handlers

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// In-memory repository fakes used across handler tests.

type mockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*models.User{}}
}

func (m *mockUserRepository) addUser(user *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepository) CreateUser(user *models.User) error {
	m.addUser(user)
	return nil
}

func (m *mockUserRepository) GetUserByID(id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) ListUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *mockUserRepository) ListVisibleUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, user := range m.users {
		if user.IsVisible {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *mockUserRepository) DiscoverUsers(userID string, filter repositories.DiscoverFilter) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []models.User
	for _, user := range m.users {
		if user.ID == userID || !user.IsVisible {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(filter.Search)) {
			continue
		}
		users = append(users, *user)
	}
	return users, nil
}

type mockTripRepository struct {
	mu       sync.RWMutex
	trips    map[string]*models.Trip
	requests map[string]*models.TripRequest
	ratings  []models.TripRating
}

func newMockTripRepository() *mockTripRepository {
	return &mockTripRepository{
		trips:    map[string]*models.Trip{},
		requests: map[string]*models.TripRequest{},
	}
}

func (m *mockTripRepository) CreateTrip(trip *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	trip.CreatedAt = time.Now()
	m.trips[trip.ID] = trip
	return nil
}

func (m *mockTripRepository) GetTripByID(id string) (*models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if trip, ok := m.trips[id]; ok {
		copied := *trip
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRepository) ListActiveTrips(filter repositories.TripFilter) ([]models.Trip, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var trips []models.Trip
	for _, trip := range m.trips {
		if trip.Status == models.TripStatusActive {
			trips = append(trips, *trip)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].DepartureTime.Before(trips[j].DepartureTime)
	})
	return trips, int64(len(trips)), nil
}

func (m *mockTripRepository) ListTripsByDriver(driverID string) ([]models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var trips []models.Trip
	for _, trip := range m.trips {
		if trip.DriverID == driverID {
			trips = append(trips, *trip)
		}
	}
	return trips, nil
}

func (m *mockTripRepository) UpdateTrip(trip *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *mockTripRepository) UpdateTripStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if trip, ok := m.trips[id]; ok {
		trip.Status = status
	}
	return nil
}

func (m *mockTripRepository) FindActiveTripAround(driverID string, departure time.Time, window time.Duration) (*models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, trip := range m.trips {
		if trip.DriverID != driverID || trip.Status != models.TripStatusActive {
			continue
		}
		diff := trip.DepartureTime.Sub(departure)
		if diff < 0 {
			diff = -diff
		}
		if diff <= window {
			copied := *trip
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRepository) CreateRequest(request *models.TripRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	return nil
}

func (m *mockTripRepository) GetRequestByID(id string) (*models.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if request, ok := m.requests[id]; ok {
		copied := *request
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRepository) GetRequestForPassenger(tripID, passengerID string) (*models.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.TripRequest
	for _, request := range m.requests {
		if request.TripID != tripID || request.PassengerID != passengerID {
			continue
		}
		if latest == nil || request.CreatedAt.After(latest.CreatedAt) {
			latest = request
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *mockTripRepository) ListRequestsByTrip(tripID string) ([]models.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var requests []models.TripRequest
	for _, request := range m.requests {
		if request.TripID == tripID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockTripRepository) ListAcceptedRequests(tripID string) ([]models.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var requests []models.TripRequest
	for _, request := range m.requests {
		if request.TripID == tripID && request.Status == models.TripRequestAccepted {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockTripRepository) ListAcceptedRequestsByPassenger(passengerID string) ([]models.TripRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var requests []models.TripRequest
	for _, request := range m.requests {
		if request.PassengerID == passengerID && request.Status == models.TripRequestAccepted {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (m *mockTripRepository) CountAcceptedRequests(tripID string) (int64, error) {
	requests, _ := m.ListAcceptedRequests(tripID)
	return int64(len(requests)), nil
}

func (m *mockTripRepository) UpdateRequestStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if request, ok := m.requests[id]; ok {
		request.Status = status
	}
	return nil
}

func (m *mockTripRepository) RejectPendingRequests(tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, request := range m.requests {
		if request.TripID == tripID && request.Status == models.TripRequestPending {
			request.Status = models.TripRequestRejected
		}
	}
	return nil
}

func (m *mockTripRepository) CreateRating(rating *models.TripRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.ratings {
		if existing.TripID == rating.TripID && existing.RaterID == rating.RaterID {
			return gorm.ErrDuplicatedKey
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	rating.CreatedAt = time.Now()
	m.ratings = append(m.ratings, *rating)
	return nil
}

func (m *mockTripRepository) GetRating(tripID, raterID string) (*models.TripRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rating := range m.ratings {
		if rating.TripID == tripID && rating.RaterID == raterID {
			copied := rating
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTripRepository) ListRatingsByTrip(tripID string) ([]models.TripRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ratings []models.TripRating
	for _, rating := range m.ratings {
		if rating.TripID == tripID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

func (m *mockTripRepository) ListRatingsByDriver(driverID string) ([]models.TripRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ratings []models.TripRating
	for _, rating := range m.ratings {
		if rating.DriverID == driverID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

type mockMatchRepository struct {
	mu           sync.RWMutex
	interactions []models.UserInteraction
	connections  []models.Connection
}

func newMockMatchRepository() *mockMatchRepository {
	return &mockMatchRepository{}
}

func (m *mockMatchRepository) CreateInteraction(interaction *models.UserInteraction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	interaction.CreatedAt = time.Now()
	m.interactions = append(m.interactions, *interaction)
	return nil
}

func (m *mockMatchRepository) HasLike(fromID, toID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, interaction := range m.interactions {
		if interaction.User1ID == fromID && interaction.User2ID == toID && interaction.Type == models.InteractionLike {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMatchRepository) CreateConnection(connection *models.Connection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if connection.ID == "" {
		connection.ID = uuid.New().String()
	}
	connection.CreatedAt = time.Now()
	m.connections = append(m.connections, *connection)
	return nil
}

func (m *mockMatchRepository) GetConnectionBetween(userA, userB string) (*models.Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, connection := range m.connections {
		if (connection.User1ID == userA && connection.User2ID == userB) ||
			(connection.User1ID == userB && connection.User2ID == userA) {
			copied := connection
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockMatchRepository) ListConnectionsByUser(userID string) ([]models.Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var connections []models.Connection
	for _, connection := range m.connections {
		if connection.User1ID == userID || connection.User2ID == userID {
			connections = append(connections, connection)
		}
	}
	return connections, nil
}

type mockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*models.Notification
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{}
}

func (m *mockNotificationRepository) CreateNotification(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *mockNotificationRepository) GetNotificationByID(id string) (*models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, notification := range m.notifications {
		if notification.ID == id {
			copied := *notification
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepository) ListByUser(userID string, page, limit int) ([]models.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var notifications []models.Notification
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			notifications = append(notifications, *notification)
		}
	}
	return notifications, int64(len(notifications)), nil
}

func (m *mockNotificationRepository) UnreadCount(userID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepository) MarkAsRead(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, notification := range m.notifications {
		if notification.ID == id {
			notification.Read = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllAsRead(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			notification.Read = true
		}
	}
	return nil
}

// countFor counts notifications delivered to a user.
func (m *mockNotificationRepository) countFor(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, notification := range m.notifications {
		if notification.UserID == userID {
			count++
		}
	}
	return count
}

type mockPostRepository struct {
	mu        sync.RWMutex
	posts     map[string]*models.Post
	reactions map[string]*models.PostReaction // keyed postID|userID
}

func newMockPostRepository() *mockPostRepository {
	return &mockPostRepository{
		posts:     map[string]*models.Post{},
		reactions: map[string]*models.PostReaction{},
	}
}

func (m *mockPostRepository) CreatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepository) GetPostByID(id string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if post, ok := m.posts[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostRepository) ListPosts(postType string, page, limit int) ([]models.Post, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var posts []models.Post
	for _, post := range m.posts {
		if postType == "" || post.Type == postType {
			posts = append(posts, *post)
		}
	}
	return posts, int64(len(posts)), nil
}

func (m *mockPostRepository) UpdatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepository) GetReaction(postID, userID string) (*models.PostReaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if reaction, ok := m.reactions[postID+"|"+userID]; ok {
		copied := *reaction
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPostRepository) CreateReaction(reaction *models.PostReaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	m.reactions[reaction.PostID+"|"+reaction.UserID] = reaction
	return nil
}

func (m *mockPostRepository) UpdateReaction(reaction *models.PostReaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactions[reaction.PostID+"|"+reaction.UserID] = reaction
	return nil
}

func (m *mockPostRepository) ListReactions(postID string) ([]models.PostReaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reactions []models.PostReaction
	for _, reaction := range m.reactions {
		if reaction.PostID == postID {
			reactions = append(reactions, *reaction)
		}
	}
	return reactions, nil
}
