package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/notify"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// overlapWindow is how close two departures by the same driver may be.
const overlapWindow = 2 * time.Hour

// TripHandler handles ride-sharing trip requests
type TripHandler struct {
	tripRepository repositories.TripRepository
	userRepository repositories.UserRepository
	notifier       *notify.Notifier
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripRepo repositories.TripRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *TripHandler {
	return &TripHandler{
		tripRepository: tripRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterTripRoutes registers trip routes. Listing and detail are public;
// everything else requires auth, and CreateTrip additionally passes through
// a role check wired in the router.
func (h *TripHandler) RegisterTripRoutes(public, protected *echo.Group, createMiddleware ...echo.MiddlewareFunc) {
	public.GET("/trips", h.GetTrips)
	public.GET("/trips/:id", h.GetTripByID)
	protected.GET("/trips/user", h.GetUserTrips)
	protected.POST("/trips", h.CreateTrip, createMiddleware...)
	protected.PUT("/trips/:id", h.UpdateTrip)
	protected.DELETE("/trips/:id", h.CancelTrip)
	protected.POST("/trips/:id/join", h.JoinTrip)
	protected.POST("/trips/:id/confirm", h.ConfirmPassenger)
	protected.POST("/trips/:id/rating", h.RateDriver)
}

// tripView is a trip enriched with driver info and seat accounting
type tripView struct {
	models.Trip
	Driver       models.UserCompact `json:"driver"`
	DriverRating *float64           `json:"driverRating"`
	SeatsTaken   int                `json:"seatsTaken"`
	SeatsLeft    int                `json:"seatsLeft"`
}

func (h *TripHandler) buildTripView(trip models.Trip) tripView {
	view := tripView{Trip: trip}

	if driver, err := h.userRepository.GetUserByID(trip.DriverID); err == nil {
		view.Driver = driver.ToCompact()
	}

	count, err := h.tripRepository.CountAcceptedRequests(trip.ID)
	if err == nil {
		view.SeatsTaken = int(count)
		view.SeatsLeft = trip.AvailableSeats - int(count)
	}

	if avg := h.driverAverageRating(trip.DriverID); avg != nil {
		view.DriverRating = avg
	}
	return view
}

func (h *TripHandler) driverAverageRating(driverID string) *float64 {
	ratings, err := h.tripRepository.ListRatingsByDriver(driverID)
	if err != nil || len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(ratings))
	return &avg
}

// GetTrips lists ACTIVE upcoming trips, filterable by origin, destination and date
func (h *TripHandler) GetTrips(c echo.Context) error {
	page, limit := pagination(c, 20)
	filter := repositories.TripFilter{
		Origin:      c.QueryParam("origin"),
		Destination: c.QueryParam("destination"),
		Page:        page,
		Limit:       limit,
	}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		filter.Date = &date
	}

	trips, total, err := h.tripRepository.ListActiveTrips(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]tripView, len(trips))
	for i, trip := range trips {
		views[i] = h.buildTripView(trip)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"trips":      views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetTripByID returns a trip with its accepted passengers and ratings
func (h *TripHandler) GetTripByID(c echo.Context) error {
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}

	view := h.buildTripView(*trip)

	accepted, err := h.tripRepository.ListAcceptedRequests(trip.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	passengers := make([]models.UserCompact, 0, len(accepted))
	for _, request := range accepted {
		if passenger, err := h.userRepository.GetUserByID(request.PassengerID); err == nil {
			passengers = append(passengers, passenger.ToCompact())
		}
	}

	requests, err := h.tripRepository.ListRequestsByTrip(trip.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pending := make([]echo.Map, 0)
	for _, request := range requests {
		if request.Status != models.TripRequestPending {
			continue
		}
		entry := echo.Map{"requestId": request.ID, "createdAt": request.CreatedAt}
		if passenger, err := h.userRepository.GetUserByID(request.PassengerID); err == nil {
			entry["passenger"] = passenger.ToCompact()
		}
		pending = append(pending, entry)
	}

	response := echo.Map{
		"trip":            view,
		"passengers":      passengers,
		"pendingRequests": pending,
	}

	ratings, err := h.tripRepository.ListRatingsByTrip(trip.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	response["ratings"] = ratings

	return respondSuccess(c, http.StatusOK, response)
}

// CreateTrip publishes a new trip offer
func (h *TripHandler) CreateTrip(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid departureTime, expected RFC 3339")
	}
	if departure.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "Departure time must be in the future")
	}

	existing, err := h.tripRepository.FindActiveTripAround(userID, departure, overlapWindow)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "You already have an active trip around this departure time")
	}

	trip := &models.Trip{
		DriverID:       userID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureTime:  departure,
		AvailableSeats: req.AvailableSeats,
		Price:          req.Price,
		Notes:          req.Notes,
		Status:         models.TripStatusActive,
	}
	if err := h.tripRepository.CreateTrip(trip); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"trip": trip})
}

// UpdateTrip edits a trip the caller owns
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	userID := getUserID(c)
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}
	if trip.DriverID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the driver can update this trip")
	}
	if trip.Status == models.TripStatusCancelled {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot update a cancelled trip")
	}

	var req models.UpdateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Origin != "" {
		trip.Origin = req.Origin
	}
	if req.Destination != "" {
		trip.Destination = req.Destination
	}
	if req.DepartureTime != "" {
		departure, err := time.Parse(time.RFC3339, req.DepartureTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid departureTime, expected RFC 3339")
		}
		if departure.Before(time.Now()) {
			return echo.NewHTTPError(http.StatusBadRequest, "Departure time must be in the future")
		}
		trip.DepartureTime = departure
	}
	if req.AvailableSeats != nil {
		accepted, err := h.tripRepository.CountAcceptedRequests(trip.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if int64(*req.AvailableSeats) < accepted {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Cannot reduce seats below the %d accepted passengers", accepted))
		}
		trip.AvailableSeats = *req.AvailableSeats
	}
	if req.Price != nil {
		trip.Price = req.Price
	}
	if req.Notes != nil {
		trip.Notes = *req.Notes
	}

	if err := h.tripRepository.UpdateTrip(trip); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"trip": trip})
}

// CancelTrip cancels a trip, rejects pending requests and notifies riders
func (h *TripHandler) CancelTrip(c echo.Context) error {
	userID := getUserID(c)
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}
	if trip.DriverID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the driver can cancel this trip")
	}
	if trip.Status == models.TripStatusCancelled {
		return echo.NewHTTPError(http.StatusBadRequest, "Trip is already cancelled")
	}

	if err := h.tripRepository.UpdateTripStatus(trip.ID, models.TripStatusCancelled); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.tripRepository.RejectPendingRequests(trip.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	accepted, err := h.tripRepository.ListAcceptedRequests(trip.ID)
	if err == nil {
		message := fmt.Sprintf("The trip from %s to %s was cancelled by the driver", trip.Origin, trip.Destination)
		for _, request := range accepted {
			_ = h.notifier.Notify(c.Request().Context(), request.PassengerID, message)
		}
	}

	return respondSuccessMessage(c, http.StatusOK, "Trip cancelled", echo.Map{"id": trip.ID})
}

// JoinTrip creates a PENDING seat request for the caller
func (h *TripHandler) JoinTrip(c echo.Context) error {
	userID := getUserID(c)
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}
	if trip.Status != models.TripStatusActive {
		return echo.NewHTTPError(http.StatusBadRequest, "Trip is not active")
	}
	if trip.DriverID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot join your own trip")
	}

	existing, err := h.tripRepository.GetRequestForPassenger(trip.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil && existing.Status != models.TripRequestRejected {
		return echo.NewHTTPError(http.StatusConflict, "You already have a request on this trip")
	}

	request := &models.TripRequest{
		TripID:      trip.ID,
		PassengerID: userID,
		Status:      models.TripRequestPending,
	}
	if err := h.tripRepository.CreateRequest(request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	passengerName := "A passenger"
	if passenger, err := h.userRepository.GetUserByID(userID); err == nil {
		passengerName = passenger.Name
	}
	_ = h.notifier.Notify(c.Request().Context(), trip.DriverID,
		fmt.Sprintf("%s wants to join your trip from %s to %s", passengerName, trip.Origin, trip.Destination))

	return respondSuccess(c, http.StatusCreated, echo.Map{"request": request})
}

// ConfirmPassenger accepts a pending request. Capacity is checked with a
// plain read before the write.
func (h *TripHandler) ConfirmPassenger(c echo.Context) error {
	userID := getUserID(c)
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}
	if trip.DriverID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the driver can confirm passengers")
	}
	if trip.Status != models.TripStatusActive {
		return echo.NewHTTPError(http.StatusBadRequest, "Trip is not active")
	}

	var req models.ConfirmPassengerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.tripRepository.GetRequestByID(req.RequestID)
	if err != nil {
		return notFoundOr(err, "Request")
	}
	if request.TripID != trip.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Request does not belong to this trip")
	}
	if request.Status != models.TripRequestPending {
		return echo.NewHTTPError(http.StatusBadRequest, "Request is not pending")
	}

	accepted, err := h.tripRepository.CountAcceptedRequests(trip.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if accepted >= int64(trip.AvailableSeats) {
		return echo.NewHTTPError(http.StatusBadRequest, "Trip is full")
	}

	if err := h.tripRepository.UpdateRequestStatus(request.ID, models.TripRequestAccepted); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if accepted+1 >= int64(trip.AvailableSeats) {
		if err := h.tripRepository.UpdateTripStatus(trip.ID, models.TripStatusFull); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	_ = h.notifier.Notify(c.Request().Context(), request.PassengerID,
		fmt.Sprintf("Your seat on the trip from %s to %s was confirmed", trip.Origin, trip.Destination))

	return respondSuccessMessage(c, http.StatusOK, "Passenger confirmed", echo.Map{
		"requestId": request.ID,
		"status":    models.TripRequestAccepted,
	})
}

// RateDriver lets a confirmed passenger rate the driver once per trip
func (h *TripHandler) RateDriver(c echo.Context) error {
	userID := getUserID(c)
	trip, err := h.tripRepository.GetTripByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Trip")
	}

	request, err := h.tripRepository.GetRequestForPassenger(trip.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if request == nil || request.Status != models.TripRequestAccepted {
		return echo.NewHTTPError(http.StatusForbidden, "Only confirmed passengers can rate this trip")
	}

	var req models.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.tripRepository.GetRating(trip.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "You have already rated this trip")
	}

	rating := &models.TripRating{
		TripID:   trip.ID,
		RaterID:  userID,
		DriverID: trip.DriverID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.tripRepository.CreateRating(rating); err != nil {
		// Unique index on (trip_id, rater_id) catches concurrent duplicates
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "You have already rated this trip")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"rating": rating})
}

// GetUserTrips lists the caller's trips as driver and as passenger.
// type=created|joined|all (default all).
func (h *TripHandler) GetUserTrips(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	kind := c.QueryParam("type")
	if kind == "" {
		kind = "all"
	}

	response := echo.Map{}

	if kind == "created" || kind == "all" {
		trips, err := h.tripRepository.ListTripsByDriver(userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		views := make([]tripView, len(trips))
		for i, trip := range trips {
			views[i] = h.buildTripView(trip)
		}
		response["created"] = views
	}

	if kind == "joined" || kind == "all" {
		requests, err := h.tripRepository.ListAcceptedRequestsByPassenger(userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		joined := make([]tripView, 0, len(requests))
		for _, request := range requests {
			trip, err := h.tripRepository.GetTripByID(request.TripID)
			if err != nil {
				continue
			}
			joined = append(joined, h.buildTripView(*trip))
		}
		response["joined"] = joined
	}

	return respondSuccess(c, http.StatusOK, response)
}
