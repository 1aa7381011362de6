package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DashCode47/espebackend/internal/models"
)

func tripFixtures() (*TripHandler, *mockTripRepository, *mockUserRepository, *mockNotificationRepository) {
	tripRepo := newMockTripRepository()
	userRepo := newMockUserRepository()
	notificationRepo := newMockNotificationRepository()
	handler := NewTripHandler(tripRepo, userRepo, newTestNotifier(notificationRepo))

	userRepo.addUser(&models.User{ID: "driver-1", Name: "Diana", Role: models.RoleDriver, IsVisible: true})
	userRepo.addUser(&models.User{ID: "passenger-1", Name: "Pablo", Role: models.RoleStudent, IsVisible: true})
	userRepo.addUser(&models.User{ID: "passenger-2", Name: "Paula", Role: models.RoleStudent, IsVisible: true})

	return handler, tripRepo, userRepo, notificationRepo
}

func activeTrip(tripRepo *mockTripRepository, seats int) *models.Trip {
	trip := &models.Trip{
		DriverID:       "driver-1",
		Origin:         "Sangolquí",
		Destination:    "Campus Matriz",
		DepartureTime:  time.Now().Add(24 * time.Hour),
		AvailableSeats: seats,
		Status:         models.TripStatusActive,
	}
	_ = tripRepo.CreateTrip(trip)
	return trip
}

func TestCreateTrip_RejectsPastDeparture(t *testing.T) {
	t.Parallel()
	handler, _, _, _ := tripFixtures()

	body := fmt.Sprintf(`{"origin":"A","destination":"B","departureTime":%q,"availableSeats":2}`,
		time.Now().Add(-time.Hour).Format(time.RFC3339))
	c, _ := newTestContext(http.MethodPost, "/api/trips", body, "driver-1")

	assertHTTPError(t, handler.CreateTrip(c), http.StatusBadRequest)
}

func TestCreateTrip_ConflictsWithNearbyDeparture(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	existing := activeTrip(tripRepo, 3)

	// One hour after the existing departure, inside the overlap window
	body := fmt.Sprintf(`{"origin":"A","destination":"B","departureTime":%q,"availableSeats":2}`,
		existing.DepartureTime.Add(time.Hour).Format(time.RFC3339))
	c, _ := newTestContext(http.MethodPost, "/api/trips", body, "driver-1")

	assertHTTPError(t, handler.CreateTrip(c), http.StatusConflict)
}

func TestCreateTrip_AllowsDistantDeparture(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	existing := activeTrip(tripRepo, 3)

	body := fmt.Sprintf(`{"origin":"A","destination":"B","departureTime":%q,"availableSeats":2}`,
		existing.DepartureTime.Add(5*time.Hour).Format(time.RFC3339))
	c, rec := newTestContext(http.MethodPost, "/api/trips", body, "driver-1")

	if err := handler.CreateTrip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestJoinTrip_OwnTrip(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)

	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/join", "", "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)

	assertHTTPError(t, handler.JoinTrip(c), http.StatusBadRequest)
}

func TestJoinTrip_DuplicateRequest(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, notificationRepo := tripFixtures()
	trip := activeTrip(tripRepo, 2)

	c, rec := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/join", "", "passenger-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.JoinTrip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if notificationRepo.countFor("driver-1") != 1 {
		t.Fatalf("expected driver to be notified once, got %d", notificationRepo.countFor("driver-1"))
	}

	// A second join while the first request is pending conflicts
	c2, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/join", "", "passenger-1")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	assertHTTPError(t, handler.JoinTrip(c2), http.StatusConflict)
}

func TestJoinTrip_RejectedRequestDoesNotBlock(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)

	rejected := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestRejected}
	_ = tripRepo.CreateRequest(rejected)

	c, rec := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/join", "", "passenger-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.JoinTrip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestJoinTrip_FullTrip(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 1)

	request := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestPending}
	_ = tripRepo.CreateRequest(request)

	body := fmt.Sprintf(`{"requestId":%q}`, request.ID)
	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/confirm", body, "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.ConfirmPassenger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The last seat is taken, so a new passenger cannot join
	c2, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/join", "", "passenger-2")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	assertHTTPError(t, handler.JoinTrip(c2), http.StatusBadRequest)
}

func TestConfirmPassenger_NotDriver(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)
	request := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestPending}
	_ = tripRepo.CreateRequest(request)

	body := fmt.Sprintf(`{"requestId":%q}`, request.ID)
	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/confirm", body, "passenger-2")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)

	assertHTTPError(t, handler.ConfirmPassenger(c), http.StatusForbidden)
}

func TestConfirmPassenger_FillsTrip(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, notificationRepo := tripFixtures()
	trip := activeTrip(tripRepo, 1)

	first := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestPending}
	second := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-2", Status: models.TripRequestPending}
	_ = tripRepo.CreateRequest(first)
	_ = tripRepo.CreateRequest(second)

	body := fmt.Sprintf(`{"requestId":%q}`, first.ID)
	c, rec := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/confirm", body, "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.ConfirmPassenger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stored, _ := tripRepo.GetTripByID(trip.ID)
	if stored.Status != models.TripStatusFull {
		t.Fatalf("expected trip to be FULL, got %s", stored.Status)
	}
	accepted, _ := tripRepo.GetRequestByID(first.ID)
	if accepted.Status != models.TripRequestAccepted {
		t.Fatalf("expected request ACCEPTED, got %s", accepted.Status)
	}
	if notificationRepo.countFor("passenger-1") != 1 {
		t.Fatalf("expected confirmed passenger to be notified")
	}

	// The trip is no longer ACTIVE, so the second request cannot be confirmed
	body = fmt.Sprintf(`{"requestId":%q}`, second.ID)
	c2, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/confirm", body, "driver-1")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	assertHTTPError(t, handler.ConfirmPassenger(c2), http.StatusBadRequest)
}

func TestCancelTrip_RejectsPendingKeepsAccepted(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, notificationRepo := tripFixtures()
	trip := activeTrip(tripRepo, 3)

	accepted := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestAccepted}
	pending := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-2", Status: models.TripRequestPending}
	_ = tripRepo.CreateRequest(accepted)
	_ = tripRepo.CreateRequest(pending)

	c, rec := newTestContext(http.MethodDelete, "/api/trips/"+trip.ID, "", "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.CancelTrip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stored, _ := tripRepo.GetTripByID(trip.ID)
	if stored.Status != models.TripStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", stored.Status)
	}
	keptAccepted, _ := tripRepo.GetRequestByID(accepted.ID)
	if keptAccepted.Status != models.TripRequestAccepted {
		t.Fatalf("accepted request should keep its status, got %s", keptAccepted.Status)
	}
	nowRejected, _ := tripRepo.GetRequestByID(pending.ID)
	if nowRejected.Status != models.TripRequestRejected {
		t.Fatalf("pending request should be rejected, got %s", nowRejected.Status)
	}
	if notificationRepo.countFor("passenger-1") != 1 {
		t.Fatalf("accepted passenger should be notified of the cancellation")
	}
	if notificationRepo.countFor("passenger-2") != 0 {
		t.Fatalf("pending passenger should not be notified")
	}

	// Cancelling again fails
	c2, _ := newTestContext(http.MethodDelete, "/api/trips/"+trip.ID, "", "driver-1")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	assertHTTPError(t, handler.CancelTrip(c2), http.StatusBadRequest)
}

func TestRateDriver_RequiresAcceptedRequest(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)

	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/rate", `{"rating":5}`, "passenger-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)

	assertHTTPError(t, handler.RateDriver(c), http.StatusForbidden)
}

func TestRateDriver_OncePerTrip(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)
	_ = tripRepo.CreateRequest(&models.TripRequest{
		TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestAccepted,
	})

	c, rec := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/rate", `{"rating":4,"comment":"buen viaje"}`, "passenger-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.RateDriver(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c2, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/rate", `{"rating":2}`, "passenger-1")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	assertHTTPError(t, handler.RateDriver(c2), http.StatusConflict)
}

func TestRateDriver_RejectsOutOfRange(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 2)
	_ = tripRepo.CreateRequest(&models.TripRequest{
		TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestAccepted,
	})

	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/rate", `{"rating":6}`, "passenger-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)

	assertHTTPError(t, handler.RateDriver(c), http.StatusBadRequest)
}

func TestUpdateTrip_CannotDropSeatsBelowAccepted(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 3)
	_ = tripRepo.CreateRequest(&models.TripRequest{
		TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestAccepted,
	})
	_ = tripRepo.CreateRequest(&models.TripRequest{
		TripID: trip.ID, PassengerID: "passenger-2", Status: models.TripRequestAccepted,
	})

	c, _ := newTestContext(http.MethodPut, "/api/trips/"+trip.ID, `{"availableSeats":1}`, "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)

	assertHTTPError(t, handler.UpdateTrip(c), http.StatusBadRequest)
}

func TestUpdateTrip_AddingSeatsDoesNotReopenFullTrip(t *testing.T) {
	t.Parallel()
	handler, tripRepo, _, _ := tripFixtures()
	trip := activeTrip(tripRepo, 1)

	request := &models.TripRequest{TripID: trip.ID, PassengerID: "passenger-1", Status: models.TripRequestPending}
	_ = tripRepo.CreateRequest(request)

	body := fmt.Sprintf(`{"requestId":%q}`, request.ID)
	c, _ := newTestContext(http.MethodPost, "/api/trips/"+trip.ID+"/confirm", body, "driver-1")
	c.SetParamNames("id")
	c.SetParamValues(trip.ID)
	if err := handler.ConfirmPassenger(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c2, rec := newTestContext(http.MethodPut, "/api/trips/"+trip.ID, `{"availableSeats":3}`, "driver-1")
	c2.SetParamNames("id")
	c2.SetParamValues(trip.ID)
	if err := handler.UpdateTrip(c2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	stored, _ := tripRepo.GetTripByID(trip.ID)
	if stored.AvailableSeats != 3 {
		t.Fatalf("expected 3 seats, got %d", stored.AvailableSeats)
	}
	if stored.Status != models.TripStatusFull {
		t.Fatalf("trip should stay FULL, got %s", stored.Status)
	}
}
