package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
	"github.com/DashCode47/espebackend/pkg/gcs"
)

const maxEventImageSize = 5 << 20 // 5 MiB

// EventHandler handles campus events and attendance
type EventHandler struct {
	eventRepository repositories.EventRepository
	userRepository  repositories.UserRepository
	uploader        *gcs.Uploader // nil when uploads are not configured
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventRepo repositories.EventRepository, userRepo repositories.UserRepository, uploader *gcs.Uploader) *EventHandler {
	return &EventHandler{
		eventRepository: eventRepo,
		userRepository:  userRepo,
		uploader:        uploader,
	}
}

// RegisterEventRoutes registers event routes on the protected group
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.GET("/events", h.GetEvents)
	g.GET("/events/:id", h.GetEventByID)
	g.POST("/events", h.CreateEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.POST("/events/:id/attend", h.AttendEvent)
	g.DELETE("/events/:id/attend", h.CancelAttendance)
	g.GET("/events/:id/attendees", h.GetEventAttendees)
}

// eventView is an event enriched with its attendance count
type eventView struct {
	models.Event
	Attendees int64 `json:"attendees"`
}

func (h *EventHandler) buildEventView(event models.Event) eventView {
	view := eventView{Event: event}
	if count, err := h.eventRepository.CountAttendances(event.ID); err == nil {
		view.Attendees = count
	}
	return view
}

// GetEvents lists events, soonest first
func (h *EventHandler) GetEvents(c echo.Context) error {
	page, limit := pagination(c, 10)

	filter := repositories.EventFilter{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
		Page:     page,
		Limit:    limit,
	}
	if filter.Category != "" && !models.ValidEventCategory(filter.Category) {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Invalid category, expected one of: "+strings.Join(models.EventCategories, ", "))
	}
	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
		}
		filter.StartFrom = &from
	}

	events, total, err := h.eventRepository.ListEvents(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]eventView, len(events))
	for i, event := range events {
		views[i] = h.buildEventView(event)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"events":     views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetEventByID returns a single event with its attendance count
func (h *EventHandler) GetEventByID(c echo.Context) error {
	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}
	return respondSuccess(c, http.StatusOK, h.buildEventView(*event))
}

// CreateEvent publishes a new event. Accepts either a JSON body or a
// multipart form with an optional image file.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID := getUserID(c)

	var req models.CreateEventRequest
	imageURL := ""

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		req = models.CreateEventRequest{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			Category:    c.FormValue("category"),
			StartDate:   c.FormValue("startDate"),
			EndDate:     c.FormValue("endDate"),
			Location:    c.FormValue("location"),
		}
		if raw := c.FormValue("price"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid price")
			}
			req.Price = &price
		}
		url, err := h.uploadImage(c, "events")
		if err != nil {
			return err
		}
		imageURL = url
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidEventCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Invalid category, expected one of: "+strings.Join(models.EventCategories, ", "))
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid startDate, expected RFC 3339")
	}

	event := &models.Event{
		CreatorID:   userID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		StartDate:   startDate,
		Location:    req.Location,
		Price:       req.Price,
		ImageURL:    imageURL,
	}
	if req.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid endDate, expected RFC 3339")
		}
		if endDate.Before(startDate) {
			return echo.NewHTTPError(http.StatusBadRequest, "endDate must be after startDate")
		}
		event.EndDate = &endDate
	}

	if err := h.eventRepository.CreateEvent(event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"event": event})
}

// uploadImage stores the multipart "image" file, if present, and returns its URL
func (h *EventHandler) uploadImage(c echo.Context, prefix string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No file attached
		return "", nil
	}
	if h.uploader == nil {
		return "", echo.NewHTTPError(http.StatusServiceUnavailable, "Image uploads are not configured")
	}
	if file.Size > maxEventImageSize {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the 5MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	objectName := gcs.GenerateObjectName(prefix, file.Filename)
	url, err := h.uploader.Upload(c.Request().Context(), objectName, file.Header.Get("Content-Type"), data)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Image upload failed: %v", err))
	}
	return url, nil
}

// UpdateEvent edits an event the caller created
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	userID := getUserID(c)

	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}
	if event.CreatorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the creator can update this event")
	}

	var req models.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if req.Name != "" {
		event.Name = req.Name
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Category != "" {
		if !models.ValidEventCategory(req.Category) {
			return echo.NewHTTPError(http.StatusBadRequest,
				"Invalid category, expected one of: "+strings.Join(models.EventCategories, ", "))
		}
		event.Category = req.Category
	}
	if req.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid startDate, expected RFC 3339")
		}
		event.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid endDate, expected RFC 3339")
		}
		event.EndDate = &endDate
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.Price != nil {
		event.Price = req.Price
	}

	if err := h.eventRepository.UpdateEvent(event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"event": event})
}

// DeleteEvent removes an event the caller created
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	userID := getUserID(c)

	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}
	if event.CreatorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the creator can delete this event")
	}

	if err := h.eventRepository.DeleteEvent(event.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Event deleted", echo.Map{"id": event.ID})
}

// AttendEvent marks the caller as attending
func (h *EventHandler) AttendEvent(c echo.Context) error {
	userID := getUserID(c)

	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}

	existing, err := h.eventRepository.GetAttendance(event.ID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "You are already attending this event")
	}

	attendance := &models.EventAttendance{EventID: event.ID, UserID: userID}
	if err := h.eventRepository.CreateAttendance(attendance); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"attendance": attendance})
}

// CancelAttendance removes the caller from the attendee list
func (h *EventHandler) CancelAttendance(c echo.Context) error {
	userID := getUserID(c)

	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}

	existing, err := h.eventRepository.GetAttendance(event.ID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "You are not attending this event")
	}

	if err := h.eventRepository.DeleteAttendance(event.ID, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Attendance cancelled", echo.Map{"eventId": event.ID})
}

// GetEventAttendees lists the users attending an event
func (h *EventHandler) GetEventAttendees(c echo.Context) error {
	event, err := h.eventRepository.GetEventByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Event")
	}

	attendances, err := h.eventRepository.ListAttendances(event.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	attendees := make([]models.UserCompact, 0, len(attendances))
	for _, attendance := range attendances {
		if user, err := h.userRepository.GetUserByID(attendance.UserID); err == nil {
			attendees = append(attendees, user.ToCompact())
		}
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"attendees": attendees,
		"total":     len(attendees),
	})
}
