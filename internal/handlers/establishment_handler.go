package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// EstablishmentHandler handles the directory of businesses near campus
type EstablishmentHandler struct {
	establishmentRepository repositories.EstablishmentRepository
}

// NewEstablishmentHandler creates a new EstablishmentHandler
func NewEstablishmentHandler(establishmentRepo repositories.EstablishmentRepository) *EstablishmentHandler {
	return &EstablishmentHandler{establishmentRepository: establishmentRepo}
}

// RegisterEstablishmentRoutes registers establishment routes. The directory
// is public, mutations go on the protected group.
func (h *EstablishmentHandler) RegisterEstablishmentRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/establishments", h.GetEstablishments)
	public.GET("/establishments/:id", h.GetEstablishmentByID)
	protected.POST("/establishments", h.CreateEstablishment)
	protected.PUT("/establishments/:id", h.UpdateEstablishment)
	protected.DELETE("/establishments/:id", h.DeleteEstablishment)
}

// GetEstablishments lists establishments, optionally filtered by category
func (h *EstablishmentHandler) GetEstablishments(c echo.Context) error {
	establishments, err := h.establishmentRepository.ListEstablishments(c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"establishments": establishments})
}

// GetEstablishmentByID returns a single establishment
func (h *EstablishmentHandler) GetEstablishmentByID(c echo.Context) error {
	establishment, err := h.establishmentRepository.GetEstablishmentByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Establishment")
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"establishment": establishment})
}

// CreateEstablishment adds an establishment to the directory
func (h *EstablishmentHandler) CreateEstablishment(c echo.Context) error {
	var req models.CreateEstablishmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	establishment := &models.Establishment{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Category: req.Category,
		ImageURL: req.ImageURL,
	}
	if err := h.establishmentRepository.CreateEstablishment(establishment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"establishment": establishment})
}

// UpdateEstablishment edits an establishment
func (h *EstablishmentHandler) UpdateEstablishment(c echo.Context) error {
	establishment, err := h.establishmentRepository.GetEstablishmentByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Establishment")
	}

	var req models.UpdateEstablishmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		establishment.Name = req.Name
	}
	if req.Address != "" {
		establishment.Address = req.Address
	}
	if req.Phone != "" {
		establishment.Phone = req.Phone
	}
	if req.Email != "" {
		establishment.Email = req.Email
	}
	if req.Category != "" {
		establishment.Category = req.Category
	}
	if req.ImageURL != "" {
		establishment.ImageURL = req.ImageURL
	}

	if err := h.establishmentRepository.UpdateEstablishment(establishment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"establishment": establishment})
}

// DeleteEstablishment removes an establishment from the directory
func (h *EstablishmentHandler) DeleteEstablishment(c echo.Context) error {
	establishment, err := h.establishmentRepository.GetEstablishmentByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Establishment")
	}

	if err := h.establishmentRepository.DeleteEstablishment(establishment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Establishment deleted", echo.Map{"id": establishment.ID})
}
