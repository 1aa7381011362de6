package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// CareerHandler handles the degree program catalog
type CareerHandler struct {
	careerRepository repositories.CareerRepository
}

// NewCareerHandler creates a new CareerHandler
func NewCareerHandler(careerRepo repositories.CareerRepository) *CareerHandler {
	return &CareerHandler{careerRepository: careerRepo}
}

// RegisterCareerRoutes registers career routes. The catalog is public,
// mutations go on the protected group.
func (h *CareerHandler) RegisterCareerRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/careers", h.GetCareers)
	public.GET("/careers/:id", h.GetCareerByID)
	protected.POST("/careers", h.CreateCareer)
	protected.PUT("/careers/:id", h.UpdateCareer)
	protected.DELETE("/careers/:id", h.DeleteCareer)
}

// GetCareers lists careers, optionally filtered by campus or modality
func (h *CareerHandler) GetCareers(c echo.Context) error {
	var (
		careers []models.Career
		err     error
	)

	switch {
	case c.QueryParam("campus") != "":
		careers, err = h.careerRepository.ListCareersByCampus(c.QueryParam("campus"))
	case c.QueryParam("modality") != "":
		careers, err = h.careerRepository.ListCareersByModality(c.QueryParam("modality"))
	default:
		careers, err = h.careerRepository.ListCareers()
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"careers": careers})
}

// GetCareerByID returns a single career
func (h *CareerHandler) GetCareerByID(c echo.Context) error {
	career, err := h.careerRepository.GetCareerByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Career")
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"career": career})
}

// CreateCareer adds a career to the catalog
func (h *CareerHandler) CreateCareer(c echo.Context) error {
	var req models.CreateCareerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.careerRepository.GetCareerByCode(req.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Career code already exists")
	}

	career := &models.Career{
		Name:              req.Name,
		Code:              req.Code,
		Campus:            req.Campus,
		Modality:          req.Modality,
		DurationSemesters: req.DurationSemesters,
		DirectorName:      req.DirectorName,
		DirectorEmail:     req.DirectorEmail,
		Description:       req.Description,
	}
	if err := h.careerRepository.CreateCareer(career); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusBadRequest, "Career code already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"career": career})
}

// UpdateCareer edits a career
func (h *CareerHandler) UpdateCareer(c echo.Context) error {
	career, err := h.careerRepository.GetCareerByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Career")
	}

	var req models.UpdateCareerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Code != "" && req.Code != career.Code {
		existing, err := h.careerRepository.GetCareerByCode(req.Code)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if existing != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Career code already exists")
		}
		career.Code = req.Code
	}
	if req.Name != "" {
		career.Name = req.Name
	}
	if req.Campus != "" {
		career.Campus = req.Campus
	}
	if req.Modality != "" {
		career.Modality = req.Modality
	}
	if req.DurationSemesters != nil {
		career.DurationSemesters = *req.DurationSemesters
	}
	if req.DirectorName != "" {
		career.DirectorName = req.DirectorName
	}
	if req.DirectorEmail != "" {
		career.DirectorEmail = req.DirectorEmail
	}
	if req.Description != "" {
		career.Description = req.Description
	}

	if err := h.careerRepository.UpdateCareer(career); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"career": career})
}

// DeleteCareer removes a career from the catalog
func (h *CareerHandler) DeleteCareer(c echo.Context) error {
	career, err := h.careerRepository.GetCareerByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Career")
	}

	if err := h.careerRepository.DeleteCareer(career.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Career deleted", echo.Map{"id": career.ID})
}
