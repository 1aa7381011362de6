package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// PromotionHandler handles local business promotions
type PromotionHandler struct {
	promotionRepository repositories.PromotionRepository
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionRepo repositories.PromotionRepository) *PromotionHandler {
	return &PromotionHandler{promotionRepository: promotionRepo}
}

// RegisterPromotionRoutes registers promotion routes. Listing is public,
// mutations go on the protected group.
func (h *PromotionHandler) RegisterPromotionRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/promotions", h.GetPromotions)
	public.GET("/promotions/:id", h.GetPromotionByID)
	protected.POST("/promotions", h.CreatePromotion)
	protected.PUT("/promotions/:id", h.UpdatePromotion)
	protected.DELETE("/promotions/:id", h.DeletePromotion)
}

// GetPromotions lists promotions, newest first. Defaults to active only;
// pass active=false to include expired ones.
func (h *PromotionHandler) GetPromotions(c echo.Context) error {
	page, limit := pagination(c, 10)

	filter := repositories.PromotionFilter{
		Category: c.QueryParam("category"),
		Page:     page,
		Limit:    limit,
	}
	if filter.Category != "" && !models.ValidPromotionCategory(filter.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid promotion category")
	}
	if c.QueryParam("active") != "false" {
		active := true
		filter.IsActive = &active
	}

	promotions, total, err := h.promotionRepository.ListPromotions(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"promotions": promotions,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetPromotionByID returns a single promotion
func (h *PromotionHandler) GetPromotionByID(c echo.Context) error {
	promotion, err := h.promotionRepository.GetPromotionByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Promotion")
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"promotion": promotion})
}

// CreatePromotion publishes a new promotion
func (h *PromotionHandler) CreatePromotion(c echo.Context) error {
	var req models.CreatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidPromotionCategory(req.Category) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid promotion category")
	}

	validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid validUntil, expected RFC 3339")
	}
	if validUntil.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusBadRequest, "validUntil must be in the future")
	}

	promotion := &models.Promotion{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Discount:    req.Discount,
		StartDate:   time.Now(),
		EndDate:     validUntil,
		IsActive:    true,
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := h.promotionRepository.CreatePromotion(promotion); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"promotion": promotion})
}

// UpdatePromotion edits a promotion
func (h *PromotionHandler) UpdatePromotion(c echo.Context) error {
	promotion, err := h.promotionRepository.GetPromotionByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Promotion")
	}

	var req models.UpdatePromotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		promotion.Title = req.Title
	}
	if req.Description != "" {
		promotion.Description = req.Description
	}
	if req.ImageURL != "" {
		promotion.ImageURL = req.ImageURL
	}
	if req.Category != "" {
		if !models.ValidPromotionCategory(req.Category) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid promotion category")
		}
		promotion.Category = req.Category
	}
	if req.Discount != nil {
		promotion.Discount = req.Discount
	}
	if req.ValidUntil != "" {
		validUntil, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid validUntil, expected RFC 3339")
		}
		promotion.EndDate = validUntil
	}
	if req.IsActive != nil {
		promotion.IsActive = *req.IsActive
	}

	if err := h.promotionRepository.UpdatePromotion(promotion); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"promotion": promotion})
}

// DeletePromotion removes a promotion
func (h *PromotionHandler) DeletePromotion(c echo.Context) error {
	promotion, err := h.promotionRepository.GetPromotionByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Promotion")
	}

	if err := h.promotionRepository.DeletePromotion(promotion.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Promotion deleted", echo.Map{"id": promotion.ID})
}
