package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// BannerHandler handles home screen banners
type BannerHandler struct {
	bannerRepository repositories.BannerRepository
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerRepo repositories.BannerRepository) *BannerHandler {
	return &BannerHandler{bannerRepository: bannerRepo}
}

// RegisterBannerRoutes registers banner routes. Listing is public,
// mutations go on the protected group.
func (h *BannerHandler) RegisterBannerRoutes(public *echo.Group, protected *echo.Group) {
	public.GET("/banners", h.GetBanners)
	protected.POST("/banners", h.CreateBanner)
	protected.PUT("/banners/:id", h.UpdateBanner)
	protected.DELETE("/banners/:id", h.DeleteBanner)
}

// GetBanners lists banners. Defaults to active only; pass active=false to
// include the rest.
func (h *BannerHandler) GetBanners(c echo.Context) error {
	activeOnly := c.QueryParam("active") != "false"

	banners, err := h.bannerRepository.ListBanners(activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"banners": banners})
}

// CreateBanner publishes a new banner
func (h *BannerHandler) CreateBanner(c echo.Context) error {
	var req models.CreateBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	banner := &models.Banner{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Link:     req.Link,
		IsActive: true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.bannerRepository.CreateBanner(banner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"banner": banner})
}

// UpdateBanner edits a banner
func (h *BannerHandler) UpdateBanner(c echo.Context) error {
	banner, err := h.bannerRepository.GetBannerByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Banner")
	}

	var req models.UpdateBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != "" {
		banner.Title = req.Title
	}
	if req.ImageURL != "" {
		banner.ImageURL = req.ImageURL
	}
	if req.Link != "" {
		banner.Link = req.Link
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := h.bannerRepository.UpdateBanner(banner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"banner": banner})
}

// DeleteBanner removes a banner
func (h *BannerHandler) DeleteBanner(c echo.Context) error {
	banner, err := h.bannerRepository.GetBannerByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Banner")
	}

	if err := h.bannerRepository.DeleteBanner(banner.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Banner deleted", echo.Map{"id": banner.ID})
}
