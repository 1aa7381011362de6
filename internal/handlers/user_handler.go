package handlers

import (
	"net/http"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile and discovery requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/profile", h.GetProfile)
	g.PUT("/users/profile", h.UpdateProfile)
	g.GET("/users", h.GetAllUsers)
	g.GET("/users/visible", h.GetVisibleUsers)
	g.GET("/users/interests", h.GetAllInterests)
	g.GET("/users/potential-connections", h.GetPotentialConnections)
	g.PUT("/users/visibility", h.SetVisibility)
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"user": user})
}

// UpdateProfile updates the authenticated user's profile fields
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Career != "" {
		user.Career = req.Career
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"user": user})
}

// GetAllUsers lists every registered user
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userRepository.ListUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"users": users})
}

// GetVisibleUsers lists users who opted into discovery
func (h *UserHandler) GetVisibleUsers(c echo.Context) error {
	users, err := h.userRepository.ListVisibleUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return respondSuccess(c, http.StatusOK, compact)
}

// GetAllInterests returns the distinct interests across all users,
// used for the filter chips in the discovery screen
func (h *UserHandler) GetAllInterests(c echo.Context) error {
	users, err := h.userRepository.ListUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	seen := make(map[string]bool)
	interests := []string{}
	for _, u := range users {
		for _, interest := range u.Interests {
			if !seen[interest] {
				seen[interest] = true
				interests = append(interests, interest)
			}
		}
	}

	return respondSuccess(c, http.StatusOK, interests)
}

// GetPotentialConnections lists users the caller could match with
func (h *UserHandler) GetPotentialConnections(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	filter := repositories.DiscoverFilter{
		Faculty: c.QueryParam("faculty"),
		Search:  c.QueryParam("search"),
	}
	if interests, ok := c.QueryParams()["interest"]; ok {
		filter.Interests = interests
	}

	users, err := h.userRepository.DiscoverUsers(userID, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}
	return respondSuccess(c, http.StatusOK, compact)
}

// SetVisibility toggles whether the caller appears in discovery
func (h *UserHandler) SetVisibility(c echo.Context) error {
	userID := getUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SetVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.IsVisible == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isVisible must be a boolean")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	user.IsVisible = *req.IsVisible
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"id":        user.ID,
		"isVisible": user.IsVisible,
	})
}
