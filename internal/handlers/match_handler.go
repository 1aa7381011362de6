package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/notify"
	"github.com/DashCode47/espebackend/internal/observability"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// MatchHandler handles likes and mutual connections
type MatchHandler struct {
	matchRepository repositories.MatchRepository
	userRepository  repositories.UserRepository
	notifier        *notify.Notifier
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(matchRepo repositories.MatchRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *MatchHandler {
	return &MatchHandler{
		matchRepository: matchRepo,
		userRepository:  userRepo,
		notifier:        notifier,
	}
}

// RegisterMatchRoutes registers match routes on the protected group
func (h *MatchHandler) RegisterMatchRoutes(g *echo.Group) {
	g.POST("/matches/like/:userId", h.LikeUser)
	g.GET("/matches/matches", h.GetMatches)
	g.GET("/matches/check/:userId", h.CheckMatch)
}

// LikeUser records a like and creates a connection when it is reciprocal.
// Likes are append-only: liking the same user again records another row.
func (h *MatchHandler) LikeUser(c echo.Context) error {
	userID := getUserID(c)
	targetID := c.Param("userId")

	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot like yourself")
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	interaction := &models.UserInteraction{
		User1ID: userID,
		User2ID: targetID,
		Type:    models.InteractionLike,
	}
	if err := h.matchRepository.CreateInteraction(interaction); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reciprocal, err := h.matchRepository.HasLike(targetID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liker, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	if !reciprocal {
		_ = h.notifier.Notify(c.Request().Context(), targetID,
			fmt.Sprintf("%s liked your profile", liker.Name))
		return respondSuccess(c, http.StatusOK, echo.Map{
			"isMutualMatch": false,
			"match":         nil,
		})
	}

	connection, err := h.matchRepository.GetConnectionBetween(userID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if connection == nil {
		connection = &models.Connection{User1ID: userID, User2ID: targetID}
		if err := h.matchRepository.CreateConnection(connection); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		observability.MutualMatchesTotal.Inc()
	}

	_ = h.notifier.Notify(c.Request().Context(), targetID,
		fmt.Sprintf("You matched with %s!", liker.Name))
	_ = h.notifier.Notify(c.Request().Context(), userID,
		fmt.Sprintf("You matched with %s!", target.Name))

	return respondSuccess(c, http.StatusOK, echo.Map{
		"isMutualMatch": true,
		"match": models.MatchSummary{
			MatchID:   connection.ID,
			MatchedAt: connection.CreatedAt,
			User:      target.ToCompact(),
		},
	})
}

// GetMatches lists the caller's connections, newest first
func (h *MatchHandler) GetMatches(c echo.Context) error {
	userID := getUserID(c)

	connections, err := h.matchRepository.ListConnectionsByUser(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	matches := make([]models.MatchSummary, 0, len(connections))
	for _, connection := range connections {
		otherID := connection.User1ID
		if otherID == userID {
			otherID = connection.User2ID
		}
		other, err := h.userRepository.GetUserByID(otherID)
		if err != nil {
			continue
		}
		matches = append(matches, models.MatchSummary{
			MatchID:   connection.ID,
			MatchedAt: connection.CreatedAt,
			User:      other.ToCompact(),
		})
	}

	return respondSuccess(c, http.StatusOK, matches)
}

// CheckMatch reports whether the caller is connected with the given user
func (h *MatchHandler) CheckMatch(c echo.Context) error {
	userID := getUserID(c)
	targetID := c.Param("userId")

	connection, err := h.matchRepository.GetConnectionBetween(userID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if connection == nil {
		return respondSuccess(c, http.StatusOK, echo.Map{"isMatch": false, "match": nil})
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		return notFoundOr(err, "User")
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"isMatch": true,
		"match": models.MatchSummary{
			MatchID:   connection.ID,
			MatchedAt: connection.CreatedAt,
			User:      target.ToCompact(),
		},
	})
}
