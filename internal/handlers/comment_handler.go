package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/notify"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// CommentHandler handles comments on posts
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	notifier          *notify.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment routes on the protected group
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment)
}

// commentView is a comment enriched with its author
type commentView struct {
	models.Comment
	Author *models.UserCompact `json:"author"`
}

// GetComments lists a post's comments, newest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Post")
	}

	page, limit := pagination(c, 10)
	comments, total, err := h.commentRepository.ListCommentsByPost(post.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]commentView, len(comments))
	for i, comment := range comments {
		views[i] = commentView{Comment: comment}
		if author, err := h.userRepository.GetUserByID(comment.AuthorID); err == nil {
			compact := author.ToCompact()
			views[i].Author = &compact
		}
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"comments":   views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// CreateComment adds a comment to a post and notifies the author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := getUserID(c)

	post, err := h.postRepository.GetPostByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Post")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.AuthorID != userID {
		message := "Someone commented on your post"
		if post.Type != models.PostTypeConfession {
			if author, err := h.userRepository.GetUserByID(userID); err == nil {
				message = fmt.Sprintf("%s commented on your post", author.Name)
			}
		}
		_ = h.notifier.Notify(c.Request().Context(), post.AuthorID, message)
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"comment": comment})
}
