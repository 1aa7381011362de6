package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/DashCode47/espebackend/internal/notify"
	"github.com/DashCode47/espebackend/internal/repositories"
)

// PostHandler handles campus feed posts and reactions
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	notifier       *notify.Notifier
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, notifier *notify.Notifier) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		notifier:       notifier,
	}
}

// RegisterPostRoutes registers post routes on the protected group
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.POST("/posts/:id/react", h.ReactToPost)
}

// postView is a post enriched with author and reaction counts
type postView struct {
	models.Post
	Author       *models.UserCompact `json:"author"`
	Likes        int                 `json:"likes"`
	Dislikes     int                 `json:"dislikes"`
	UserReaction *bool               `json:"userReaction"`
}

func (h *PostHandler) buildPostView(post models.Post, viewerID string) postView {
	view := postView{Post: post}

	// Confessions stay anonymous
	if post.Type != models.PostTypeConfession {
		if author, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
			compact := author.ToCompact()
			view.Author = &compact
		}
	}

	reactions, err := h.postRepository.ListReactions(post.ID)
	if err != nil {
		return view
	}
	for _, reaction := range reactions {
		if reaction.IsLike {
			view.Likes++
		} else {
			view.Dislikes++
		}
		if reaction.UserID == viewerID {
			isLike := reaction.IsLike
			view.UserReaction = &isLike
		}
	}
	return view
}

// GetPosts lists posts, newest first, optionally filtered by type
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, limit := pagination(c, 10)

	postType := c.QueryParam("type")
	if postType != "" && !models.ValidPostType(postType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post type")
	}

	posts, total, err := h.postRepository.ListPosts(postType, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewerID := getUserID(c)
	views := make([]postView, len(posts))
	for i, post := range posts {
		views[i] = h.buildPostView(post, viewerID)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"posts":      views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// GetPost returns a single post with its reaction counts
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Post")
	}
	return respondSuccess(c, http.StatusOK, h.buildPostView(*post, getUserID(c)))
}

// CreatePost publishes a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidPostType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post type")
	}
	if req.Title == "" && (req.Type == models.PostTypeMarketplace || req.Type == models.PostTypeLostAndFound) {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required for this post type")
	}

	post := &models.Post{
		AuthorID: userID,
		Type:     req.Type,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusCreated, echo.Map{"post": post})
}

// UpdatePost edits a post the caller authored
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID := getUserID(c)

	post, err := h.postRepository.GetPostByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Post")
	}
	if post.AuthorID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can update this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.ImageURL != "" {
		post.ImageURL = req.ImageURL
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"post": post})
}

// ReactToPost upserts the caller's like or dislike on a post.
// The author is notified only when a like appears where none was before.
func (h *PostHandler) ReactToPost(c echo.Context) error {
	userID := getUserID(c)

	post, err := h.postRepository.GetPostByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Post")
	}

	var req models.ReactToPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.IsLike == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isLike must be a boolean")
	}

	existing, err := h.postRepository.GetReaction(post.ID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	becameLike := false
	var reaction *models.PostReaction
	if existing == nil {
		reaction = &models.PostReaction{
			PostID: post.ID,
			UserID: userID,
			IsLike: *req.IsLike,
		}
		if err := h.postRepository.CreateReaction(reaction); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		becameLike = *req.IsLike
	} else {
		becameLike = *req.IsLike && !existing.IsLike
		existing.IsLike = *req.IsLike
		if err := h.postRepository.UpdateReaction(existing); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		reaction = existing
	}

	if becameLike && post.AuthorID != userID {
		message := "Someone liked your post"
		if post.Type != models.PostTypeConfession {
			if liker, err := h.userRepository.GetUserByID(userID); err == nil {
				message = fmt.Sprintf("%s liked your post", liker.Name)
			}
		}
		_ = h.notifier.Notify(c.Request().Context(), post.AuthorID, message)
	}

	return respondSuccess(c, http.StatusOK, echo.Map{"reaction": reaction})
}
