package handlers

import (
	"net/http"
	"testing"

	"github.com/DashCode47/espebackend/internal/models"
)

func postFixtures() (*PostHandler, *mockPostRepository, *mockUserRepository, *mockNotificationRepository) {
	postRepo := newMockPostRepository()
	userRepo := newMockUserRepository()
	notificationRepo := newMockNotificationRepository()
	handler := NewPostHandler(postRepo, userRepo, newTestNotifier(notificationRepo))

	userRepo.addUser(&models.User{ID: "author-1", Name: "Ana", IsVisible: true})
	userRepo.addUser(&models.User{ID: "reader-1", Name: "Rita", IsVisible: true})

	return handler, postRepo, userRepo, notificationRepo
}

func TestCreatePost_TitleRequiredForMarketplace(t *testing.T) {
	t.Parallel()
	handler, _, _, _ := postFixtures()

	body := `{"type":"MARKETPLACE","content":"Vendo bici"}`
	c, _ := newTestContext(http.MethodPost, "/api/posts", body, "author-1")
	assertHTTPError(t, handler.CreatePost(c), http.StatusBadRequest)

	// Confessions do not need a title
	body = `{"type":"CONFESSION","content":"anonimo"}`
	c2, rec := newTestContext(http.MethodPost, "/api/posts", body, "author-1")
	if err := handler.CreatePost(c2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCreatePost_RejectsUnknownType(t *testing.T) {
	t.Parallel()
	handler, _, _, _ := postFixtures()

	c, _ := newTestContext(http.MethodPost, "/api/posts", `{"type":"MEME","content":"x"}`, "author-1")
	assertHTTPError(t, handler.CreatePost(c), http.StatusBadRequest)
}

func TestReactToPost_UpsertAndNotify(t *testing.T) {
	t.Parallel()
	handler, postRepo, _, notificationRepo := postFixtures()

	post := &models.Post{AuthorID: "author-1", Type: models.PostTypeMarketplace, Title: "Bici", Content: "Vendo bici"}
	_ = postRepo.CreatePost(post)

	react := func(isLike string) {
		t.Helper()
		c, _ := newTestContext(http.MethodPost, "/api/posts/"+post.ID+"/react", `{"isLike":`+isLike+`}`, "reader-1")
		c.SetParamNames("id")
		c.SetParamValues(post.ID)
		if err := handler.ReactToPost(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// New like notifies the author
	react("true")
	if notificationRepo.countFor("author-1") != 1 {
		t.Fatalf("expected 1 notification, got %d", notificationRepo.countFor("author-1"))
	}

	// Repeating the like is an update, no second notification
	react("true")
	if notificationRepo.countFor("author-1") != 1 {
		t.Fatalf("repeat like should not notify again, got %d", notificationRepo.countFor("author-1"))
	}

	// Flip to dislike, still one reaction row
	react("false")
	reactions, _ := postRepo.ListReactions(post.ID)
	if len(reactions) != 1 {
		t.Fatalf("expected a single reaction row, got %d", len(reactions))
	}
	if reactions[0].IsLike {
		t.Fatal("reaction should now be a dislike")
	}

	// dislike -> like notifies again
	react("true")
	if notificationRepo.countFor("author-1") != 2 {
		t.Fatalf("dislike to like should notify, got %d", notificationRepo.countFor("author-1"))
	}
}

func TestReactToPost_AuthorNotNotifiedOfOwnLike(t *testing.T) {
	t.Parallel()
	handler, postRepo, _, notificationRepo := postFixtures()

	post := &models.Post{AuthorID: "author-1", Type: models.PostTypeLostAndFound, Title: "Carnet", Content: "perdido"}
	_ = postRepo.CreatePost(post)

	c, _ := newTestContext(http.MethodPost, "/api/posts/"+post.ID+"/react", `{"isLike":true}`, "author-1")
	c.SetParamNames("id")
	c.SetParamValues(post.ID)
	if err := handler.ReactToPost(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notificationRepo.countFor("author-1") != 0 {
		t.Fatal("author should not be notified of their own like")
	}
}

func TestGetPost_ConfessionHidesAuthor(t *testing.T) {
	t.Parallel()
	handler, postRepo, _, _ := postFixtures()

	post := &models.Post{AuthorID: "author-1", Type: models.PostTypeConfession, Content: "secreto"}
	_ = postRepo.CreatePost(post)

	c, rec := newTestContext(http.MethodGet, "/api/posts/"+post.ID, "", "reader-1")
	c.SetParamNames("id")
	c.SetParamValues(post.ID)
	if err := handler.GetPost(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data := decodeData(t, rec.Body.Bytes())
	if data["author"] != nil {
		t.Fatalf("confession should not expose its author, got %v", data["author"])
	}
}
