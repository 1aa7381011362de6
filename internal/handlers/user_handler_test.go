package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/DashCode47/espebackend/internal/models"
)

func TestSetVisibility(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewUserHandler(userRepo)
	userRepo.addUser(&models.User{ID: "user-1", Name: "Ana", IsVisible: true})

	c, rec := newTestContext(http.MethodPut, "/api/users/visibility", `{"isVisible":false}`, "user-1")
	if err := handler.SetVisibility(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	user, _ := userRepo.GetUserByID("user-1")
	if user.IsVisible {
		t.Fatal("user should now be hidden")
	}

	// Missing boolean is rejected
	c2, _ := newTestContext(http.MethodPut, "/api/users/visibility", `{}`, "user-1")
	assertHTTPError(t, handler.SetVisibility(c2), http.StatusBadRequest)
}

func TestGetAllInterests_Deduplicates(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewUserHandler(userRepo)
	userRepo.addUser(&models.User{ID: "u1", Interests: []string{"futbol", "musica"}, IsVisible: true})
	userRepo.addUser(&models.User{ID: "u2", Interests: []string{"musica", "cine"}, IsVisible: true})

	c, rec := newTestContext(http.MethodGet, "/api/users/interests", "", "u1")
	if err := handler.GetAllInterests(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	sort.Strings(envelope.Data)
	want := []string{"cine", "futbol", "musica"}
	if len(envelope.Data) != len(want) {
		t.Fatalf("expected %v, got %v", want, envelope.Data)
	}
	for i, interest := range want {
		if envelope.Data[i] != interest {
			t.Fatalf("expected %v, got %v", want, envelope.Data)
		}
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewUserHandler(userRepo)
	userRepo.addUser(&models.User{ID: "user-1", Name: "Ana", Career: "Software", Bio: "hola", IsVisible: true})

	c, _ := newTestContext(http.MethodPut, "/api/users/profile", `{"bio":"nueva bio"}`, "user-1")
	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, _ := userRepo.GetUserByID("user-1")
	if user.Bio != "nueva bio" {
		t.Fatalf("bio not updated, got %q", user.Bio)
	}
	if user.Name != "Ana" || user.Career != "Software" {
		t.Fatal("untouched fields should keep their values")
	}
}

func TestGetPotentialConnections_ExcludesSelf(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewUserHandler(userRepo)
	userRepo.addUser(&models.User{ID: "user-1", Name: "Ana", IsVisible: true})
	userRepo.addUser(&models.User{ID: "user-2", Name: "Bruno", IsVisible: true})
	userRepo.addUser(&models.User{ID: "user-3", Name: "Clara", IsVisible: false})

	c, rec := newTestContext(http.MethodGet, "/api/users/potential-connections", "", "user-1")
	if err := handler.GetPotentialConnections(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var envelope struct {
		Data []models.UserCompact `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(envelope.Data))
	}
	if envelope.Data[0].ID != "user-2" {
		t.Fatalf("expected user-2, got %s", envelope.Data[0].ID)
	}
}
