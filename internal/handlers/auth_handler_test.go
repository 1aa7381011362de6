package handlers

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/DashCode47/espebackend/internal/models"
)

const registerBody = `{
	"email": "ana@espe.edu.ec",
	"password": "secret-password",
	"name": "Ana",
	"career": "Software",
	"gender": "F",
	"interests": ["futbol"]
}`

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewAuthHandler(userRepo)

	c, rec := newTestContext(http.MethodPost, "/api/auth/register", registerBody, "")
	if err := handler.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	user, err := userRepo.GetUserByEmail("ana@espe.edu.ec")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.Password == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret-password")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("expected STUDENT role, got %s", user.Role)
	}
	if !user.IsVisible {
		t.Fatal("new users should be visible")
	}

	data := decodeData(t, rec.Body.Bytes())
	if data["token"] == "" || data["token"] == nil {
		t.Fatal("expected a token in the response")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewAuthHandler(userRepo)
	userRepo.addUser(&models.User{Email: "ana@espe.edu.ec", Name: "Ana"})

	c, _ := newTestContext(http.MethodPost, "/api/auth/register", registerBody, "")
	assertHTTPError(t, handler.Register(c), http.StatusBadRequest)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	t.Parallel()
	handler := NewAuthHandler(newMockUserRepository())

	body := `{"email":"x@espe.edu.ec","password":"short","name":"X","career":"TI","gender":"M"}`
	c, _ := newTestContext(http.MethodPost, "/api/auth/register", body, "")
	assertHTTPError(t, handler.Register(c), http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	userRepo := newMockUserRepository()
	handler := NewAuthHandler(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	userRepo.addUser(&models.User{Email: "ana@espe.edu.ec", Password: string(hash), Name: "Ana"})

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"ana@espe.edu.ec","password":"secret-password"}`, "")
	if err := handler.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Wrong password and unknown email both come back as the same 401
	c2, _ := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"ana@espe.edu.ec","password":"wrong-password"}`, "")
	assertHTTPError(t, handler.Login(c2), http.StatusUnauthorized)

	c3, _ := newTestContext(http.MethodPost, "/api/auth/login",
		`{"email":"nobody@espe.edu.ec","password":"secret-password"}`, "")
	assertHTTPError(t, handler.Login(c3), http.StatusUnauthorized)
}
