package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdnaneAD1/secure/internal/models"
)

func TestSignupThenLogin(t *testing.T) {
	conn := setupHandlerDB(t)
	h := NewAuthHandler(conn)

	r := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"New@Test.FR","password":"secret123","nom":"Durand","prenom":"Sophie"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.signup(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatalf("signup: no session cookie set")
	}

	// l'email est stocké normalisé
	var user models.User
	if err := conn.First(&user, "email = ?", "new@test.fr").Error; err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatalf("password stored in clear")
	}

	r = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"new@test.fr","password":"secret123"}`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	h.login(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	conn := setupHandlerDB(t)
	client, _, _, _, _ := seedPortalFixtures(t, conn)
	h := NewAuthHandler(conn)

	r := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"`+client.Email+`","password":"whatever"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.signup(w, r)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	conn := setupHandlerDB(t)
	h := NewAuthHandler(conn)

	r := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"a@b.fr","password":"correct"}`))
	r.Header.Set("Content-Type", "application/json")
	h.signup(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"a@b.fr","password":"wrong"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.login(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestLoginFormBody(t *testing.T) {
	conn := setupHandlerDB(t)
	h := NewAuthHandler(conn)

	r := httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"form@test.fr","password":"secret123"}`))
	r.Header.Set("Content-Type", "application/json")
	h.signup(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader("email=form@test.fr&password=secret123"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.login(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}
