package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"bookworm/internal/common"
	"bookworm/internal/server/models"
	"bookworm/internal/server/services"
)

func TestRegister_Created(t *testing.T) {
	u := &fakeUserSvc{regUser: &models.User{ID: "u-1", Username: "alice"}}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (body %s)", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := body["passwordHash"]; ok {
		t.Fatal("password hash must never be serialized")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	u := &fakeUserSvc{regErr: common.ErrorValidation}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/register", "", gin.H{"username": "alice"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	u := &fakeUserSvc{regErr: common.ErrorAlreadyExists}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestLogin_ReturnsTokensAndUser(t *testing.T) {
	u := &fakeUserSvc{
		loginPair: &services.TokenPair{AccessToken: "a", RefreshToken: "r"},
		loginUser: &models.User{ID: "u-1", Username: "alice"},
	}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var body struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         models.User `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.AccessToken != "a" || body.RefreshToken != "r" || body.User.Username != "alice" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	u := &fakeUserSvc{loginErr: common.ErrorUnauthorized}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRefresh_RotatedPair(t *testing.T) {
	u := &fakeUserSvc{refreshPair: &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": "r1"})
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var body tokensResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.AccessToken != "a2" || body.RefreshToken != "r2" {
		t.Fatalf("unexpected tokens: %+v", body)
	}
}

func TestRefresh_ExpiredIsUnauthorized(t *testing.T) {
	u := &fakeUserSvc{refreshErr: common.ErrRefreshTokenExpired}
	router := newTestRouter(u, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": "stale"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRefresh_MissingTokenIsBadRequest(t *testing.T) {
	router := newTestRouter(&fakeUserSvc{}, &fakeBookSvc{})

	w := doJSONRequest(router, http.MethodPost, "/api/auth/refresh", "", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}
