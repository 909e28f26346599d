package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestService(t *testing.T) *Service {
	svc, err := NewService("test-secret", "reviewer@example.com", "password123")
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	return svc
}

func TestCheckCredentials(t *testing.T) {
	svc := newTestService(t)

	if !svc.CheckCredentials("reviewer@example.com", "password123") {
		t.Error("Expected valid credentials to pass")
	}
	if svc.CheckCredentials("reviewer@example.com", "wrong") {
		t.Error("Expected wrong password to fail")
	}
	if svc.CheckCredentials("other@example.com", "password123") {
		t.Error("Expected unknown email to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("reviewer@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Email != "reviewer@example.com" {
		t.Errorf("Expected email in claims, got %s", claims.Email)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, _ := NewService("other-secret", "reviewer@example.com", "password123")

	token, _ := other.GenerateToken("reviewer@example.com")
	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func setupTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handler := NewHandler(svc)
	handler.RegisterRoutes(r.Group("/api/auth"))

	protected := r.Group("/api", svc.Middleware())
	protected.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(ContextKeyEmail)})
	})
	return r
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	router := setupTestRouter(svc)

	body, _ := json.Marshal(LoginRequest{Email: "reviewer@example.com", Password: "password123"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var authResp AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &authResp)
	if authResp.Token == "" {
		t.Error("Expected a token in the response")
	}

	// the issued token passes the middleware
	req, _ = http.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200 with issued token, got %d", resp.Code)
	}
}

func TestLoginBadPassword(t *testing.T) {
	svc := newTestService(t)
	router := setupTestRouter(svc)

	body, _ := json.Marshal(LoginRequest{Email: "reviewer@example.com", Password: "wrong"})
	req, _ := http.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	svc := newTestService(t)
	router := setupTestRouter(svc)

	req, _ := http.NewRequest("GET", "/api/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t)
	router := setupTestRouter(svc)

	req, _ := http.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}
