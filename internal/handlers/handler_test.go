package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/SentryPrime1/sentryprime-backend-clean/internal/auth"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/config"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/models"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/repository"
	"github.com/SentryPrime1/sentryprime-backend-clean/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *repository.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Website{}, &models.Scan{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		JWTSecret: "test-secret-12345678901234567890123456789012",
	}

	store := repository.NewStore(db)
	tokens := auth.NewTokenService(cfg.JWTSecret)
	audit := services.NewAuditService(db, logger)
	scanner := services.NewScannerService()
	enricher := services.NewEnricherService("", nil, logger)
	aggregator := services.NewAggregatorService(db, store, logger)

	h := NewHandler(cfg, logger, store, tokens, scanner, enricher, aggregator, audit)
	return h, store
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter()
}

func performJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerUser registers a fresh user through the API and returns the
// session token.
func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := performJSON(r, "POST", "/api/auth/register", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "password123",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("register returned no token: %s", w.Body.String())
	}
	return token
}
