package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type stubJWTConfig struct{ secret string }

func (s stubJWTConfig) GetJWTAccessSecret() string { return s.secret }

func signToken(t *testing.T, secret, tokenType string, sub string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"type": tokenType,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authTestRouter(cfg stubJWTConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/secure", AuthRequired(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	engine := authTestRouter(stubJWTConfig{secret: "test-secret"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequiredAcceptsValidAccessToken(t *testing.T) {
	cfg := stubJWTConfig{secret: "test-secret"}
	engine := authTestRouter(cfg)

	token := signToken(t, cfg.secret, "access", uuid.NewString())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRequiredRejectsWrongTokenType(t *testing.T) {
	cfg := stubJWTConfig{secret: "test-secret"}
	engine := authTestRouter(cfg)

	token := signToken(t, cfg.secret, "refresh", uuid.NewString())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRequiredRejectsWrongSecret(t *testing.T) {
	engine := authTestRouter(stubJWTConfig{secret: "test-secret"})

	token := signToken(t, "other-secret", "access", uuid.NewString())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
