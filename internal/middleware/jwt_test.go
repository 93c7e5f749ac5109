package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DENNYYESSAR/alx-polly/internal/auth"
)

func setupRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(jwtService), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/open", OptionalJWT(jwtService), func(c *gin.Context) {
		if _, ok := c.Get(ContextUserID); ok {
			c.String(http.StatusOK, "authenticated")
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	r := setupRouter(auth.NewJWTService("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, _ := svc.Generate(uuid.New(), "user@example.com")
	r := setupRouter(svc)

	for _, header := range []string{"Basic " + token, token, "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestJWTAcceptsValidToken(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOptionalJWTContinuesAnonymously(t *testing.T) {
	r := setupRouter(auth.NewJWTService("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "anonymous" {
		t.Errorf("expected anonymous request, got %q", w.Body.String())
	}
}

func TestOptionalJWTSetsIdentityWhenPresent(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, _ := svc.Generate(uuid.New(), "user@example.com")
	r := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Body.String() != "authenticated" {
		t.Errorf("expected authenticated request, got %q", w.Body.String())
	}
}

func TestOptionalJWTIgnoresInvalidToken(t *testing.T) {
	r := setupRouter(auth.NewJWTService("secret", 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "anonymous" {
		t.Errorf("expected invalid token to be treated as anonymous, got %q", w.Body.String())
	}
}
