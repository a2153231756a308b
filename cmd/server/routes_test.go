package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coin-custody.backend/internal/interfaces/http/handlers"
)

func newRouteDeps() routeDeps {
	return routeDeps{
		depositHandler: &handlers.DepositOrderHandler{},
		walletHandler:  &handlers.WalletHandler{},
		webhookHandler: &handlers.WebhookHandler{},
		networkHandler: &handlers.NetworkHandler{},
		authMiddleware: func(c *gin.Context) { c.Next() },
	}
}

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, newRouteDeps())

	routes := r.Routes()
	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/deposit-orders"},
		{"GET", "/api/v1/deposit-orders"},
		{"GET", "/api/v1/deposit-orders/:id"},
		{"GET", "/api/v1/deposit-orders/:id/status"},
		{"GET", "/api/v1/wallet"},
		{"GET", "/api/v1/wallet/transactions"},
		{"GET", "/api/v1/networks"},
		{"POST", "/api/v1/webhooks/chain"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	db, err := gorm.Open(sqlite.Open("file:routes_health?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("std db: %v", err)
	}
	registerHealthRoute(r, sqlDB)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r)
	registerAPIV1Routes(r, newRouteDeps())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/networks", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
