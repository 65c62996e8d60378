package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storemanager/store-api/internal/core/service"
	"github.com/storemanager/store-api/internal/infrastructure/db/memory"
	"github.com/storemanager/store-api/internal/infrastructure/queue"
)

type testServer struct {
	t *testing.T
	h http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := zerolog.Nop()
	products := memory.NewProductRepository()
	serializer := queue.NewSerializer(4, log)
	serializer.Start(ctx)
	tokens := service.NewTokenService("test-secret", 0, 0, memory.NewRevocationStore(), log)

	e, err := NewRouter(Deps{
		Auth:     service.NewAuthService(memory.NewUserRepository(), tokens, log),
		Tokens:   tokens,
		Products: service.NewProductService(products, log),
		Sales:    service.NewSaleService(memory.NewSaleRepository(), products, serializer, log),
		Logger:   log,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testServer{t: t, h: e}
}

func (s *testServer) do(method, path, token, body string) (int, map[string]any) {
	s.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var resp map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			s.t.Fatalf("%s %s: invalid json %q", method, path, rec.Body.String())
		}
	}
	return rec.Code, resp
}

func (s *testServer) login(email string, isAdmin bool) string {
	s.t.Helper()
	admin := "false"
	if isAdmin {
		admin = "true"
	}
	code, _ := s.do(http.MethodPost, "/api/v1/auth/signup", "", `{"email":"`+email+`","is_admin":`+admin+`,"password":"password1"}`)
	if code != http.StatusCreated {
		s.t.Fatalf("signup %s: %d", email, code)
	}
	code, resp := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"`+email+`","password":"password1"}`)
	if code != http.StatusOK {
		s.t.Fatalf("login %s: %d", email, code)
	}
	return resp["access_token"].(string)
}

func TestRouter_InventoryFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@example.com", true)
	attendant := s.login("attendant@example.com", false)

	code, resp := s.do(http.MethodGet, "/api/v1/products", attendant, "")
	if code != http.StatusOK || resp["message"] != "No product record(s) available" {
		t.Fatalf("empty list: %d %v", code, resp)
	}

	code, _ = s.do(http.MethodPost, "/api/v1/products", attendant, `{"product_name":"Pen","category":"Stationery","quantity":10,"unit_price":2.5}`)
	if code != http.StatusForbidden {
		t.Fatalf("attendant create: expected 403, got %d", code)
	}
	code, resp = s.do(http.MethodPost, "/api/v1/products", admin, `{"product_name":"Pen","category":"Stationery","quantity":10,"unit_price":2.5}`)
	if code != http.StatusCreated {
		t.Fatalf("admin create: %d %v", code, resp)
	}

	code, _ = s.do(http.MethodPost, "/api/v1/sales", admin, `{"product_id":1,"quantity":3}`)
	if code != http.StatusForbidden {
		t.Fatalf("admin sale: expected 403, got %d", code)
	}
	code, resp = s.do(http.MethodPost, "/api/v1/sales", attendant, `{"product_id":1,"quantity":3}`)
	if code != http.StatusCreated || resp["total"] != 7.5 {
		t.Fatalf("sale: %d %v", code, resp)
	}
	code, resp = s.do(http.MethodPost, "/api/v1/sales", attendant, `{"product_id":1,"quantity":100}`)
	if code != http.StatusOK || resp["message"] != "Insufficient stock" || resp["available"] != float64(7) {
		t.Fatalf("insufficient stock: %d %v", code, resp)
	}
	code, resp = s.do(http.MethodPost, "/api/v1/sales", attendant, `{"product_id":42,"quantity":1}`)
	if code != http.StatusBadRequest || resp["field"] != "product_id" {
		t.Fatalf("unknown product: %d %v", code, resp)
	}

	code, resp = s.do(http.MethodGet, "/api/v1/products/1", attendant, "")
	if code != http.StatusOK || resp["quantity"] != float64(7) {
		t.Fatalf("get product: %d %v", code, resp)
	}
	code, _ = s.do(http.MethodGet, "/api/v1/products/9", attendant, "")
	if code != http.StatusNotFound {
		t.Fatalf("missing product: expected 404, got %d", code)
	}

	code, _ = s.do(http.MethodPut, "/api/v1/products/1", attendant, `{"product_name":"Pen","category":"Stationery","quantity":1,"unit_price":1}`)
	if code != http.StatusForbidden {
		t.Fatalf("attendant update: expected 403, got %d", code)
	}
	code, _ = s.do(http.MethodPut, "/api/v1/products/1", admin, `{"product_name":"Pen","quantity":1,"unit_price":1}`)
	if code != http.StatusBadRequest {
		t.Fatalf("partial update: expected 400, got %d", code)
	}

	code, resp = s.do(http.MethodGet, "/api/v1/sales", admin, "")
	if code != http.StatusOK || len(resp["sales"].([]any)) != 1 {
		t.Fatalf("list sales: %d %v", code, resp)
	}
	code, resp = s.do(http.MethodGet, "/api/v1/sales/1", attendant, "")
	if code != http.StatusOK || resp["message"] != "Success" {
		t.Fatalf("get sale: %d %v", code, resp)
	}

	code, _ = s.do(http.MethodDelete, "/api/v1/products/1", admin, "")
	if code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	code, _ = s.do(http.MethodGet, "/api/v1/sales/1", attendant, "")
	if code != http.StatusOK {
		t.Fatalf("sale should survive product deletion, got %d", code)
	}
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login("bob@example.com", false)

	code, _ := s.do(http.MethodPost, "/api/v1/auth/logout", token, "")
	if code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	code, _ = s.do(http.MethodGet, "/api/v1/products", token, "")
	if code != http.StatusUnauthorized {
		t.Fatalf("revoked token: expected 401, got %d", code)
	}
}

func TestRouter_LogoutEndsRefreshSession(t *testing.T) {
	s := newTestServer(t)
	s.login("carl@example.com", false)
	code, resp := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"carl@example.com","password":"password1"}`)
	if code != http.StatusOK {
		t.Fatalf("login: %d", code)
	}
	access := resp["access_token"].(string)
	refresh := resp["refresh_token"].(string)

	code, resp = s.do(http.MethodPost, "/api/v1/auth/refresh", refresh, "")
	if code != http.StatusOK || resp["access_token"] == "" {
		t.Fatalf("refresh before logout: %d %v", code, resp)
	}
	refreshed := resp["access_token"].(string)

	if code, _ := s.do(http.MethodPost, "/api/v1/auth/logout", access, ""); code != http.StatusOK {
		t.Fatalf("logout: %d", code)
	}
	if code, _ := s.do(http.MethodPost, "/api/v1/auth/refresh", refresh, ""); code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout: expected 401, got %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/api/v1/products", refreshed, ""); code != http.StatusUnauthorized {
		t.Fatalf("access token minted before logout: expected 401, got %d", code)
	}
}

func TestRouter_UnauthenticatedAndWrongCredentials(t *testing.T) {
	s := newTestServer(t)
	s.login("carol@example.com", true)

	if code, _ := s.do(http.MethodGet, "/api/v1/products", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", code)
	}
	code, resp := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"carol@example.com","password":"nope-nope"}`)
	if code != http.StatusUnauthorized || resp["message"] != "wrong credentials" {
		t.Fatalf("wrong credentials: %d %v", code, resp)
	}
	code, resp = s.do(http.MethodPost, "/api/v1/auth/signup", "", `{"email":"carol@example.com","is_admin":false,"password":"password1"}`)
	if code != http.StatusBadRequest || resp["field"] != "email" {
		t.Fatalf("duplicate signup: %d %v", code, resp)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(http.MethodGet, "/health", "", ""); code != http.StatusOK {
		t.Fatalf("health: %d", code)
	}
	if code, _ := s.do(http.MethodGet, "/health/ready", "", ""); code != http.StatusOK {
		t.Fatalf("ready: %d", code)
	}

	s.do(http.MethodGet, "/api/v1/products", "", "")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "store_http_requests_total") {
		t.Fatalf("http metrics missing from exposition")
	}
}
