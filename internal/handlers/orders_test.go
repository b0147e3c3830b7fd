package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yoobe-br/cubbo-order-support/internal/api"
	"github.com/yoobe-br/cubbo-order-support/internal/config"
	"github.com/yoobe-br/cubbo-order-support/internal/normalize"
	"github.com/yoobe-br/cubbo-order-support/internal/service"
)

// cubboStub simula a API da Cubbo por trás de um cliente real.
func cubboStub(t *testing.T, ordersBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ordersBody))
	})
	mux.HandleFunc("/carrier-services/pickup-locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":[{"service_name":"Loja Paulista","description":"Av. Paulista, 1000"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testRouter(t *testing.T, ordersBody string) http.Handler {
	t.Helper()
	stub := cubboStub(t, ordersBody)

	client := api.NewCubboClient(config.CubboConfig{
		BaseURL:      stub.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
	}, zap.NewNop())

	svc := service.NewOrderService(client, normalize.New(zap.NewNop(), ""), "42", zap.NewNop())
	handler := NewOrderHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(RequestTrace(zap.NewNop()))
	r.Group(handler.Routes)
	return r
}

func TestTrackOrderEndpoint(t *testing.T) {
	router := testRouter(t, `{"orders":[{
		"id": 1,
		"order_number": "R100",
		"status": "shipped",
		"created_at": "2024-03-01T10:00:00Z",
		"order_lines": [{"sku":"A1","quantity":2,"product":{"name":"Camiseta","price":"49.95"}}]
	}]}`)

	body := strings.NewReader(`{"query":"#R100","session_id":"sess-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/track", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("esperava X-Request-ID na resposta")
	}

	var resp struct {
		Status string `json:"status"`
		Order  *struct {
			OrderNumber string `json:"order_number"`
			Items       []struct {
				Name  string   `json:"name"`
				Total *float64 `json:"total"`
			} `json:"items"`
		} `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.Status != service.StatusFound {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Order == nil || resp.Order.OrderNumber != "R100" {
		t.Fatalf("order = %+v", resp.Order)
	}
	if len(resp.Order.Items) != 1 || resp.Order.Items[0].Total == nil || *resp.Order.Items[0].Total != 99.9 {
		t.Fatalf("items = %+v", resp.Order.Items)
	}
}

func TestTrackOrderEndpointInvalidJSON(t *testing.T) {
	router := testRouter(t, `{"orders":[]}`)

	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(`{nope`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestTrackOrderEndpointNotFound(t *testing.T) {
	router := testRouter(t, `{"orders":[]}`)

	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(`{"query":"R404"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != service.StatusNotFound {
		t.Fatalf("status = %q", resp.Status)
	}
}

func TestListOrdersEndpoint(t *testing.T) {
	router := testRouter(t, `{"orders":[
		{"id":1,"order_number":"R1","created_at":"2024-01-01T00:00:00Z","shipping_email":"c@e.com"},
		{"id":2,"order_number":"R2","created_at":"2024-02-01T00:00:00Z","shipping_email":"c@e.com"}
	]}`)

	req := httptest.NewRequest(http.MethodGet, "/orders?email=c%40e.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count  int `json:"count"`
		Orders []struct {
			OrderNumber string `json:"order_number"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d", resp.Count)
	}
	if resp.Orders[0].OrderNumber != "R2" {
		t.Errorf("primeiro pedido = %q, esperava o mais recente", resp.Orders[0].OrderNumber)
	}
}

func TestListOrdersEndpointByPhone(t *testing.T) {
	router := testRouter(t, `{"orders":[
		{"id":1,"order_number":"R7","created_at":"2024-01-01T00:00:00Z"}
	]}`)

	req := httptest.NewRequest(http.MethodGet, "/orders?phone=%2B55+11+98888-7777", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("count = %d", resp.Count)
	}
}

func TestListOrdersEndpointRequiresFilter(t *testing.T) {
	router := testRouter(t, `{"orders":[]}`)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestPickupLocationsEndpoint(t *testing.T) {
	router := testRouter(t, `{"orders":[]}`)

	req := httptest.NewRequest(http.MethodGet, "/pickup-locations?postal_code=01310-100", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count int `json:"count"`
		Locs  []struct {
			ServiceName string `json:"service_name"`
		} `json:"pickup_locations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if resp.Count != 1 || resp.Locs[0].ServiceName != "Loja Paulista" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t, `{"orders":[]}`)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
