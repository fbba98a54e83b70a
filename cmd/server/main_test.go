package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rz-parfum-be/internal/config"
	"rz-parfum-be/internal/localstore"
	"rz-parfum-be/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		JWTSecret:             "secret",
		WhatsAppNumber:        "+212641973545",
		DeliveryFee:           15,
		FreeDeliveryThreshold: 300,
		CORSOrigin:            "http://localhost:3000",
		SessionTTL:            time.Hour,
	}
}

func TestNewApp(t *testing.T) {
	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer database.Close()

	a := newApp(testConfig(), database, localstore.NewMemory())
	defer a.hub.Close()

	t.Run("Health", func(t *testing.T) {
		mock.ExpectPing()
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Catalogue", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/1", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var d product.Detail
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &d))
		assert.Equal(t, "R&Z Noir Intense", d.Product.Name)
	})

	t.Run("Metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "rz_http_requests_total")
	})

	t.Run("AdminGuarded", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("GraphQL", func(t *testing.T) {
		body := strings.NewReader(`{"query":"{ product(id: \"1\") { product { name } } }"}`)
		req := httptest.NewRequest(http.MethodPost, "/query", body)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.JSONEq(t, `{"data":{"product":{"product":{"name":"R&Z Noir Intense"}}}}`, rr.Body.String())
	})

	t.Run("Preflight", func(t *testing.T) {
		rr := httptest.NewRecorder()
		a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/cart", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
