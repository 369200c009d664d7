package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/counter-billing/internal/application/service"
	"github.com/sangkips/counter-billing/internal/config"
	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/infrastructure/catalog"
	"github.com/sangkips/counter-billing/internal/infrastructure/repository"
	"github.com/sangkips/counter-billing/internal/infrastructure/salelog"
	"github.com/sangkips/counter-billing/internal/presentation/http/handler"
	"github.com/sangkips/counter-billing/internal/presentation/http/middleware"
	"github.com/sangkips/counter-billing/pkg/logger"
	"github.com/sangkips/counter-billing/pkg/printer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Kind    string                 `json:"kind"`
	Data    map[string]interface{} `json:"data"`
	Errors  map[string]interface{} `json:"errors"`
	Meta    map[string]interface{} `json:"meta"`
}

type testServer struct {
	router      *gin.Engine
	salesLog    string
	spool       string
	rateLimiter *middleware.ClientRateLimiter
}

func newTestServer(t *testing.T, limiter *middleware.ClientRateLimiter) *testServer {
	t.Helper()
	dir := t.TempDir()
	cfg := config.FromViper(viper.New())
	cfg.SalesLog.Path = filepath.Join(dir, "sales_log.txt")
	cfg.Printer.Type = printer.TypeFile
	cfg.Printer.FilePath = filepath.Join(dir, "receipts.spool")

	store := repository.NewCatalogStore()
	_, err := service.LoadCatalog(context.Background(), store, catalog.NewStaticSource("seed", []entity.RawCatalogRecord{
		{Name: "Paracetamol", Quantity: "100", Price: "2.50"},
		{Name: "Paracip", Quantity: "10", Price: "4"},
		{Name: "X", Quantity: "5", Price: "1.00"},
	}), logger.Nop())
	require.NoError(t, err)

	p, err := printer.NewPrinterFromConfig(printer.Config{Type: cfg.Printer.Type, FilePath: cfg.Printer.FilePath})
	require.NoError(t, err)

	formatter := service.NewReceiptFormatter(entity.ReceiptHeader{StoreName: cfg.Store.Name})
	printerService := service.NewPrinterService(p, cfg.Printer.Type, formatter, logger.Nop())
	finalizer := service.NewSaleFinalizer(salelog.NewFileSaleLog(cfg.SalesLog.Path, cfg.Counter.CurrencySymbol), 1, logger.Nop())
	counter := service.NewCounterService(store, finalizer, formatter, printerService, service.CounterOptions{
		StoreName:    cfg.Store.Name,
		CounterLabel: cfg.Counter.Label,
	}, logger.Nop())

	router := Setup(&Handlers{
		Catalog: handler.NewCatalogHandler(counter),
		Counter: handler.NewCounterHandler(counter),
		Printer: handler.NewPrinterHandler(printerService),
	}, &Deps{Cfg: cfg, Logger: logger.Nop(), RateLimiter: limiter})

	return &testServer{
		router:      router,
		salesLog:    cfg.SalesLog.Path,
		spool:       cfg.Printer.FilePath,
		rateLimiter: limiter,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec, _ := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCatalogSearch_Paginated(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/catalog/products?q=PARA&per_page=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	items := env.Data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Paracetamol", items[0].(map[string]interface{})["name"])
	assert.Equal(t, "2.50", items[0].(map[string]interface{})["unit_price"])
	pagination := env.Data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total"])
	assert.Equal(t, true, pagination["has_next"])
	assert.NotEmpty(t, env.Meta["request_id"])
}

func TestCart_AddLineAndFinalize(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodPost, "/api/v1/cart/lines", gin.H{"name": "Paracetamol", "quantity": 10})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	line := env.Data["line"].(map[string]interface{})
	assert.Equal(t, "25.00", line["amount"])

	rec, _ = s.do(t, http.MethodPost, "/api/v1/cart/lines", gin.H{"name": "Paracetamol", "quantity": 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPNA CHEMIST - Bill #1 - Billing System", env.Data["title"])

	rec, env = s.do(t, http.MethodPost, "/api/v1/cart/finalize", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := env.Data["sale"].(map[string]interface{})
	assert.Equal(t, "37.50", sale["total"])
	assert.Equal(t, float64(1), sale["bill_number"])
	assert.Equal(t, float64(2), env.Data["cart"].(map[string]interface{})["bill_number"])

	data, err := os.ReadFile(s.salesLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Bill #1 | Total: ₹37.50 | Items: 1\n")

	rec, env = s.do(t, http.MethodPost, "/api/v1/cart/finalize", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "empty_cart", env.Kind)
	assert.Equal(t, "No items in bill", env.Message)
}

func TestCart_AddLineErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		kind   string
	}{
		{"unknown product", gin.H{"name": "Unknown", "quantity": 1}, http.StatusNotFound, "product_not_found"},
		{"zero quantity", gin.H{"name": "X", "quantity": 0}, http.StatusUnprocessableEntity, "invalid_quantity"},
		{"insufficient stock", gin.H{"name": "X", "quantity": 10}, http.StatusConflict, "insufficient_stock"},
		{"missing name", gin.H{"quantity": 1}, http.StatusBadRequest, "bad_request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil)

			rec, env := s.do(t, http.MethodPost, "/api/v1/cart/lines", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.kind, env.Kind)
		})
	}
}

func TestCart_InsufficientStockDetails(t *testing.T) {
	s := newTestServer(t, nil)

	_, env := s.do(t, http.MethodPost, "/api/v1/cart/lines", gin.H{"name": "X", "quantity": 10})

	assert.Equal(t, "Insufficient stock. Available: 5", env.Message)
	assert.Equal(t, float64(5), env.Errors["available"])
}

func TestCart_DiscountPreviewAndClear(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/cart/preview", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "empty_cart", env.Kind)

	s.do(t, http.MethodPost, "/api/v1/cart/lines", gin.H{"name": "X", "quantity": 4})

	rec, env = s.do(t, http.MethodPut, "/api/v1/cart/discount", gin.H{"amount": "1.50"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	totals := env.Data["cart"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "2.50", totals["total"])

	rec, env = s.do(t, http.MethodPut, "/api/v1/cart/discount", gin.H{"amount": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_discount", env.Kind)

	rec, env = s.do(t, http.MethodGet, "/api/v1/cart/preview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, env.Data["text"], "Discount:")

	rec, env = s.do(t, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.Data["cart"].(map[string]interface{})["lines"])
}

func TestCart_Print(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/api/v1/cart/lines", gin.H{"name": "Paracip", "quantity": 2})

	rec, env := s.do(t, http.MethodPost, "/api/v1/cart/print", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, env.Data["printed"])
	assert.Nil(t, env.Data["sale"])

	spool, err := os.ReadFile(s.spool)
	require.NoError(t, err)
	assert.Contains(t, string(spool), " 1 Paracip")
}

func TestPrinter_StatusAndTest(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/api/v1/printer/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "file", env.Data["type"])
	assert.Equal(t, true, env.Data["connected"])

	rec, env = s.do(t, http.MethodPost, "/api/v1/printer/test", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, env.Data["text"], "Test Item 1")
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := middleware.NewClientRateLimiter(ctx, middleware.RateLimiterConfigFor(2, time.Minute))
	s := newTestServer(t, limiter)

	for i := 0; i < 2; i++ {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/cart", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too_many_requests", env.Kind)

	rec, _ = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, limiter.Stats()["active_clients"])
}
