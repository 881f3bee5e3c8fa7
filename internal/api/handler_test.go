package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"investment-ledger-go/internal/ledger"
	"investment-ledger-go/internal/models"
	"investment-ledger-go/internal/store"
)

// setupTestServer serves a handler on a fresh JSON ledger.
func setupTestServer(t *testing.T) *httptest.Server {
	s := store.NewJSONStore(filepath.Join(t.TempDir(), "investments.json"))
	handler := NewAPIHandler(zap.NewNop(), ledger.NewService(s, zap.NewNop()))
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, body string) *http.Response {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const appleBuy = `{"date":"2024-01-02","company_name":"Apple","asset":"AAPL","action":"Buy","quantity":"10","price_per_share":"100","currency":"USD","broker":"Freedom"}`

func TestAPI_Lifecycle(t *testing.T) {
	server := setupTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/api/transactions", appleBuy)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Transaction](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1000.0, created.TotalCost)

	// numbers are accepted as well as strings
	resp = do(t, http.MethodPost, server.URL+"/api/transactions",
		`{"asset":"AAPL","action":"Sell","quantity":4,"price_per_share":100,"broker":"Halyk"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, server.URL+"/api/transactions",
		`{"asset":"TSLA","action":"Buy","quantity":"3","price_per_share":"200","broker":"Halyk"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/api/statistics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[StatisticsResponse](t, resp)
	assert.Equal(t, StatisticsResponse{NetTotal: 1200, AssetCount: 2, TransactionCount: 3}, stats)

	resp = do(t, http.MethodGet, server.URL+"/api/allocation", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	allocation := decode[[]AllocationEntry](t, resp)
	assert.Equal(t, []AllocationEntry{
		{Asset: "AAPL", Total: 600, Percentage: 50},
		{Asset: "TSLA", Total: 600, Percentage: 50},
	}, allocation)

	resp = do(t, http.MethodGet, server.URL+"/api/filters", "")
	filters := decode[FiltersResponse](t, resp)
	assert.Equal(t, []string{"AAPL", "TSLA"}, filters.Assets)
	assert.Equal(t, []string{"Freedom", "Halyk"}, filters.Brokers)

	resp = do(t, http.MethodGet, server.URL+"/api/transactions?asset=AAPL&broker=Halyk", "")
	filtered := decode[[]models.Transaction](t, resp)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.Sell, filtered[0].Action)

	resp = do(t, http.MethodPut, server.URL+"/api/transactions/"+created.ID,
		`{"asset":"MSFT","action":"Buy","quantity":"2","price_per_share":"50.5"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Transaction](t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 101.0, updated.TotalCost)

	resp = do(t, http.MethodGet, server.URL+"/api/transactions/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, updated, decode[models.Transaction](t, resp))

	resp = do(t, http.MethodDelete, server.URL+"/api/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, server.URL+"/api/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/api/transactions/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Errors(t *testing.T) {
	server := setupTestServer(t)

	t.Run("ValidationIsBadRequest", func(t *testing.T) {
		resp := do(t, http.MethodPost, server.URL+"/api/transactions",
			`{"asset":"AAPL","action":"Buy","quantity":"1.5","price_per_share":"1"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[ErrorResponse](t, resp)
		assert.Contains(t, body.Error, "quantity")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp := do(t, http.MethodPost, server.URL+"/api/transactions", `{"asset":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UpdateUnknownIsNotFound", func(t *testing.T) {
		resp := do(t, http.MethodPut, server.URL+"/api/transactions/nope", appleBuy)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("EmptyListIsArray", func(t *testing.T) {
		resp := do(t, http.MethodGet, server.URL+"/api/transactions?asset=NONE", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []models.Transaction{}, decode[[]models.Transaction](t, resp))
	})

	t.Run("Health", func(t *testing.T) {
		resp := do(t, http.MethodGet, server.URL+"/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

// MockLedgerService is a mock implementation of LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Create(d models.Draft) (models.Transaction, error) {
	args := m.Called(d)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedgerService) Update(id string, d models.Draft) (models.Transaction, error) {
	args := m.Called(id, d)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedgerService) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockLedgerService) List() ([]models.Transaction, error) {
	args := m.Called()
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerService) Get(id string) (models.Transaction, error) {
	args := m.Called(id)
	return args.Get(0).(models.Transaction), args.Error(1)
}

func (m *MockLedgerService) Query(c ledger.Criteria) ([]models.Transaction, error) {
	args := m.Called(c)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockLedgerService) Summary() (ledger.Summary, error) {
	args := m.Called()
	return args.Get(0).(ledger.Summary), args.Error(1)
}

func TestAPI_StorageFailureIsInternalError(t *testing.T) {
	svc := new(MockLedgerService)
	svc.On("Delete", "a").Return(errors.New("disk full"))
	svc.On("Query", ledger.Criteria{Asset: "AAPL"}).Return([]models.Transaction(nil), errors.New("disk gone"))

	server := httptest.NewServer(NewAPIHandler(zap.NewNop(), svc).Routes())
	defer server.Close()

	resp := do(t, http.MethodDelete, server.URL+"/api/transactions/a", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Equal(t, "internal error", body.Error)

	resp = do(t, http.MethodGet, server.URL+"/api/transactions?asset=AAPL", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	svc.AssertExpectations(t)
}

func TestRateLimit(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0.001), 2)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := RateLimit(limiter, ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
