package public

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fixrates/deploy/config"
	"fixrates/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	rates      *entities.RateResponse
	conversion *entities.ConversionResult
	currencies []entities.CurrencyInfo
	err        error

	gotCurrencies string
	gotAPIKey     string
}

func (m *mockService) Hello() string {
	return "hello there"
}

func (m *mockService) GetAllRates(_ context.Context, apiKey string) (*entities.RateResponse, error) {
	m.gotAPIKey = apiKey
	return m.rates, m.err
}

func (m *mockService) GetSpecificRates(_ context.Context, currencies, apiKey string) (*entities.RateResponse, error) {
	m.gotCurrencies = currencies
	m.gotAPIKey = apiKey
	return m.rates, m.err
}

func (m *mockService) Convert(_ context.Context, _, _, _, apiKey string) (*entities.ConversionResult, error) {
	m.gotAPIKey = apiKey
	return m.conversion, m.err
}

func (m *mockService) ListSupportedCurrencies(_ context.Context, apiKey string) ([]entities.CurrencyInfo, error) {
	m.gotAPIKey = apiKey
	return m.currencies, m.err
}

func testServer(service Service) *Server {
	cfg := &config.Config{
		Fixer: config.Fixer{
			BaseCurrency:     "EUR",
			DisplayPrecision: 2,
			PreviewLimit:     10,
		},
	}
	return NewServer(nil, cfg, service)
}

func TestServer_Healthz(t *testing.T) {
	srv := testServer(&mockService{})

	w := httptest.NewRecorder()
	srv.Healthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "hello there", body["greeting"])
}

func TestServer_GetAllRates_Preview(t *testing.T) {
	rates := map[string]float64{}
	for i := 0; i < 15; i++ {
		rates[fmt.Sprintf("C%02d", i)] = float64(i) + 0.5
	}

	service := &mockService{rates: &entities.RateResponse{Base: "EUR", Timestamp: 42, Rates: rates}}
	srv := testServer(service)

	w := httptest.NewRecorder()
	srv.GetAllRates(w, httptest.NewRequest(http.MethodGet, "/rates?api_key=test-key", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-key", service.gotAPIKey)

	var body ratesPreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "EUR", body.Base)
	assert.Equal(t, 15, body.TotalCurrencies, "truncation is display-only")
	require.Len(t, body.Preview, 10)

	for i := 1; i < len(body.Preview); i++ {
		assert.Less(t, body.Preview[i-1].Currency, body.Preview[i].Currency)
	}
}

func TestServer_GetSpecificRates(t *testing.T) {
	service := &mockService{rates: &entities.RateResponse{
		Base:  "EUR",
		Rates: map[string]float64{"USD": 1.0852},
	}}
	srv := testServer(service)

	w := httptest.NewRecorder()
	srv.GetSpecificRates(w, httptest.NewRequest(http.MethodGet, "/rates/specific?currencies=USD,GBP&api_key=test-key", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "USD,GBP", service.gotCurrencies)

	var body entities.RateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 1.0852, body.Rates["USD"], 1e-9)
}

func TestServer_Convert(t *testing.T) {
	service := &mockService{conversion: &entities.ConversionResult{
		Amount:          decimal.RequireFromString("100"),
		SourceCurrency:  "USD",
		TargetCurrency:  "EUR",
		ConvertedAmount: decimal.RequireFromString("92.15"),
		RateUsed:        decimal.RequireFromString("0.9214891264283081"),
	}}
	srv := testServer(service)

	w := httptest.NewRecorder()
	srv.Convert(w, httptest.NewRequest(http.MethodGet, "/convert?amount=100&source=USD&target=EUR&api_key=test-key", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "92.15", body["converted_amount"])
}

func TestServer_APIKeyFromHeader(t *testing.T) {
	service := &mockService{rates: &entities.RateResponse{Base: "EUR", Rates: map[string]float64{}}}
	srv := testServer(service)

	req := httptest.NewRequest(http.MethodGet, "/rates", nil)
	req.Header.Set("X-Api-Key", "header-key")

	srv.GetAllRates(httptest.NewRecorder(), req)
	assert.Equal(t, "header-key", service.gotAPIKey)
}

func TestServer_ErrorTranslation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantHint   string
	}{
		{"invalid input", fmt.Errorf("%w: amount is not numeric", entities.ErrInvalidInput), http.StatusBadRequest, "amount is not numeric"},
		{"invalid api key", fmt.Errorf("%w: invalid access key", entities.ErrInvalidAPIKey), http.StatusUnauthorized, "Check your Fixer.io API key"},
		{"plan restriction", fmt.Errorf("%w: base currency access restricted", entities.ErrPlanRestriction), http.StatusForbidden, "base currency access restricted"},
		{"invalid currency", fmt.Errorf("%w: no rate available for XAU", entities.ErrInvalidCurrency), http.StatusUnprocessableEntity, "XAU"},
		{"rate limit", fmt.Errorf("%w: quota reached", entities.ErrRateLimit), http.StatusTooManyRequests, "quota"},
		{"network", fmt.Errorf("%w: connection refused", entities.ErrNetwork), http.StatusGatewayTimeout, "try again later"},
		{"malformed response", fmt.Errorf("%w: missing base currency", entities.ErrMalformedResponse), http.StatusBadGateway, "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockService{err: tt.err}
			srv := testServer(service)

			w := httptest.NewRecorder()
			srv.Convert(w, httptest.NewRequest(http.MethodGet, "/convert?api_key=test-key", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), "Error: ")
			assert.Contains(t, w.Body.String(), tt.wantHint)
		})
	}
}

func TestServer_ListCurrencies(t *testing.T) {
	service := &mockService{currencies: []entities.CurrencyInfo{
		{Code: "EUR", Name: "Euro"},
		{Code: "USD", Name: "United States Dollar"},
	}}
	srv := testServer(service)

	w := httptest.NewRecorder()
	srv.ListCurrencies(w, httptest.NewRequest(http.MethodGet, "/currencies?api_key=test-key", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body []entities.CurrencyInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Euro", body[0].Name)
}
