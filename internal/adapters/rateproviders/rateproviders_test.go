package rateproviders_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pennywise/fxcore_app/internal/adapters/rateproviders"
	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateAPIProvider_FetchLatest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/USD", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"EUR": 0.9231, "JPY": 150.4}
		}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeRateAPIProvider(server.URL, "test-key", 1, 5*time.Second)
	quotes, err := provider.FetchLatest(context.Background(), "USD")

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.True(t, decimal.RequireFromString("0.9231").Equal(quotes["EUR"]))
	assert.True(t, decimal.RequireFromString("150.4").Equal(quotes["JPY"]))
}

func TestExchangeRateAPIProvider_FetchLatest_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "invalid-key"}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeRateAPIProvider(server.URL, "bad-key", 1, 5*time.Second)
	_, err := provider.FetchLatest(context.Background(), "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.ErrorContains(t, err, "invalid-key")
}

func TestExchangeRateAPIProvider_FetchLatest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeRateAPIProvider(server.URL, "", 1, 5*time.Second)
	_, err := provider.FetchLatest(context.Background(), "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.ErrorContains(t, err, "502")
}

func TestExchangeRateAPIProvider_FetchLatest_MalformedRateFailsWholeFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"result": "success",
			"conversion_rates": {"EUR": 0.92, "JPY": "not-a-number"}
		}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeRateAPIProvider(server.URL, "", 1, 5*time.Second)
	_, err := provider.FetchLatest(context.Background(), "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
}

func TestExchangeHostProvider_FetchLatest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		_, _ = w.Write([]byte(`{"success": true, "base": "USD", "rates": {"EUR": 0.92}}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeHostProvider(server.URL, 2, 5*time.Second)
	quotes, err := provider.FetchLatest(context.Background(), "USD")

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.True(t, decimal.RequireFromString("0.92").Equal(quotes["EUR"]))
}

func TestExchangeHostProvider_FetchLatest_ReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeHostProvider(server.URL, 2, 5*time.Second)
	_, err := provider.FetchLatest(context.Background(), "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
}

func TestExchangeHostProvider_FetchLatest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true, "rates": {}}`))
	}))
	defer server.Close()

	provider := rateproviders.NewExchangeHostProvider(server.URL, 2, 20*time.Millisecond)
	_, err := provider.FetchLatest(context.Background(), "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
}
