package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

func init() {
	logger.IsTest = true
}

// fakeRateServer serves a fixed EUR-based rate response and counts hits.
func fakeRateServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base": "EUR",
			"rates": map[string]float64{
				"EUR": 1, "USD": 1.08, "GBP": 0.86,
			},
		})
	}))
}

func decEq(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

func TestCurrencyService_Convert_Identity(t *testing.T) {
	s := NewCurrencyService("http://unreachable.invalid", nil, nil)

	amount := decimal.NewFromInt(100)
	decEq(t, "100", s.Convert(context.Background(), amount, "USD", "USD"))
	decEq(t, "0", s.Convert(context.Background(), decimal.Zero, "USD", "EUR"))
}

func TestCurrencyService_Convert_FallbackRates(t *testing.T) {
	// No server reachable: the static fallback table applies.
	s := NewCurrencyService("http://unreachable.invalid", nil, nil)

	got := s.Convert(context.Background(), decimal.NewFromInt(100), "USD", "EUR")
	expected := decimal.NewFromInt(100).Div(decimal.RequireFromString("1.08"))
	assert.True(t, got.Sub(expected).Abs().LessThan(decimal.RequireFromString("0.0001")),
		"expected ~%s, got %s", expected, got)
}

func TestCurrencyService_Convert_UnknownSourceUnchanged(t *testing.T) {
	s := NewCurrencyService("http://unreachable.invalid", nil, nil)

	decEq(t, "100", s.Convert(context.Background(), decimal.NewFromInt(100), "XXX", "EUR"))
}

func TestCurrencyService_Rates_FallbackRebase(t *testing.T) {
	s := NewCurrencyService("http://unreachable.invalid", nil, nil)

	rates := s.Rates(context.Background(), "USD")
	// Re-based to USD: EUR entry is 1/1.08, USD entry is 1.
	decEq(t, "1", rates["USD"])
	expectedEUR := decimal.NewFromInt(1).Div(decimal.RequireFromString("1.08"))
	assert.True(t, rates["EUR"].Sub(expectedEUR).Abs().LessThan(decimal.RequireFromString("0.0001")))
}

func TestCurrencyService_Rates_CachesForAnHour(t *testing.T) {
	var hits int32
	srv := fakeRateServer(t, &hits)
	defer srv.Close()

	clock := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	s := NewCurrencyService(srv.URL, nil, func() time.Time { return clock })

	first := s.Rates(context.Background(), "EUR")
	second := s.Rates(context.Background(), "EUR")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	decEq(t, "1.08", first["USD"])
	decEq(t, "1.08", second["USD"])

	// Advance past the TTL: the next call refetches.
	clock = clock.Add(rateCacheTTL + time.Minute)
	s.Rates(context.Background(), "EUR")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCurrencyService_Rates_RedisTier(t *testing.T) {
	var hits int32
	srv := fakeRateServer(t, &hits)
	defer srv.Close()

	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	entry := cacheEntry{
		Rates:     types.RateTable{"EUR": decimal.NewFromInt(1), "USD": decimal.RequireFromString("1.10")},
		FetchedAt: now.Add(-10 * time.Minute),
	}
	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	client, mock := redismock.NewClientMock()
	mock.ExpectGet("currency:rates:EUR").SetVal(string(payload))

	s := NewCurrencyService(srv.URL, client, func() time.Time { return now })

	rates := s.Rates(context.Background(), "EUR")
	decEq(t, "1.10", rates["USD"])
	// The persisted tier short-circuited the network call.
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrencyService_TotalInCurrency(t *testing.T) {
	var hits int32
	srv := fakeRateServer(t, &hits)
	defer srv.Close()

	s := NewCurrencyService(srv.URL, nil, nil)

	usd := "USD"
	unknown := "XXX"
	cost := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}
	negative := decimal.NewFromInt(-5)

	activities := []*types.Activity{
		{Title: "In target currency", Cost: cost("100")},
		{Title: "USD cost", Cost: cost("108"), CostCurrency: &usd},
		{Title: "Unknown currency added unconverted", Cost: cost("10"), CostCurrency: &unknown},
		{Title: "No cost"},
		{Title: "Negative ignored", Cost: &negative},
	}

	total, err := s.TotalInCurrency(context.Background(), activities, "EUR")
	require.NoError(t, err)
	// 100 + 108/1.08 + 10 = 210
	decEq(t, "210", total)
	// One rate fetch for the whole sum.
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
