// Package services holds clients for external collaborators: the currency
// rate API and the place-suggestion API. Both degrade gracefully when the
// upstream is unreachable.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

// rateCacheTTL is the freshness window for a fetched rate table, on both the
// in-process and the Redis tier.
const rateCacheTTL = time.Hour

// fallbackRates is the static offline table, anchored to EUR = 1. It is
// re-based to the requested base currency when the live service fails.
var fallbackRates = map[string]decimal.Decimal{
	"EUR": decimal.RequireFromString("1"),
	"USD": decimal.RequireFromString("1.08"),
	"GBP": decimal.RequireFromString("0.86"),
	"JPY": decimal.RequireFromString("161.5"),
	"LKR": decimal.RequireFromString("325.0"),
	"THB": decimal.RequireFromString("39.5"),
	"LAK": decimal.RequireFromString("23500.0"),
	"PHP": decimal.RequireFromString("60.5"),
}

type cacheEntry struct {
	Rates     types.RateTable `json:"rates"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// CurrencyService fetches and caches currency rate tables and converts
// amounts between currencies. Rate semantics: an amount in currency X
// divided by rates[X] yields the amount in the base currency.
type CurrencyService struct {
	client  *http.Client
	baseURL string
	redis   *redis.Client // optional persisted cache tier
	now     func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry // keyed by base currency
}

// NewCurrencyService creates a currency service. redisClient may be nil, in
// which case only the in-process cache tier is used. now is the clock used
// for cache expiry; pass time.Now outside of tests.
func NewCurrencyService(baseURL string, redisClient *redis.Client, now func() time.Time) *CurrencyService {
	if now == nil {
		now = time.Now
	}
	return &CurrencyService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		redis:   redisClient,
		now:     now,
		cache:   make(map[string]cacheEntry),
	}
}

// Rates returns the rate table for the given base currency. A fresh cached
// table short-circuits the network call; on fetch failure the static
// fallback table is re-based and returned. Rates never fails: degradation is
// silent by design.
func (s *CurrencyService) Rates(ctx context.Context, base string) types.RateTable {
	log := logger.GetLogger()

	if rates, ok := s.fromMemory(base); ok {
		return rates
	}
	if rates, ok := s.fromRedis(ctx, base); ok {
		return rates
	}

	rates, err := s.fetch(ctx, base)
	if err != nil {
		log.Warnw("Rate fetch failed, using fallback table", "base", base, "error", err)
		return fallbackTable(base)
	}

	s.storeCache(ctx, base, rates)
	return rates
}

// Convert converts amount from one currency to another using rates based on
// the target currency. Identity when the codes match or the amount is zero;
// an unknown source code returns the amount unconverted (documented degraded
// behavior, not an error).
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to || amount.IsZero() {
		return amount
	}
	rates := s.Rates(ctx, to)
	rate, ok := rates[from]
	if !ok || rate.IsZero() {
		return amount
	}
	return amount.Div(rate)
}

// TotalInCurrency sums the activities' costs in the target currency using a
// single rate fetch. Only positive costs contribute; a cost whose currency
// is missing from the table is added unconverted.
func (s *CurrencyService) TotalInCurrency(ctx context.Context, activities []*types.Activity, target string) (decimal.Decimal, error) {
	rates := s.Rates(ctx, target)

	total := decimal.Zero
	for _, act := range activities {
		if act.Cost == nil || !act.Cost.IsPositive() {
			continue
		}
		code := target
		if act.CostCurrency != nil {
			code = *act.CostCurrency
		}
		if code == target {
			total = total.Add(*act.Cost)
			continue
		}
		rate, ok := rates[code]
		if !ok || rate.IsZero() {
			total = total.Add(*act.Cost)
			continue
		}
		total = total.Add(act.Cost.Div(rate))
	}
	return total, nil
}

func (s *CurrencyService) fromMemory(base string) (types.RateTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[base]
	if !ok || s.now().Sub(entry.FetchedAt) >= rateCacheTTL {
		return nil, false
	}
	return entry.Rates, true
}

func (s *CurrencyService) fromRedis(ctx context.Context, base string) (types.RateTable, bool) {
	if s.redis == nil {
		return nil, false
	}
	log := logger.GetLogger()

	raw, err := s.redis.Get(ctx, rateCacheKey(base)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warnw("Rate cache read failed", "base", base, "error", err)
		}
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Warnw("Rate cache entry corrupt", "base", base, "error", err)
		return nil, false
	}
	if s.now().Sub(entry.FetchedAt) >= rateCacheTTL {
		return nil, false
	}

	// Mirror into the fast tier.
	s.mu.Lock()
	s.cache[base] = entry
	s.mu.Unlock()
	return entry.Rates, true
}

func (s *CurrencyService) storeCache(ctx context.Context, base string, rates types.RateTable) {
	entry := cacheEntry{Rates: rates, FetchedAt: s.now()}

	s.mu.Lock()
	s.cache[base] = entry
	s.mu.Unlock()

	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, rateCacheKey(base), payload, rateCacheTTL).Err(); err != nil {
		logger.GetLogger().Warnw("Rate cache write failed", "base", base, "error", err)
	}
}

func (s *CurrencyService) fetch(ctx context.Context, base string) (types.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", s.baseURL, base), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status: %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate API returned no rates for %s", base)
	}

	rates := make(types.RateTable, len(body.Rates))
	for code, rate := range body.Rates {
		rates[code] = decimal.NewFromFloat(rate)
	}
	return rates, nil
}

// fallbackTable re-bases the static EUR-anchored table by dividing every
// entry by the fallback rate of the requested base. An unknown base keeps
// the EUR anchoring.
func fallbackTable(base string) types.RateTable {
	anchor, ok := fallbackRates[base]
	if !ok || anchor.IsZero() {
		anchor = decimal.NewFromInt(1)
	}

	table := make(types.RateTable, len(fallbackRates))
	for code, rate := range fallbackRates {
		table[code] = rate.Div(anchor)
	}
	return table
}

func rateCacheKey(base string) string {
	return "currency:rates:" + base
}
