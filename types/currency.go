package types

import "github.com/shopspring/decimal"

// RateTable maps currency codes to rates relative to a base currency.
// The semantics follow the upstream rate API: an amount in currency X divided
// by rates[X] yields the amount in the base currency.
type RateTable map[string]decimal.Decimal

// PlaceSuggestion is one ranked result from the place-suggestion lookup.
type PlaceSuggestion struct {
	DisplayName string  `json:"displayName"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PlaceID     string  `json:"placeId"`
}
