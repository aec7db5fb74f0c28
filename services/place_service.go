package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

// minQueryLength is the shortest query worth sending upstream.
const minQueryLength = 2

// PlaceService looks up ranked place suggestions for a free-text query.
// Upstream failures degrade to an empty list, never an error.
type PlaceService struct {
	client  *http.Client
	baseURL string
}

// NewPlaceService creates a place-suggestion client against a
// Nominatim-compatible endpoint.
func NewPlaceService(baseURL string) *PlaceService {
	return &PlaceService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
	}
}

// Suggest returns up to five ranked suggestions for the query. Queries
// shorter than two characters return an empty list without a network call.
func (s *PlaceService) Suggest(ctx context.Context, query string) []types.PlaceSuggestion {
	log := logger.GetLogger()

	if len(query) < minQueryLength {
		return []types.PlaceSuggestion{}
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("limit", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode()), nil)
	if err != nil {
		log.Warnw("Failed to create place lookup request", "query", query, "error", err)
		return []types.PlaceSuggestion{}
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "WayplanBackend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warnw("Place lookup failed", "query", query, "error", err)
		return []types.PlaceSuggestion{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnw("Place lookup returned non-OK status", "query", query, "status", resp.StatusCode)
		return []types.PlaceSuggestion{}
	}

	var body []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		PlaceID     int64  `json:"place_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warnw("Failed to decode place lookup response", "query", query, "error", err)
		return []types.PlaceSuggestion{}
	}

	suggestions := make([]types.PlaceSuggestion, 0, len(body))
	for _, item := range body {
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lon, lonErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		suggestions = append(suggestions, types.PlaceSuggestion{
			DisplayName: item.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			PlaceID:     strconv.FormatInt(item.PlaceID, 10),
		})
	}
	return suggestions
}
