package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceService_Suggest_ShortQuerySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := NewPlaceService(srv.URL)

	assert.Empty(t, s.Suggest(context.Background(), ""))
	assert.Empty(t, s.Suggest(context.Background(), "p"))
	assert.False(t, called)
}

func TestPlaceService_Suggest_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "kyoto", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"place_id": 42, "display_name": "Kyoto, Japan", "lat": "35.0116", "lon": "135.7681"},
			{"place_id": 43, "display_name": "Broken coords", "lat": "nope", "lon": "135.0"}
		]`))
	}))
	defer srv.Close()

	s := NewPlaceService(srv.URL)

	got := s.Suggest(context.Background(), "kyoto")
	// The row with unparsable coordinates is skipped.
	assert.Len(t, got, 1)
	assert.Equal(t, "Kyoto, Japan", got[0].DisplayName)
	assert.Equal(t, "42", got[0].PlaceID)
	assert.InDelta(t, 35.0116, got[0].Latitude, 0.0001)
	assert.InDelta(t, 135.7681, got[0].Longitude, 0.0001)
}

func TestPlaceService_Suggest_DegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewPlaceService(srv.URL)
	assert.Empty(t, s.Suggest(context.Background(), "kyoto"))

	unreachable := NewPlaceService("http://unreachable.invalid")
	assert.Empty(t, unreachable.Suggest(context.Background(), "kyoto"))
}
