package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wayplan/wayplan-backend/services"
)

// PlaceHandler exposes place suggestions.
type PlaceHandler struct {
	places *services.PlaceService
}

func NewPlaceHandler(places *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{places: places}
}

// Suggest handles GET /v1/places/suggest?q=. Short queries and upstream
// failures both yield an empty list.
func (h *PlaceHandler) Suggest(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": h.places.Suggest(c.Request.Context(), query),
	})
}
