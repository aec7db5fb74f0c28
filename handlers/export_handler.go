package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/internal/export"
	"github.com/wayplan/wayplan-backend/models/trip"
)

// ExportHandler renders trips as downloadable artifacts and external URLs.
type ExportHandler struct {
	tripModel *trip.TripModel
}

func NewExportHandler(tripModel *trip.TripModel) *ExportHandler {
	return &ExportHandler{tripModel: tripModel}
}

// ExportTrip handles GET /v1/trips/:id/export?format=. The artifact is
// served as an attachment named after the trip title.
func (h *ExportHandler) ExportTrip(c *gin.Context) {
	format, ok := export.Lookup(c.Query("format"))
	if !ok {
		_ = c.Error(apperrors.ValidationFailed("unknown export format",
			"supported formats: "+strings.Join(export.FormatNames(), ", ")))
		return
	}

	result, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	data, err := format.Render(result)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(result, format.Extension)))
	c.Data(http.StatusOK, format.ContentType, data)
}

// MapRouteLink handles GET /v1/trips/:id/links/map.
func (h *ExportHandler) MapRouteLink(c *gin.Context) {
	result, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	routeURL, err := export.MapsRouteURL(result)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": routeURL})
}

// CalendarLink handles GET /v1/trips/:id/links/gcal.
func (h *ExportHandler) CalendarLink(c *gin.Context) {
	result, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": export.GoogleCalendarURL(result)})
}
