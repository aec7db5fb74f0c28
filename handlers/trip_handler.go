// Package handlers wires the HTTP surface to the trip and activity models.
// Handlers bind and validate input, delegate to the models and attach any
// error to the gin context for the error middleware to render.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/models/trip"
	"github.com/wayplan/wayplan-backend/types"
)

// TripHandler handles the trip resource.
type TripHandler struct {
	tripModel *trip.TripModel
}

func NewTripHandler(tripModel *trip.TripModel) *TripHandler {
	return &TripHandler{tripModel: tripModel}
}

// ListTrips handles GET /v1/trips.
func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.tripModel.ListTrips(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// CreateTrip handles POST /v1/trips.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req types.Trip
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid trip payload", err.Error()))
		return
	}

	created, err := h.tripModel.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTrip handles GET /v1/trips/:id.
func (h *TripHandler) GetTrip(c *gin.Context) {
	result, err := h.tripModel.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateTrip handles PUT /v1/trips/:id. A changed date range triggers day
// reconciliation in the model.
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var update types.TripUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid trip payload", err.Error()))
		return
	}

	updated, err := h.tripModel.UpdateTrip(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTrip handles DELETE /v1/trips/:id. Days and activities cascade.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripModel.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDayNote handles PUT /v1/days/:id/note. A null note clears it.
func (h *TripHandler) SetDayNote(c *gin.Context) {
	var req struct {
		Note *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid note payload", err.Error()))
		return
	}

	day, err := h.tripModel.SetDayNote(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// BudgetSummary handles GET /v1/trips/:id/budget.
func (h *TripHandler) BudgetSummary(c *gin.Context) {
	summary, err := h.tripModel.BudgetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
