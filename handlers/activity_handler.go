package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/models/activity"
	"github.com/wayplan/wayplan-backend/types"
)

// ActivityHandler handles the activity resource.
type ActivityHandler struct {
	activityModel *activity.ActivityModel
}

func NewActivityHandler(activityModel *activity.ActivityModel) *ActivityHandler {
	return &ActivityHandler{activityModel: activityModel}
}

// CreateActivity handles POST /v1/activities. A start time may redirect the
// activity to the day matching its date.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req types.Activity
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid activity payload", err.Error()))
		return
	}

	created, err := h.activityModel.CreateActivity(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateActivity handles PUT /v1/activities/:id.
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	var update types.ActivityUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid activity payload", err.Error()))
		return
	}

	updated, err := h.activityModel.UpdateActivity(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteActivity handles DELETE /v1/activities/:id.
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	if err := h.activityModel.DeleteActivity(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
