package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	absenceReasonsKey     = "absence_reasons"
	absenceReasonNotFound = "Absence reason not found"
)

// ListAbsenceReasons godoc
// @Summary	List absence reasons
// @Tags		absence_reasons
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.AbsenceReason}
// @Router		/absence_reasons [get]
func (h *Handler) ListAbsenceReasons(c *gin.Context) {
	reasons := []models.AbsenceReason{}
	h.cachedList(c, absenceReasonsKey, &reasons)
}

// ShowAbsenceReason godoc
// @Summary	Show an absence reason
// @Tags		absence_reasons
// @Produce	json
// @Param		id	path		int	true	"Absence reason ID"
// @Success	200	{object}	response.DataResponse{data=models.AbsenceReason}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/absence_reasons/{id} [get]
func (h *Handler) ShowAbsenceReason(c *gin.Context) {
	var reason models.AbsenceReason
	if !h.find(c, &reason, "id", absenceReasonNotFound) {
		return
	}
	response.Data(c, http.StatusOK, reason)
}

// StoreAbsenceReason godoc
// @Summary	Create an absence reason
// @Tags		absence_reasons
// @Accept		json
// @Produce	json
// @Param		request	body		requests.AbsenceReasonRequest	true	"Absence reason"
// @Success	201		{object}	response.DataResponse{data=models.AbsenceReason}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/absence_reasons [post]
func (h *Handler) StoreAbsenceReason(c *gin.Context) {
	var req requests.AbsenceReasonRequest
	if !h.bind(c, &req, 0) {
		return
	}
	reason := models.AbsenceReason{Name: req.Name}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&reason).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, absenceReasonsKey)
	response.Data(c, http.StatusCreated, reason)
}

// UpdateAbsenceReason godoc
// @Summary	Rename an absence reason
// @Tags		absence_reasons
// @Accept		json
// @Produce	json
// @Param		id		path		int								true	"Absence reason ID"
// @Param		request	body		requests.AbsenceReasonRequest	true	"Absence reason"
// @Success	200		{object}	response.DataResponse{data=models.AbsenceReason}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/absence_reasons/{id} [put]
func (h *Handler) UpdateAbsenceReason(c *gin.Context) {
	var reason models.AbsenceReason
	if !h.find(c, &reason, "id", absenceReasonNotFound) {
		return
	}
	var req requests.AbsenceReasonRequest
	if !h.bind(c, &req, reason.ID) {
		return
	}
	reason.Name = req.Name
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&reason).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, absenceReasonsKey)
	response.Data(c, http.StatusOK, reason)
}

// DestroyAbsenceReason godoc
// @Summary	Delete an absence reason
// @Tags		absence_reasons
// @Param		id	path	int	true	"Absence reason ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/absence_reasons/{id} [delete]
func (h *Handler) DestroyAbsenceReason(c *gin.Context) {
	var reason models.AbsenceReason
	if !h.find(c, &reason, "id", absenceReasonNotFound) {
		return
	}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&reason).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, absenceReasonsKey)
	response.NoContent(c)
}
