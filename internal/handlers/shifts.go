package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
	"shiftdesk/internal/shifts"
)

const shiftNotFound = "Shift not found"

// ShiftTransferResponse is the body of a successful transfer.
type ShiftTransferResponse struct {
	Data      models.Shift `json:"data"`
	Successor models.Shift `json:"successor"`
}

// shiftError answers a shifts.Service error.
func (h *Handler) shiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shifts.ErrNotFound):
		response.NotFound(c, shiftNotFound)
	case errors.Is(err, shifts.ErrInvalidTransition):
		response.Validation(c, map[string][]string{
			"state": {"The shift cannot be changed from its current state."},
		})
	case errors.Is(err, shifts.ErrAttendantDisabled):
		response.Validation(c, map[string][]string{
			"attendant_id": {"The selected attendant is disabled."},
		})
	case errors.Is(err, shifts.ErrNoModuleAccess):
		response.Validation(c, map[string][]string{
			"module_id": {"The attendant has no access to the selected module."},
		})
	default:
		response.Internal(c, "DB_ERROR", err)
	}
}

// ListShifts godoc
// @Summary		List shifts
// @Description	Ordered by client type priority (highest first), then arrival.
// @Tags			shifts
// @Produce		json
// @Param			state					query		string	false	"Shift state"
// @Param			room_id					query		int		false	"Room"
// @Param			attention_profile_id	query		int		false	"Attention profile"
// @Success		200						{object}	response.DataResponse{data=[]models.Shift}
// @Failure		422						{object}	response.ValidationErrorResponse
// @Router			/shifts [get]
func (h *Handler) ListShifts(c *gin.Context) {
	var filter requests.ShiftFilter
	if errs := requests.BindQuery(c, &filter); !errs.Empty() {
		response.Validation(c, errs)
		return
	}
	list, err := h.shifts.List(c.Request.Context(), shifts.Filter{
		State:              models.ShiftState(filter.State),
		RoomID:             filter.RoomID,
		AttentionProfileID: filter.AttentionProfileID,
	})
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusOK, list)
}

// ShowShift godoc
// @Summary	Show a shift
// @Tags		shifts
// @Produce	json
// @Param		id	path		int	true	"Shift ID"
// @Success	200	{object}	response.DataResponse{data=models.Shift}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/shifts/{id} [get]
func (h *Handler) ShowShift(c *gin.Context) {
	id, ok := parseID(c, "id", shiftNotFound)
	if !ok {
		return
	}
	shift, err := h.shifts.Get(c.Request.Context(), id)
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusOK, shift)
}

// StoreShift godoc
// @Summary	Queue a client
// @Tags		shifts
// @Accept		json
// @Produce	json
// @Param		request	body		requests.CreateShiftRequest	true	"Shift"
// @Success	201		{object}	response.DataResponse{data=models.Shift}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/shifts [post]
func (h *Handler) StoreShift(c *gin.Context) {
	var req requests.CreateShiftRequest
	if !h.bind(c, &req, 0) {
		return
	}
	shift, err := h.shifts.Create(c.Request.Context(), shifts.CreateInput{
		ClientID:           req.ClientID,
		AttentionProfileID: req.AttentionProfileID,
		RoomID:             req.RoomID,
	})
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusCreated, shift)
}

// DestroyShift godoc
// @Summary	Delete a shift
// @Tags		shifts
// @Param		id	path	int	true	"Shift ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/shifts/{id} [delete]
func (h *Handler) DestroyShift(c *gin.Context) {
	id, ok := parseID(c, "id", shiftNotFound)
	if !ok {
		return
	}
	if err := h.shifts.Delete(c.Request.Context(), id); err != nil {
		h.shiftError(c, err)
		return
	}
	response.NoContent(c)
}

// TransferShift godoc
// @Summary		Transfer a shift to another attention profile
// @Description	Closes the shift as transferred with its qualification and queues one
// @Description	successor for the same client and room in pending_transferred.
// @Tags			shifts
// @Accept			json
// @Produce		json
// @Param			id		path		int								true	"Shift ID"
// @Param			request	body		requests.TransferShiftRequest	true	"Transfer"
// @Success		200		{object}	ShiftTransferResponse
// @Failure		404		{object}	response.ErrorResponse
// @Failure		422		{object}	response.ValidationErrorResponse
// @Router			/shifts/{id}/transfer [post]
func (h *Handler) TransferShift(c *gin.Context) {
	var shift models.Shift
	if !h.find(c, &shift, "id", shiftNotFound) {
		return
	}
	var req requests.TransferShiftRequest
	if !h.bind(c, &req, 0) {
		return
	}
	original, successor, err := h.shifts.Transfer(c.Request.Context(), shift.ID, *req.Qualification, req.AttentionProfileID)
	if err != nil {
		h.shiftError(c, err)
		return
	}
	c.JSON(http.StatusOK, ShiftTransferResponse{Data: original, Successor: successor})
}

// CallShift godoc
// @Summary	Call a waiting shift to a module
// @Tags		shifts
// @Accept		json
// @Produce	json
// @Param		id		path		int							true	"Shift ID"
// @Param		request	body		requests.CallShiftRequest	true	"Attendant and module"
// @Success	200		{object}	response.DataResponse{data=models.Shift}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/shifts/{id}/call [post]
func (h *Handler) CallShift(c *gin.Context) {
	var shift models.Shift
	if !h.find(c, &shift, "id", shiftNotFound) {
		return
	}
	var req requests.CallShiftRequest
	if !h.bind(c, &req, 0) {
		return
	}
	called, err := h.shifts.Call(c.Request.Context(), shift.ID, req.AttendantID, req.ModuleID)
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusOK, called)
}

// FinishShift godoc
// @Summary	Finish a shift in progress
// @Tags		shifts
// @Accept		json
// @Produce	json
// @Param		id		path		int							true	"Shift ID"
// @Param		request	body		requests.FinishShiftRequest	true	"Qualification"
// @Success	200		{object}	response.DataResponse{data=models.Shift}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/shifts/{id}/finish [post]
func (h *Handler) FinishShift(c *gin.Context) {
	var shift models.Shift
	if !h.find(c, &shift, "id", shiftNotFound) {
		return
	}
	var req requests.FinishShiftRequest
	if !h.bind(c, &req, 0) {
		return
	}
	finished, err := h.shifts.Finish(c.Request.Context(), shift.ID, *req.Qualification)
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusOK, finished)
}

// CancelShift godoc
// @Summary	Cancel a waiting shift
// @Tags		shifts
// @Produce	json
// @Param		id	path		int	true	"Shift ID"
// @Success	200	{object}	response.DataResponse{data=models.Shift}
// @Failure	404	{object}	response.ErrorResponse
// @Failure	422	{object}	response.ValidationErrorResponse
// @Router		/shifts/{id}/cancel [post]
func (h *Handler) CancelShift(c *gin.Context) {
	id, ok := parseID(c, "id", shiftNotFound)
	if !ok {
		return
	}
	cancelled, err := h.shifts.Cancel(c.Request.Context(), id)
	if err != nil {
		h.shiftError(c, err)
		return
	}
	response.Data(c, http.StatusOK, cancelled)
}
