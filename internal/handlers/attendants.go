package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const attendantNotFound = "Attendant not found"

// AttendantModule is one module an attendant may work at, as listed under
// /attendants/{id}/modules.
type AttendantModule struct {
	ID     uint          `json:"id"`
	Name   string        `json:"name"`
	Module models.Module `json:"module"`
}

// ListAttendants godoc
// @Summary	List attendants
// @Tags		attendants
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.Attendant}
// @Router		/attendants [get]
func (h *Handler) ListAttendants(c *gin.Context) {
	attendants := []models.Attendant{}
	err := h.db.WithContext(c.Request.Context()).
		Preload("AttentionProfile").
		Order("id").
		Find(&attendants).Error
	if err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, http.StatusOK, attendants)
}

// ShowAttendant godoc
// @Summary	Show an attendant
// @Tags		attendants
// @Produce	json
// @Param		id	path		int	true	"Attendant ID"
// @Success	200	{object}	response.DataResponse{data=models.Attendant}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attendants/{id} [get]
func (h *Handler) ShowAttendant(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound, "AttentionProfile") {
		return
	}
	response.Data(c, http.StatusOK, attendant)
}

// StoreAttendant godoc
// @Summary		Create an attendant
// @Description	Email and DNI are unique; enabled defaults to true.
// @Tags			attendants
// @Accept			json
// @Produce		json
// @Param			request	body		requests.AttendantRequest	true	"Attendant"
// @Success		201		{object}	response.DataResponse{data=models.Attendant}
// @Failure		422		{object}	response.ValidationErrorResponse
// @Router			/attendants [post]
func (h *Handler) StoreAttendant(c *gin.Context) {
	var req requests.AttendantRequest
	if !h.bind(c, &req, 0) {
		return
	}
	var attendant models.Attendant
	req.Apply(&attendant)
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&attendant).Error; err != nil {
		h.dbError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Preload("AttentionProfile").First(&attendant, attendant.ID).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, http.StatusCreated, attendant)
}

// UpdateAttendant godoc
// @Summary	Replace an attendant
// @Tags		attendants
// @Accept		json
// @Produce	json
// @Param		id		path		int							true	"Attendant ID"
// @Param		request	body		requests.AttendantRequest	true	"Attendant"
// @Success	200		{object}	response.DataResponse{data=models.Attendant}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/attendants/{id} [put]
func (h *Handler) UpdateAttendant(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound) {
		return
	}
	var req requests.AttendantRequest
	if !h.bind(c, &req, attendant.ID) {
		return
	}
	req.Apply(&attendant)
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&attendant).Error; err != nil {
		h.dbError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Preload("AttentionProfile").First(&attendant, attendant.ID).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, http.StatusOK, attendant)
}

// DestroyAttendant godoc
// @Summary	Delete an attendant
// @Tags		attendants
// @Param		id	path	int	true	"Attendant ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attendants/{id} [delete]
func (h *Handler) DestroyAttendant(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound) {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Select("Modules").Delete(&attendant).Error; err != nil {
		h.dbError(c, err)
		return
	}
	response.NoContent(c)
}

// ListAttendantModules godoc
// @Summary	Modules an attendant may work at
// @Tags		attendants
// @Produce	json
// @Param		id	path		int	true	"Attendant ID"
// @Success	200	{object}	response.DataResponse{data=[]AttendantModule}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attendants/{id}/modules [get]
func (h *Handler) ListAttendantModules(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound) {
		return
	}
	modules := []models.Module{}
	err := h.db.WithContext(c.Request.Context()).
		Model(&attendant).
		Order("modules.id").
		Association("Modules").
		Find(&modules)
	if err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	items := make([]AttendantModule, 0, len(modules))
	for _, m := range modules {
		items = append(items, AttendantModule{ID: attendant.ID, Name: attendant.Name, Module: m})
	}
	response.Data(c, http.StatusOK, items)
}

// AttachAttendantModule godoc
// @Summary	Grant module access
// @Tags		attendants
// @Accept		json
// @Produce	json
// @Param		id		path		int								true	"Attendant ID"
// @Param		request	body		requests.AttachModuleRequest	true	"Module"
// @Success	200		{object}	response.DataResponse{data=AttendantModule}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/attendants/{id}/modules [post]
func (h *Handler) AttachAttendantModule(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound) {
		return
	}
	var req requests.AttachModuleRequest
	if !h.bind(c, &req, 0) {
		return
	}
	ctx := c.Request.Context()
	var module models.Module
	if err := h.db.WithContext(ctx).First(&module, req.ModuleID).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	// Granting twice keeps a single join row.
	if err := h.db.WithContext(ctx).Model(&attendant).Association("Modules").Append(&module); err != nil {
		h.dbError(c, err)
		return
	}
	response.Data(c, http.StatusOK, AttendantModule{ID: attendant.ID, Name: attendant.Name, Module: module})
}

// DetachAttendantModule godoc
// @Summary	Revoke module access
// @Tags		attendants
// @Param		id			path	int	true	"Attendant ID"
// @Param		module_id	path	int	true	"Module ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attendants/{id}/modules/{module_id} [delete]
func (h *Handler) DetachAttendantModule(c *gin.Context) {
	var attendant models.Attendant
	if !h.find(c, &attendant, "id", attendantNotFound) {
		return
	}
	var module models.Module
	if !h.find(c, &module, "module_id", "Module not found") {
		return
	}
	ctx := c.Request.Context()
	var granted int64
	err := h.db.WithContext(ctx).Table("module_attendant_accesses").
		Where("attendant_id = ? AND module_id = ?", attendant.ID, module.ID).
		Count(&granted).Error
	if err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	if granted == 0 {
		response.NotFound(c, "Module access not found")
		return
	}
	if err := h.db.WithContext(ctx).Model(&attendant).Association("Modules").Delete(&module); err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.NoContent(c)
}
