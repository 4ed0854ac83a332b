package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const moduleNotFound = "Module not found"

// ListModules godoc
// @Summary	List modules
// @Tags		modules
// @Produce	json
// @Param		room_id	query		int	false	"Only modules in this room"
// @Success	200		{object}	response.DataResponse{data=[]models.Module}
// @Router		/modules [get]
func (h *Handler) ListModules(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Preload("Room").
		Preload("ModuleType").
		Order("id")
	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	modules := []models.Module{}
	if err := query.Find(&modules).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, http.StatusOK, modules)
}

// ShowModule godoc
// @Summary	Show a module
// @Tags		modules
// @Produce	json
// @Param		id	path		int	true	"Module ID"
// @Success	200	{object}	response.DataResponse{data=models.Module}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/modules/{id} [get]
func (h *Handler) ShowModule(c *gin.Context) {
	var module models.Module
	if !h.find(c, &module, "id", moduleNotFound, "Room", "ModuleType", "Attendants") {
		return
	}
	response.Data(c, http.StatusOK, module)
}

// StoreModule godoc
// @Summary	Create a module
// @Tags		modules
// @Accept		json
// @Produce	json
// @Param		request	body		requests.ModuleRequest	true	"Module"
// @Success	201		{object}	response.DataResponse{data=models.Module}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/modules [post]
func (h *Handler) StoreModule(c *gin.Context) {
	var req requests.ModuleRequest
	if !h.bind(c, &req, 0) {
		return
	}
	var module models.Module
	req.Apply(&module)
	h.saveModule(c, &module, http.StatusCreated)
}

// UpdateModule godoc
// @Summary	Replace a module
// @Tags		modules
// @Accept		json
// @Produce	json
// @Param		id		path		int						true	"Module ID"
// @Param		request	body		requests.ModuleRequest	true	"Module"
// @Success	200		{object}	response.DataResponse{data=models.Module}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/modules/{id} [put]
func (h *Handler) UpdateModule(c *gin.Context) {
	var module models.Module
	if !h.find(c, &module, "id", moduleNotFound) {
		return
	}
	var req requests.ModuleRequest
	if !h.bind(c, &req, module.ID) {
		return
	}
	req.Apply(&module)
	h.saveModule(c, &module, http.StatusOK)
}

func (h *Handler) saveModule(c *gin.Context, module *models.Module, status int) {
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(module).Error; err != nil {
		h.dbError(c, err)
		return
	}
	err := h.db.WithContext(ctx).
		Preload("Room").
		Preload("ModuleType").
		First(module, module.ID).Error
	if err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, status, module)
}

// DestroyModule godoc
// @Summary	Delete a module
// @Tags		modules
// @Param		id	path	int	true	"Module ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/modules/{id} [delete]
func (h *Handler) DestroyModule(c *gin.Context) {
	var module models.Module
	if !h.find(c, &module, "id", moduleNotFound) {
		return
	}
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM module_attendant_accesses WHERE module_id = ?", module.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&module).Error
	})
	if err != nil {
		h.dbError(c, err)
		return
	}
	response.NoContent(c)
}
