package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	moduleTypesKey     = "module_types"
	moduleTypeNotFound = "Module type not found"
)

// ListModuleTypes godoc
// @Summary	List module types
// @Tags		module_types
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.ModuleType}
// @Router		/module_types [get]
func (h *Handler) ListModuleTypes(c *gin.Context) {
	types := []models.ModuleType{}
	h.cachedList(c, moduleTypesKey, &types)
}

// ShowModuleType godoc
// @Summary	Show a module type
// @Tags		module_types
// @Produce	json
// @Param		id	path		int	true	"Module type ID"
// @Success	200	{object}	response.DataResponse{data=models.ModuleType}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/module_types/{id} [get]
func (h *Handler) ShowModuleType(c *gin.Context) {
	var moduleType models.ModuleType
	if !h.find(c, &moduleType, "id", moduleTypeNotFound) {
		return
	}
	response.Data(c, http.StatusOK, moduleType)
}

// StoreModuleType godoc
// @Summary	Create a module type
// @Tags		module_types
// @Accept		json
// @Produce	json
// @Param		request	body		requests.ModuleTypeRequest	true	"Module type"
// @Success	201		{object}	response.DataResponse{data=models.ModuleType}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/module_types [post]
func (h *Handler) StoreModuleType(c *gin.Context) {
	var req requests.ModuleTypeRequest
	if !h.bind(c, &req, 0) {
		return
	}
	moduleType := models.ModuleType{Name: req.Name}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&moduleType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, moduleTypesKey)
	response.Data(c, http.StatusCreated, moduleType)
}

// UpdateModuleType godoc
// @Summary	Rename a module type
// @Tags		module_types
// @Accept		json
// @Produce	json
// @Param		id		path		int							true	"Module type ID"
// @Param		request	body		requests.ModuleTypeRequest	true	"Module type"
// @Success	200		{object}	response.DataResponse{data=models.ModuleType}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/module_types/{id} [put]
func (h *Handler) UpdateModuleType(c *gin.Context) {
	var moduleType models.ModuleType
	if !h.find(c, &moduleType, "id", moduleTypeNotFound) {
		return
	}
	var req requests.ModuleTypeRequest
	if !h.bind(c, &req, moduleType.ID) {
		return
	}
	moduleType.Name = req.Name
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&moduleType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, moduleTypesKey)
	response.Data(c, http.StatusOK, moduleType)
}

// DestroyModuleType godoc
// @Summary	Delete a module type
// @Tags		module_types
// @Param		id	path	int	true	"Module type ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Failure	409	{object}	response.ErrorResponse
// @Router		/module_types/{id} [delete]
func (h *Handler) DestroyModuleType(c *gin.Context) {
	var moduleType models.ModuleType
	if !h.find(c, &moduleType, "id", moduleTypeNotFound) {
		return
	}
	if h.inUse(c, moduleType.ID,
		reference{&models.Module{}, "module_type_id"},
	) {
		return
	}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&moduleType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, moduleTypesKey)
	response.NoContent(c)
}
