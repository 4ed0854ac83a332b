package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	clientTypesKey     = "client_types"
	clientTypeNotFound = "Client type not found"
)

func applyClientType(req requests.ClientTypeRequest, ct *models.ClientType) {
	ct.Name = req.Name
	ct.Priority = 0
	if req.Priority != nil {
		ct.Priority = *req.Priority
	}
}

// ListClientTypes godoc
// @Summary	List client types
// @Tags		client_types
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.ClientType}
// @Router		/client_types [get]
func (h *Handler) ListClientTypes(c *gin.Context) {
	types := []models.ClientType{}
	h.cachedList(c, clientTypesKey, &types)
}

// ShowClientType godoc
// @Summary	Show a client type
// @Tags		client_types
// @Produce	json
// @Param		id	path		int	true	"Client type ID"
// @Success	200	{object}	response.DataResponse{data=models.ClientType}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/client_types/{id} [get]
func (h *Handler) ShowClientType(c *gin.Context) {
	var clientType models.ClientType
	if !h.find(c, &clientType, "id", clientTypeNotFound) {
		return
	}
	response.Data(c, http.StatusOK, clientType)
}

// StoreClientType godoc
// @Summary		Create a client type
// @Description	Priority (0-100) orders the queue; higher goes first.
// @Tags			client_types
// @Accept			json
// @Produce		json
// @Param			request	body		requests.ClientTypeRequest	true	"Client type"
// @Success		201		{object}	response.DataResponse{data=models.ClientType}
// @Failure		422		{object}	response.ValidationErrorResponse
// @Router			/client_types [post]
func (h *Handler) StoreClientType(c *gin.Context) {
	var req requests.ClientTypeRequest
	if !h.bind(c, &req, 0) {
		return
	}
	var clientType models.ClientType
	applyClientType(req, &clientType)
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&clientType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, clientTypesKey)
	response.Data(c, http.StatusCreated, clientType)
}

// UpdateClientType godoc
// @Summary	Replace a client type
// @Tags		client_types
// @Accept		json
// @Produce	json
// @Param		id		path		int							true	"Client type ID"
// @Param		request	body		requests.ClientTypeRequest	true	"Client type"
// @Success	200		{object}	response.DataResponse{data=models.ClientType}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/client_types/{id} [put]
func (h *Handler) UpdateClientType(c *gin.Context) {
	var clientType models.ClientType
	if !h.find(c, &clientType, "id", clientTypeNotFound) {
		return
	}
	var req requests.ClientTypeRequest
	if !h.bind(c, &req, clientType.ID) {
		return
	}
	applyClientType(req, &clientType)
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&clientType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, clientTypesKey)
	response.Data(c, http.StatusOK, clientType)
}

// DestroyClientType godoc
// @Summary	Delete a client type
// @Tags		client_types
// @Param		id	path	int	true	"Client type ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/client_types/{id} [delete]
func (h *Handler) DestroyClientType(c *gin.Context) {
	var clientType models.ClientType
	if !h.find(c, &clientType, "id", clientTypeNotFound) {
		return
	}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&clientType).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, clientTypesKey)
	response.NoContent(c)
}
