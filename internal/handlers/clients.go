package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const clientNotFound = "Client not found"

// ListClients godoc
// @Summary	List clients
// @Tags		clients
// @Produce	json
// @Param		dni	query		string	false	"Exact DNI lookup"
// @Success	200	{object}	response.DataResponse{data=[]models.Client}
// @Router		/clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Preload("ClientType").Order("id")
	if dni := c.Query("dni"); dni != "" {
		query = query.Where("dni = ?", dni)
	}
	clients := []models.Client{}
	if err := query.Find(&clients).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, http.StatusOK, clients)
}

// ShowClient godoc
// @Summary	Show a client
// @Tags		clients
// @Produce	json
// @Param		id	path		int	true	"Client ID"
// @Success	200	{object}	response.DataResponse{data=models.Client}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/clients/{id} [get]
func (h *Handler) ShowClient(c *gin.Context) {
	var client models.Client
	if !h.find(c, &client, "id", clientNotFound, "ClientType") {
		return
	}
	response.Data(c, http.StatusOK, client)
}

// StoreClient godoc
// @Summary	Register a client
// @Tags		clients
// @Accept		json
// @Produce	json
// @Param		request	body		requests.ClientRequest	true	"Client"
// @Success	201		{object}	response.DataResponse{data=models.Client}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/clients [post]
func (h *Handler) StoreClient(c *gin.Context) {
	var req requests.ClientRequest
	if !h.bind(c, &req, 0) {
		return
	}
	var client models.Client
	req.Apply(&client)
	h.saveClient(c, &client, http.StatusCreated)
}

// UpdateClient godoc
// @Summary	Replace a client
// @Tags		clients
// @Accept		json
// @Produce	json
// @Param		id		path		int						true	"Client ID"
// @Param		request	body		requests.ClientRequest	true	"Client"
// @Success	200		{object}	response.DataResponse{data=models.Client}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/clients/{id} [put]
func (h *Handler) UpdateClient(c *gin.Context) {
	var client models.Client
	if !h.find(c, &client, "id", clientNotFound) {
		return
	}
	var req requests.ClientRequest
	if !h.bind(c, &req, client.ID) {
		return
	}
	req.Apply(&client)
	h.saveClient(c, &client, http.StatusOK)
}

func (h *Handler) saveClient(c *gin.Context, client *models.Client, status int) {
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(client).Error; err != nil {
		h.dbError(c, err)
		return
	}
	if err := h.db.WithContext(ctx).Preload("ClientType").First(client, client.ID).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.Data(c, status, client)
}

// DestroyClient godoc
// @Summary	Delete a client and their shifts
// @Tags		clients
// @Param		id	path	int	true	"Client ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/clients/{id} [delete]
func (h *Handler) DestroyClient(c *gin.Context) {
	var client models.Client
	if !h.find(c, &client, "id", clientNotFound) {
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Delete(&client).Error; err != nil {
		h.dbError(c, err)
		return
	}
	response.NoContent(c)
}
