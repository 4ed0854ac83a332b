package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	servicesKey     = "services"
	serviceNotFound = "Service not found"
)

// ListServices godoc
// @Summary	List services
// @Tags		services
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.Service}
// @Router		/services [get]
func (h *Handler) ListServices(c *gin.Context) {
	services := []models.Service{}
	h.cachedList(c, servicesKey, &services)
}

// ShowService godoc
// @Summary	Show a service
// @Tags		services
// @Produce	json
// @Param		id	path		int	true	"Service ID"
// @Success	200	{object}	response.DataResponse{data=models.Service}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/services/{id} [get]
func (h *Handler) ShowService(c *gin.Context) {
	var service models.Service
	if !h.find(c, &service, "id", serviceNotFound) {
		return
	}
	response.Data(c, http.StatusOK, service)
}

// StoreService godoc
// @Summary	Create a service
// @Tags		services
// @Accept		json
// @Produce	json
// @Param		request	body		requests.ServiceRequest	true	"Service"
// @Success	201		{object}	response.DataResponse{data=models.Service}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/services [post]
func (h *Handler) StoreService(c *gin.Context) {
	var req requests.ServiceRequest
	if !h.bind(c, &req, 0) {
		return
	}
	service := models.Service{Name: req.Name, Description: req.Description}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&service).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, servicesKey)
	response.Data(c, http.StatusCreated, service)
}

// UpdateService godoc
// @Summary	Replace a service
// @Tags		services
// @Accept		json
// @Produce	json
// @Param		id		path		int						true	"Service ID"
// @Param		request	body		requests.ServiceRequest	true	"Service"
// @Success	200		{object}	response.DataResponse{data=models.Service}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/services/{id} [put]
func (h *Handler) UpdateService(c *gin.Context) {
	var service models.Service
	if !h.find(c, &service, "id", serviceNotFound) {
		return
	}
	var req requests.ServiceRequest
	if !h.bind(c, &req, service.ID) {
		return
	}
	service.Name = req.Name
	service.Description = req.Description
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&service).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, servicesKey)
	response.Data(c, http.StatusOK, service)
}

// DestroyService godoc
// @Summary	Delete a service
// @Tags		services
// @Param		id	path	int	true	"Service ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/services/{id} [delete]
func (h *Handler) DestroyService(c *gin.Context) {
	var service models.Service
	if !h.find(c, &service, "id", serviceNotFound) {
		return
	}
	ctx := c.Request.Context()
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM attention_profile_services WHERE service_id = ?", service.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&service).Error
	})
	if err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, servicesKey)
	response.NoContent(c)
}
