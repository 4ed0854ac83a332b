package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	attentionProfilesKey     = "attention_profiles"
	attentionProfileNotFound = "Attention profile not found"
)

// AttentionProfileService is one service offered by a profile, as listed
// under /attention_profiles/{id}/services.
type AttentionProfileService struct {
	ID      uint           `json:"id"`
	Name    string         `json:"name"`
	Service models.Service `json:"service"`
}

// ListAttentionProfiles godoc
// @Summary	List attention profiles
// @Tags		attention_profiles
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.AttentionProfile}
// @Router		/attention_profiles [get]
func (h *Handler) ListAttentionProfiles(c *gin.Context) {
	profiles := []models.AttentionProfile{}
	h.cachedList(c, attentionProfilesKey, &profiles)
}

// ShowAttentionProfile godoc
// @Summary	Show an attention profile
// @Tags		attention_profiles
// @Produce	json
// @Param		id	path		int	true	"Attention profile ID"
// @Success	200	{object}	response.DataResponse{data=models.AttentionProfile}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attention_profiles/{id} [get]
func (h *Handler) ShowAttentionProfile(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound, "Services") {
		return
	}
	response.Data(c, http.StatusOK, profile)
}

// StoreAttentionProfile godoc
// @Summary	Create an attention profile
// @Tags		attention_profiles
// @Accept		json
// @Produce	json
// @Param		request	body		requests.AttentionProfileRequest	true	"Attention profile"
// @Success	201		{object}	response.DataResponse{data=models.AttentionProfile}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/attention_profiles [post]
func (h *Handler) StoreAttentionProfile(c *gin.Context) {
	var req requests.AttentionProfileRequest
	if !h.bind(c, &req, 0) {
		return
	}
	profile := models.AttentionProfile{Name: req.Name}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&profile).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, attentionProfilesKey)
	response.Data(c, http.StatusCreated, profile)
}

// UpdateAttentionProfile godoc
// @Summary	Rename an attention profile
// @Tags		attention_profiles
// @Accept		json
// @Produce	json
// @Param		id		path		int									true	"Attention profile ID"
// @Param		request	body		requests.AttentionProfileRequest	true	"Attention profile"
// @Success	200		{object}	response.DataResponse{data=models.AttentionProfile}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/attention_profiles/{id} [put]
func (h *Handler) UpdateAttentionProfile(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound) {
		return
	}
	var req requests.AttentionProfileRequest
	if !h.bind(c, &req, profile.ID) {
		return
	}
	profile.Name = req.Name
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&profile).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, attentionProfilesKey)
	response.Data(c, http.StatusOK, profile)
}

// DestroyAttentionProfile godoc
// @Summary	Delete an attention profile
// @Tags		attention_profiles
// @Param		id	path	int	true	"Attention profile ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Failure	409	{object}	response.ErrorResponse	"Profile still referenced"
// @Router		/attention_profiles/{id} [delete]
func (h *Handler) DestroyAttentionProfile(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound) {
		return
	}
	if h.inUse(c, profile.ID,
		reference{&models.Attendant{}, "attention_profile_id"},
		reference{&models.Shift{}, "attention_profile_id"},
	) {
		return
	}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Select("Services").Delete(&profile).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, attentionProfilesKey)
	response.NoContent(c)
}

// ListAttentionProfileServices godoc
// @Summary	Services offered by an attention profile
// @Tags		attention_profiles
// @Produce	json
// @Param		id	path		int	true	"Attention profile ID"
// @Success	200	{object}	response.DataResponse{data=[]AttentionProfileService}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attention_profiles/{id}/services [get]
func (h *Handler) ListAttentionProfileServices(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound) {
		return
	}
	services := []models.Service{}
	err := h.db.WithContext(c.Request.Context()).
		Model(&profile).
		Order("services.id").
		Association("Services").
		Find(&services)
	if err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	items := make([]AttentionProfileService, 0, len(services))
	for _, s := range services {
		items = append(items, AttentionProfileService{ID: profile.ID, Name: profile.Name, Service: s})
	}
	response.Data(c, http.StatusOK, items)
}

// AttachAttentionProfileService godoc
// @Summary	Offer a service under an attention profile
// @Tags		attention_profiles
// @Accept		json
// @Produce	json
// @Param		id		path		int								true	"Attention profile ID"
// @Param		request	body		requests.AttachServiceRequest	true	"Service"
// @Success	200		{object}	response.DataResponse{data=AttentionProfileService}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/attention_profiles/{id}/services [post]
func (h *Handler) AttachAttentionProfileService(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound) {
		return
	}
	var req requests.AttachServiceRequest
	if !h.bind(c, &req, 0) {
		return
	}
	ctx := c.Request.Context()
	var service models.Service
	if err := h.db.WithContext(ctx).First(&service, req.ServiceID).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	if err := h.db.WithContext(ctx).Model(&profile).Association("Services").Append(&service); err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, attentionProfilesKey)
	response.Data(c, http.StatusOK, AttentionProfileService{ID: profile.ID, Name: profile.Name, Service: service})
}

// DetachAttentionProfileService godoc
// @Summary	Stop offering a service under an attention profile
// @Tags		attention_profiles
// @Param		id			path	int	true	"Attention profile ID"
// @Param		service_id	path	int	true	"Service ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Router		/attention_profiles/{id}/services/{service_id} [delete]
func (h *Handler) DetachAttentionProfileService(c *gin.Context) {
	var profile models.AttentionProfile
	if !h.find(c, &profile, "id", attentionProfileNotFound) {
		return
	}
	var service models.Service
	if !h.find(c, &service, "service_id", "Service not found") {
		return
	}
	ctx := c.Request.Context()
	if n := h.db.WithContext(ctx).Model(&profile).Where("services.id = ?", service.ID).Association("Services").Count(); n == 0 {
		response.NotFound(c, "Service is not offered by this attention profile")
		return
	}
	if err := h.db.WithContext(ctx).Model(&profile).Association("Services").Delete(&service); err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	response.NoContent(c)
}
