package requests

import "shiftdesk/internal/models"

type AttentionProfileRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (r *AttentionProfileRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.AttentionProfile{}, "name", r.Name, ignoreID)
}

type ServiceRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

func (r *ServiceRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.Service{}, "name", r.Name, ignoreID)
}

type RoomRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
}

func (r *RoomRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.Room{}, "name", r.Name, ignoreID)
}

type ModuleTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (r *ModuleTypeRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.ModuleType{}, "name", r.Name, ignoreID)
}

type ClientTypeRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Priority *int   `json:"priority" binding:"omitempty,min=0,max=100"`
}

func (r *ClientTypeRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.ClientType{}, "name", r.Name, ignoreID)
}

type AbsenceReasonRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (r *AbsenceReasonRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("name", &models.AbsenceReason{}, "name", r.Name, ignoreID)
}

// AttachServiceRequest links an existing service to an attention profile.
type AttachServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

func (r *AttachServiceRequest) Check(chk *Checker, _ uint) {
	chk.Exists("service_id", &models.Service{}, r.ServiceID)
}
