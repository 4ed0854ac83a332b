package requests

import "shiftdesk/internal/models"

type AttendantRequest struct {
	Name               string `json:"name" binding:"required,max=255"`
	Email              string `json:"email" binding:"required,email,max=255"`
	DNI                string `json:"dni" binding:"required,number,min=7,max=10"`
	Enabled            *bool  `json:"enabled"`
	AttentionProfileID uint   `json:"attention_profile_id" binding:"required"`
}

func (r *AttendantRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("email", &models.Attendant{}, "email", r.Email, ignoreID)
	chk.Unique("dni", &models.Attendant{}, "dni", r.DNI, ignoreID)
	chk.Exists("attention_profile_id", &models.AttentionProfile{}, r.AttentionProfileID)
}

// Apply copies the request onto a. Enabled defaults to true for new attendants
// and is left untouched on update when omitted.
func (r *AttendantRequest) Apply(a *models.Attendant) {
	a.Name = r.Name
	a.Email = r.Email
	a.DNI = r.DNI
	a.AttentionProfileID = r.AttentionProfileID
	a.AttentionProfile = nil
	switch {
	case r.Enabled != nil:
		a.Enabled = *r.Enabled
	case a.ID == 0:
		a.Enabled = true
	}
}

type ModuleRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	IPAddress    string `json:"ip_address" binding:"required,ip"`
	RoomID       uint   `json:"room_id" binding:"required"`
	ModuleTypeID uint   `json:"module_type_id" binding:"required"`
}

func (r *ModuleRequest) Check(chk *Checker, _ uint) {
	chk.Exists("room_id", &models.Room{}, r.RoomID)
	chk.Exists("module_type_id", &models.ModuleType{}, r.ModuleTypeID)
}

func (r *ModuleRequest) Apply(m *models.Module) {
	m.Name = r.Name
	m.IPAddress = r.IPAddress
	m.RoomID = r.RoomID
	m.ModuleTypeID = r.ModuleTypeID
	m.Room = nil
	m.ModuleType = nil
}

// AttachModuleRequest grants an attendant access to a module.
type AttachModuleRequest struct {
	ModuleID uint `json:"module_id" binding:"required"`
}

func (r *AttachModuleRequest) Check(chk *Checker, _ uint) {
	chk.Exists("module_id", &models.Module{}, r.ModuleID)
}

type ClientRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	DNI          string `json:"dni" binding:"required,number,min=7,max=10"`
	ClientTypeID *uint  `json:"client_type_id"`
}

func (r *ClientRequest) Check(chk *Checker, ignoreID uint) {
	chk.Unique("dni", &models.Client{}, "dni", r.DNI, ignoreID)
	if r.ClientTypeID != nil {
		chk.Exists("client_type_id", &models.ClientType{}, *r.ClientTypeID)
	}
}

func (r *ClientRequest) Apply(c *models.Client) {
	c.Name = r.Name
	c.DNI = r.DNI
	c.ClientTypeID = r.ClientTypeID
	c.ClientType = nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
