package requests

import "shiftdesk/internal/models"

// CreateShiftRequest queues a client for an attention profile in a room.
type CreateShiftRequest struct {
	ClientID           uint `json:"client_id" binding:"required"`
	AttentionProfileID uint `json:"attention_profile_id" binding:"required"`
	RoomID             uint `json:"room_id" binding:"required"`
}

func (r *CreateShiftRequest) Check(chk *Checker, _ uint) {
	chk.Exists("client_id", &models.Client{}, r.ClientID)
	chk.Exists("attention_profile_id", &models.AttentionProfile{}, r.AttentionProfileID)
	chk.Exists("room_id", &models.Room{}, r.RoomID)
}

type TransferShiftRequest struct {
	Qualification      *int `json:"qualification" binding:"required,min=0,max=4"`
	AttentionProfileID uint `json:"attention_profile_id" binding:"required"`
}

func (r *TransferShiftRequest) Check(chk *Checker, _ uint) {
	chk.Exists("attention_profile_id", &models.AttentionProfile{}, r.AttentionProfileID)
}

type CallShiftRequest struct {
	AttendantID uint `json:"attendant_id" binding:"required"`
	ModuleID    uint `json:"module_id" binding:"required"`
}

func (r *CallShiftRequest) Check(chk *Checker, _ uint) {
	chk.Exists("attendant_id", &models.Attendant{}, r.AttendantID)
	chk.Exists("module_id", &models.Module{}, r.ModuleID)
}

type FinishShiftRequest struct {
	Qualification *int `json:"qualification" binding:"required,min=0,max=4"`
}

// ShiftFilter is bound from the query string of GET /shifts.
type ShiftFilter struct {
	State              string `form:"state" binding:"omitempty,oneof=pending in_progress finished cancelled transferred pending_transferred"`
	RoomID             uint   `form:"room_id"`
	AttentionProfileID uint   `form:"attention_profile_id"`
}
