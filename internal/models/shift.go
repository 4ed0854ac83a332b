package models

import "time"

type ShiftState string

const (
	ShiftPending            ShiftState = "pending"
	ShiftInProgress         ShiftState = "in_progress"
	ShiftFinished           ShiftState = "finished"
	ShiftCancelled          ShiftState = "cancelled"
	ShiftTransferred        ShiftState = "transferred"
	ShiftPendingTransferred ShiftState = "pending_transferred"
)

var shiftStates = []ShiftState{
	ShiftPending,
	ShiftInProgress,
	ShiftFinished,
	ShiftCancelled,
	ShiftTransferred,
	ShiftPendingTransferred,
}

func ShiftStates() []ShiftState {
	out := make([]ShiftState, len(shiftStates))
	copy(out, shiftStates)
	return out
}

func (s ShiftState) Valid() bool {
	for _, state := range shiftStates {
		if s == state {
			return true
		}
	}
	return false
}

// Waiting reports whether the shift is still in the queue.
func (s ShiftState) Waiting() bool {
	return s == ShiftPending || s == ShiftPendingTransferred
}

// Shift is a queued service request for a client.
type Shift struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	ClientID           uint              `gorm:"index;not null" json:"client_id"`
	Client             *Client           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"client,omitempty"`
	AttentionProfileID uint              `gorm:"index;not null" json:"attention_profile_id"`
	AttentionProfile   *AttentionProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"attention_profile,omitempty"`
	RoomID             uint              `gorm:"index;not null" json:"room_id"`
	Room               *Room             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room,omitempty"`
	AttendantID        *uint             `gorm:"index" json:"attendant_id"`
	Attendant          *Attendant        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"attendant,omitempty"`
	ModuleID           *uint             `gorm:"index" json:"module_id"`
	Module             *Module           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"module,omitempty"`
	Qualification      *int              `json:"qualification"`
	State              ShiftState        `gorm:"size:32;index;not null;default:pending" json:"state"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Service{},
		&AttentionProfile{},
		&Room{},
		&ModuleType{},
		&Module{},
		&Attendant{},
		&ClientType{},
		&Client{},
		&AbsenceReason{},
		&Shift{},
	}
}
