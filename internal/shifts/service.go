package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/models"
)

// Events sent to the room's display screens.
const (
	EventCreated     = "shift_created"
	EventCalled      = "shift_called"
	EventFinished    = "shift_finished"
	EventCancelled   = "shift_cancelled"
	EventTransferred = "shift_transferred"
)

var actionEvents = map[Action]string{
	ActionCall:     EventCalled,
	ActionFinish:   EventFinished,
	ActionCancel:   EventCancelled,
	ActionTransfer: EventTransferred,
}

// Notifier receives shift events after the database transaction committed.
type Notifier interface {
	Notify(roomID uint, event string, data any)
}

type Service struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
}

func NewService(db *gorm.DB, notifier Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, notifier: notifier, log: log}
}

type CreateInput struct {
	ClientID           uint
	AttentionProfileID uint
	RoomID             uint
}

type Filter struct {
	State              models.ShiftState
	RoomID             uint
	AttentionProfileID uint
}

func preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client.ClientType").
		Preload("AttentionProfile").
		Preload("Room").
		Preload("Attendant").
		Preload("Module")
}

func (s *Service) Get(ctx context.Context, id uint) (models.Shift, error) {
	var shift models.Shift
	if err := preload(s.db.WithContext(ctx)).First(&shift, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Shift{}, ErrNotFound
		}
		return models.Shift{}, fmt.Errorf("get shift %d: %w", id, err)
	}
	return shift, nil
}

// List returns shifts ordered by client type priority, then arrival.
func (s *Service) List(ctx context.Context, f Filter) ([]models.Shift, error) {
	query := preload(s.db.WithContext(ctx)).
		Model(&models.Shift{}).
		Select("shifts.*").
		Joins("LEFT JOIN clients ON clients.id = shifts.client_id").
		Joins("LEFT JOIN client_types ON client_types.id = clients.client_type_id")
	if f.State != "" {
		query = query.Where("shifts.state = ?", f.State)
	}
	if f.RoomID != 0 {
		query = query.Where("shifts.room_id = ?", f.RoomID)
	}
	if f.AttentionProfileID != 0 {
		query = query.Where("shifts.attention_profile_id = ?", f.AttentionProfileID)
	}

	shifts := []models.Shift{}
	err := query.
		Order("COALESCE(client_types.priority, 0) DESC").
		Order("shifts.id ASC").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// Create queues a client. The shift starts pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Shift, error) {
	shift := models.Shift{
		ClientID:           in.ClientID,
		AttentionProfileID: in.AttentionProfileID,
		RoomID:             in.RoomID,
		State:              models.ShiftPending,
	}
	if err := s.db.WithContext(ctx).Create(&shift).Error; err != nil {
		return models.Shift{}, fmt.Errorf("create shift: %w", err)
	}
	created, err := s.Get(ctx, shift.ID)
	if err != nil {
		return models.Shift{}, err
	}
	s.notify(created.RoomID, EventCreated, created)
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Shift{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete shift %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Transfer closes the shift as transferred with the given qualification and
// queues a successor for the same client and room under another attention
// profile. Both writes share one transaction. The original shift is returned.
func (s *Service) Transfer(ctx context.Context, id uint, qualification int, attentionProfileID uint) (models.Shift, models.Shift, error) {
	var successor models.Shift
	shift, err := s.transition(ctx, id, ActionTransfer,
		func(_ *gorm.DB, _ models.Shift) (map[string]any, error) {
			return map[string]any{"qualification": qualification}, nil
		},
		func(tx *gorm.DB, original models.Shift) error {
			successor = models.Shift{
				ClientID:           original.ClientID,
				AttentionProfileID: attentionProfileID,
				RoomID:             original.RoomID,
				State:              models.ShiftPendingTransferred,
			}
			if err := tx.Create(&successor).Error; err != nil {
				return fmt.Errorf("create successor of shift %d: %w", original.ID, err)
			}
			return nil
		})
	if err != nil {
		return models.Shift{}, models.Shift{}, err
	}

	loaded, err := s.Get(ctx, successor.ID)
	if err != nil {
		s.log.Warn("reload transferred successor failed",
			zap.Uint("shift_id", id),
			zap.Uint("successor_id", successor.ID),
			zap.Error(err))
	} else {
		successor = loaded
	}
	s.notify(successor.RoomID, EventCreated, successor)
	return shift, successor, nil
}

// Call assigns the shift to an attendant at a module.
func (s *Service) Call(ctx context.Context, id, attendantID, moduleID uint) (models.Shift, error) {
	return s.transition(ctx, id, ActionCall,
		func(tx *gorm.DB, _ models.Shift) (map[string]any, error) {
			var attendant models.Attendant
			if err := tx.First(&attendant, attendantID).Error; err != nil {
				return nil, fmt.Errorf("load attendant %d: %w", attendantID, err)
			}
			if !attendant.Enabled {
				return nil, ErrAttendantDisabled
			}
			var granted int64
			err := tx.Table("module_attendant_accesses").
				Where("attendant_id = ? AND module_id = ?", attendantID, moduleID).
				Count(&granted).Error
			if err != nil {
				return nil, fmt.Errorf("check module access: %w", err)
			}
			if granted == 0 {
				return nil, ErrNoModuleAccess
			}
			return map[string]any{"attendant_id": attendantID, "module_id": moduleID}, nil
		}, nil)
}

func (s *Service) Finish(ctx context.Context, id uint, qualification int) (models.Shift, error) {
	return s.transition(ctx, id, ActionFinish,
		func(_ *gorm.DB, _ models.Shift) (map[string]any, error) {
			return map[string]any{"qualification": qualification}, nil
		}, nil)
}

func (s *Service) Cancel(ctx context.Context, id uint) (models.Shift, error) {
	return s.transition(ctx, id, ActionCancel, nil, nil)
}

// ExpireStale cancels shifts still waiting that were created before cutoff.
func (s *Service) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("state IN ? AND created_at < ?", transitionMap[ActionCancel], cutoff).
		Update("state", models.ShiftCancelled)
	if res.Error != nil {
		return 0, fmt.Errorf("expire stale shifts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

type prepareFunc func(tx *gorm.DB, shift models.Shift) (map[string]any, error)
type afterFunc func(tx *gorm.DB, shift models.Shift) error

// transition moves shift id along action inside a transaction. The update is
// conditional on the state still being one action accepts, so a concurrent
// change makes it fail with ErrInvalidTransition instead of applying twice.
func (s *Service) transition(ctx context.Context, id uint, action Action, prepare prepareFunc, after afterFunc) (models.Shift, error) {
	target, ok := Target(action)
	if !ok {
		return models.Shift{}, fmt.Errorf("unknown action %q", action)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shift models.Shift
		if err := tx.First(&shift, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load shift %d: %w", id, err)
		}
		if !ValidTransition(action, shift.State) {
			return fmt.Errorf("%s shift %d from %s: %w", action, id, shift.State, ErrInvalidTransition)
		}

		updates := map[string]any{}
		if prepare != nil {
			extra, err := prepare(tx, shift)
			if err != nil {
				return err
			}
			updates = extra
		}
		updates["state"] = target

		res := tx.Model(&models.Shift{}).
			Where("id = ? AND state IN ?", id, transitionMap[action]).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update shift %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s shift %d: %w", action, id, ErrInvalidTransition)
		}

		if after != nil {
			return after(tx, shift)
		}
		return nil
	})
	if err != nil {
		return models.Shift{}, err
	}

	shift, err := s.Get(ctx, id)
	if err != nil {
		return models.Shift{}, err
	}
	s.notify(shift.RoomID, actionEvents[action], shift)
	s.log.Info("shift transition",
		zap.Uint("shift_id", id),
		zap.String("action", string(action)),
		zap.String("state", string(shift.State)))
	return shift, nil
}

func (s *Service) notify(roomID uint, event string, shift models.Shift) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(roomID, event, shift)
}
