package shifts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"shiftdesk/internal/models"
	"shiftdesk/internal/storage/storagetest"
)

type recordedEvent struct {
	RoomID uint
	Event  string
	State  models.ShiftState
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) Notify(roomID uint, event string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	shift, _ := data.(models.Shift)
	f.events = append(f.events, recordedEvent{RoomID: roomID, Event: event, State: shift.State})
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	notifier *fakeNotifier
	client   models.Client
	room     models.Room
	cashier  models.AttentionProfile
	loans    models.AttentionProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storagetest.NewDB(t)
	f := &fixture{db: db, notifier: &fakeNotifier{}}
	f.svc = NewService(db, f.notifier, nil)

	f.client = models.Client{Name: "Juan Perez", DNI: "30111222"}
	f.room = models.Room{Name: "Main hall"}
	f.cashier = models.AttentionProfile{Name: "Cashier"}
	f.loans = models.AttentionProfile{Name: "Loans"}
	for _, v := range []any{&f.client, &f.room, &f.cashier, &f.loans} {
		require.NoError(t, db.Create(v).Error)
	}
	return f
}

func (f *fixture) pending(t *testing.T) models.Shift {
	t.Helper()
	shift, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:           f.client.ID,
		AttentionProfileID: f.cashier.ID,
		RoomID:             f.room.ID,
	})
	require.NoError(t, err)
	return shift
}

func countShifts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Shift{}).Count(&n).Error)
	return n
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)
	shift := f.pending(t)

	assert.NotZero(t, shift.ID)
	assert.Equal(t, models.ShiftPending, shift.State)
	assert.Nil(t, shift.Qualification)
	require.NotNil(t, shift.Client)
	assert.Equal(t, "Juan Perez", shift.Client.Name)
	assert.Equal(t, []recordedEvent{{RoomID: f.room.ID, Event: EventCreated, State: models.ShiftPending}}, f.notifier.events)
}

func TestTransferCreatesOneSuccessor(t *testing.T) {
	f := newFixture(t)
	original := f.pending(t)

	transferred, successor, err := f.svc.Transfer(context.Background(), original.ID, 3, f.loans.ID)
	require.NoError(t, err)

	assert.Equal(t, original.ID, transferred.ID)
	assert.Equal(t, models.ShiftTransferred, transferred.State)
	require.NotNil(t, transferred.Qualification)
	assert.Equal(t, 3, *transferred.Qualification)
	assert.Equal(t, f.cashier.ID, transferred.AttentionProfileID)

	type core struct {
		ClientID, AttentionProfileID, RoomID uint
		State                                models.ShiftState
		Qualification                        *int
	}
	want := core{ClientID: f.client.ID, AttentionProfileID: f.loans.ID, RoomID: f.room.ID, State: models.ShiftPendingTransferred}
	got := core{successor.ClientID, successor.AttentionProfileID, successor.RoomID, successor.State, successor.Qualification}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("successor mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(2), countShifts(t, f.db))
}

func TestTransferLogsSuccessorReloadFailure(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zap.WarnLevel)
	f.svc = NewService(f.db, f.notifier, zap.New(core))
	original := f.pending(t)

	// Only the successor preloads the loans profile.
	loansID := fmt.Sprint(f.loans.ID)
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:fail_loans_preload", func(tx *gorm.DB) {
		if tx.Statement.Table != "attention_profiles" {
			return
		}
		for _, v := range tx.Statement.Vars {
			if fmt.Sprint(v) == loansID {
				_ = tx.AddError(errors.New("preload unavailable"))
				return
			}
		}
	}))

	_, successor, err := f.svc.Transfer(context.Background(), original.ID, 2, f.loans.ID)
	require.NoError(t, err, "the transfer is already committed")
	assert.NotZero(t, successor.ID)
	assert.Equal(t, f.loans.ID, successor.AttentionProfileID)
	assert.Nil(t, successor.AttentionProfile)

	entries := logs.FilterMessage("reload transferred successor failed").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, successor.ID, entries[0].ContextMap()["successor_id"])
	assert.Equal(t, int64(2), countShifts(t, f.db))
}

func TestTransferTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	original := f.pending(t)
	ctx := context.Background()

	_, _, err := f.svc.Transfer(ctx, original.ID, 2, f.loans.ID)
	require.NoError(t, err)

	_, _, err = f.svc.Transfer(ctx, original.ID, 2, f.loans.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, int64(2), countShifts(t, f.db))
}

func TestTransferSuccessorCanBeTransferredAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	original := f.pending(t)

	_, successor, err := f.svc.Transfer(ctx, original.ID, 4, f.loans.ID)
	require.NoError(t, err)
	_, third, err := f.svc.Transfer(ctx, successor.ID, 1, f.cashier.ID)
	require.NoError(t, err)

	assert.Equal(t, original.ClientID, third.ClientID)
	assert.Equal(t, original.RoomID, third.RoomID)
	assert.Equal(t, int64(3), countShifts(t, f.db))
}

func TestTransferMissingShift(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.svc.Transfer(context.Background(), 999, 1, f.loans.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), countShifts(t, f.db))
}

func TestTransferRollsBackWhenSuccessorFails(t *testing.T) {
	f := newFixture(t)
	original := f.pending(t)

	// Make the successor insert fail after the state update went through.
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("fail_successor", func(tx *gorm.DB) {
		if shift, ok := tx.Statement.Dest.(*models.Shift); ok && shift.State == models.ShiftPendingTransferred {
			_ = tx.AddError(assert.AnError)
		}
	}))

	_, _, err := f.svc.Transfer(context.Background(), original.ID, 2, f.loans.ID)
	require.ErrorIs(t, err, assert.AnError)

	reloaded, err := f.svc.Get(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftPending, reloaded.State)
	assert.Nil(t, reloaded.Qualification)
	assert.Equal(t, int64(1), countShifts(t, f.db))
}

func TestCallFinishFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	counterType := models.ModuleType{Name: "Counter"}
	require.NoError(t, f.db.Create(&counterType).Error)
	module := models.Module{Name: "Box 1", IPAddress: "10.0.0.10", RoomID: f.room.ID, ModuleTypeID: counterType.ID}
	require.NoError(t, f.db.Create(&module).Error)
	attendant := models.Attendant{Name: "Ana", Email: "ana@example.com", DNI: "20111222", Enabled: true, AttentionProfileID: f.cashier.ID}
	require.NoError(t, f.db.Create(&attendant).Error)

	shift := f.pending(t)
	_, err := f.svc.Call(ctx, shift.ID, attendant.ID, module.ID)
	assert.ErrorIs(t, err, ErrNoModuleAccess)

	require.NoError(t, f.db.Model(&attendant).Association("Modules").Append(&module))
	called, err := f.svc.Call(ctx, shift.ID, attendant.ID, module.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftInProgress, called.State)
	require.NotNil(t, called.AttendantID)
	assert.Equal(t, attendant.ID, *called.AttendantID)
	require.NotNil(t, called.ModuleID)
	assert.Equal(t, module.ID, *called.ModuleID)

	_, err = f.svc.Cancel(ctx, shift.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	finished, err := f.svc.Finish(ctx, shift.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftFinished, finished.State)
	require.NotNil(t, finished.Qualification)
	assert.Equal(t, 4, *finished.Qualification)

	var events []string
	for _, e := range f.notifier.events {
		events = append(events, e.Event)
	}
	assert.Equal(t, []string{EventCreated, EventCalled, EventFinished}, events)
}

func TestCallDisabledAttendant(t *testing.T) {
	f := newFixture(t)
	attendant := models.Attendant{Name: "Ana", Email: "ana@example.com", DNI: "20111222", Enabled: true, AttentionProfileID: f.cashier.ID}
	require.NoError(t, f.db.Create(&attendant).Error)
	require.NoError(t, f.db.Model(&attendant).Update("enabled", false).Error)

	shift := f.pending(t)
	_, err := f.svc.Call(context.Background(), shift.ID, attendant.ID, 1)
	assert.ErrorIs(t, err, ErrAttendantDisabled)
}

func TestListOrdersByClientPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	senior := models.ClientType{Name: "Senior", Priority: 10}
	require.NoError(t, f.db.Create(&senior).Error)
	vip := models.Client{Name: "Maria", DNI: "10111222", ClientTypeID: &senior.ID}
	require.NoError(t, f.db.Create(&vip).Error)

	first := f.pending(t)
	second, err := f.svc.Create(ctx, CreateInput{ClientID: vip.ID, AttentionProfileID: f.cashier.ID, RoomID: f.room.ID})
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	third := f.pending(t)

	all, err := f.svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{second.ID, first.ID, third.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	pending, err := f.svc.List(ctx, Filter{State: models.ShiftPending, RoomID: f.room.ID})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	require.NotNil(t, pending[0].Client)
	require.NotNil(t, pending[0].Client.ClientType)
	assert.Equal(t, "Senior", pending[0].Client.ClientType.Name)
}

func TestExpireStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := f.pending(t)
	require.NoError(t, f.db.Model(&models.Shift{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)
	fresh := f.pending(t)

	n, err := f.svc.ExpireStale(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := f.svc.Get(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftCancelled, got.State)
	got, err = f.svc.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftPending, got.State)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	shift := f.pending(t)
	require.NoError(t, f.svc.Delete(context.Background(), shift.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), shift.ID), ErrNotFound)
	_, err := f.svc.Get(context.Background(), shift.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
