package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"shiftdesk/internal/models"
	"shiftdesk/internal/shifts"
	"shiftdesk/internal/storage/storagetest"
)

func TestExpireStaleShifts(t *testing.T) {
	db := storagetest.NewDB(t)
	client := models.Client{Name: "Juan", DNI: "30111222"}
	room := models.Room{Name: "Main hall"}
	profile := models.AttentionProfile{Name: "Cashier"}
	for _, v := range []any{&client, &room, &profile} {
		require.NoError(t, db.Create(v).Error)
	}

	now := time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)
	yesterday := now.Add(-20 * time.Hour)
	shift := func(state models.ShiftState, created time.Time) *models.Shift {
		s := &models.Shift{
			ClientID:           client.ID,
			AttentionProfileID: profile.ID,
			RoomID:             room.ID,
			State:              state,
			CreatedAt:          created,
		}
		require.NoError(t, db.Create(s).Error)
		return s
	}
	stale := shift(models.ShiftPending, yesterday)
	staleTransferred := shift(models.ShiftPendingTransferred, yesterday)
	busy := shift(models.ShiftInProgress, yesterday)
	fresh := shift(models.ShiftPending, now.Add(-time.Hour))

	p := NewPlanner(shifts.NewService(db, nil, nil), zaptest.NewLogger(t))
	p.now = func() time.Time { return now }
	p.ExpireStaleShifts(context.Background())

	want := map[uint]models.ShiftState{
		stale.ID:            models.ShiftCancelled,
		staleTransferred.ID: models.ShiftCancelled,
		busy.ID:             models.ShiftInProgress,
		fresh.ID:            models.ShiftPending,
	}
	for id, state := range want {
		var got models.Shift
		require.NoError(t, db.First(&got, id).Error)
		assert.Equal(t, state, got.State, "shift %d", id)
	}
}

func TestInitScheduler(t *testing.T) {
	db := storagetest.NewDB(t)
	p := NewPlanner(shifts.NewService(db, nil, nil), zaptest.NewLogger(t))

	c, err := InitScheduler(context.Background(), p, "")
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Next
	assert.Equal(t, 3, next.Hour())
	assert.Zero(t, next.Minute())
}

func TestInitSchedulerCustomSpec(t *testing.T) {
	db := storagetest.NewDB(t)
	p := NewPlanner(shifts.NewService(db, nil, nil), zaptest.NewLogger(t))

	c, err := InitScheduler(context.Background(), p, "0 30 1 * * *")
	require.NoError(t, err)
	defer c.Stop()
	require.Len(t, c.Entries(), 1)
	assert.Equal(t, 1, c.Entries()[0].Next.Hour())
	assert.Equal(t, 30, c.Entries()[0].Next.Minute())

	_, err = InitScheduler(context.Background(), p, "not a schedule")
	assert.ErrorContains(t, err, "schedule stale shift expiry")
}
