package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdesk/internal/handlers"
	"shiftdesk/internal/models"
)

type shiftScene struct {
	api     *testAPI
	client  models.Client
	room    models.Room
	cashier models.AttentionProfile
	loans   models.AttentionProfile
}

func newShiftScene(t *testing.T) *shiftScene {
	t.Helper()
	s := &shiftScene{api: newAPI(t)}
	s.client = models.Client{Name: "Juan Perez", DNI: "30111222"}
	s.room = models.Room{Name: "Main hall"}
	s.api.create(&s.client, &s.room)
	s.cashier = seedProfile(t, s.api, "Cashier")
	s.loans = seedProfile(t, s.api, "Loans")
	return s
}

func (s *shiftScene) queue(t *testing.T) models.Shift {
	t.Helper()
	rec := s.api.do(http.MethodPost, "/shifts", map[string]any{
		"client_id":            s.client.ID,
		"attention_profile_id": s.cashier.ID,
		"room_id":              s.room.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	shift := decode[envelope[models.Shift]](t, rec).Data
	require.Equal(t, models.ShiftPending, shift.State)
	return shift
}

func TestStoreShiftValidation(t *testing.T) {
	s := newShiftScene(t)
	rec := s.api.do(http.MethodPost, "/shifts", map[string]any{
		"client_id":            100,
		"attention_profile_id": s.cashier.ID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode[validationBody](t, rec).Errors
	assert.Contains(t, errs, "client_id")
	assert.Contains(t, errs, "room_id")
	assert.NotContains(t, errs, "attention_profile_id")
}

func TestTransferShift(t *testing.T) {
	s := newShiftScene(t)
	shift := s.queue(t)
	path := fmt.Sprintf("/shifts/%d/transfer", shift.ID)

	rec := s.api.do(http.MethodPost, path, map[string]any{"qualification": 3, "attention_profile_id": s.loans.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[handlers.ShiftTransferResponse](t, rec)
	assert.Equal(t, models.ShiftTransferred, body.Data.State)
	require.NotNil(t, body.Data.Qualification)
	assert.Equal(t, 3, *body.Data.Qualification)

	successor := body.Successor
	assert.NotEqual(t, shift.ID, successor.ID)
	assert.Equal(t, models.ShiftPendingTransferred, successor.State)
	assert.Equal(t, shift.ClientID, successor.ClientID)
	assert.Equal(t, shift.RoomID, successor.RoomID)
	assert.Equal(t, s.loans.ID, successor.AttentionProfileID)
	assert.EqualValues(t, 2, s.api.count(&models.Shift{}))

	rec = s.api.do(http.MethodPost, path, map[string]any{"qualification": 3, "attention_profile_id": s.loans.ID})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[validationBody](t, rec).Errors, "state")
	assert.EqualValues(t, 2, s.api.count(&models.Shift{}), "a rejected transfer creates nothing")
}

func TestTransferShiftValidation(t *testing.T) {
	s := newShiftScene(t)
	shift := s.queue(t)
	path := fmt.Sprintf("/shifts/%d/transfer", shift.ID)

	cases := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"qualification missing", map[string]any{"attention_profile_id": s.loans.ID}, "qualification"},
		{"qualification too high", map[string]any{"qualification": 5, "attention_profile_id": s.loans.ID}, "qualification"},
		{"qualification negative", map[string]any{"qualification": -1, "attention_profile_id": s.loans.ID}, "qualification"},
		{"profile missing", map[string]any{"qualification": 2}, "attention_profile_id"},
		{"profile not exists", map[string]any{"qualification": 2, "attention_profile_id": 100}, "attention_profile_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.api.do(http.MethodPost, path, tc.payload)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.Contains(t, decode[validationBody](t, rec).Errors, tc.field)
		})
	}
	assert.EqualValues(t, 1, s.api.count(&models.Shift{}))

	rec := s.api.do(http.MethodPost, "/shifts/100/transfer", map[string]any{"qualification": 2, "attention_profile_id": s.loans.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShiftCallAndFinish(t *testing.T) {
	s := newShiftScene(t)
	shift := s.queue(t)
	attendant := seedAttendant(t, s.api, s.cashier, 1)
	counter := models.ModuleType{Name: "Counter"}
	s.api.create(&counter)
	module := models.Module{Name: "Window 1", IPAddress: "10.0.0.1", RoomID: s.room.ID, ModuleTypeID: counter.ID}
	s.api.create(&module)
	call := map[string]any{"attendant_id": attendant.ID, "module_id": module.ID}

	rec := s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/call", shift.ID), call)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[validationBody](t, rec).Errors, "module_id")

	rec = s.api.do(http.MethodPost, fmt.Sprintf("/attendants/%d/modules", attendant.ID), map[string]any{"module_id": module.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/call", shift.ID), call)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	called := decode[envelope[models.Shift]](t, rec).Data
	assert.Equal(t, models.ShiftInProgress, called.State)
	require.NotNil(t, called.AttendantID)
	assert.Equal(t, attendant.ID, *called.AttendantID)

	rec = s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/cancel", shift.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "only waiting shifts can be cancelled")

	rec = s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/finish", shift.ID), map[string]any{"qualification": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ShiftFinished, decode[envelope[models.Shift]](t, rec).Data.State)

	rec = s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/transfer", shift.ID), map[string]any{"qualification": 1, "attention_profile_id": s.loans.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "finished shifts are terminal")
}

func TestListShifts(t *testing.T) {
	s := newShiftScene(t)
	first := s.queue(t)
	second := s.queue(t)

	rec := s.api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/cancel", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.api.do(http.MethodGet, "/shifts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[envelope[[]models.Shift]](t, rec).Data, 2)

	rec = s.api.do(http.MethodGet, "/shifts?state=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decode[envelope[[]models.Shift]](t, rec).Data
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	rec = s.api.do(http.MethodGet, "/shifts?state=sleeping", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[validationBody](t, rec).Errors, "state")
}

func TestShowAndDestroyShift(t *testing.T) {
	s := newShiftScene(t)
	shift := s.queue(t)
	path := fmt.Sprintf("/shifts/%d", shift.ID)

	rec := s.api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shown := decode[envelope[models.Shift]](t, rec).Data
	require.NotNil(t, shown.Client)
	assert.Equal(t, "Juan Perez", shown.Client.Name)

	rec = s.api.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.api.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.api.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
