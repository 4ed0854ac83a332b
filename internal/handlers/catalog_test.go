package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdesk/internal/models"
)

func TestCatalogResources(t *testing.T) {
	cases := []struct {
		path    string
		valid   map[string]any
		updated map[string]any
		invalid map[string]any
		field   string
	}{
		{"/services", map[string]any{"name": "Deposits", "description": "Cash deposits"}, map[string]any{"name": "Withdrawals"}, map[string]any{"name": ""}, "name"},
		{"/rooms", map[string]any{"name": "Main hall"}, map[string]any{"name": "Annex"}, map[string]any{}, "name"},
		{"/module_types", map[string]any{"name": "Counter"}, map[string]any{"name": "Desk"}, map[string]any{"name": ""}, "name"},
		{"/client_types", map[string]any{"name": "Senior", "priority": 50}, map[string]any{"name": "Regular"}, map[string]any{"name": "VIP", "priority": 101}, "priority"},
		{"/absence_reasons", map[string]any{"name": "Lunch"}, map[string]any{"name": "Meeting"}, map[string]any{"name": ""}, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			api := newAPI(t)

			rec := api.do(http.MethodPost, tc.path, tc.valid)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			id := decode[envelope[struct {
				ID uint `json:"id"`
			}]](t, rec).Data.ID
			require.NotZero(t, id)

			rec = api.do(http.MethodPost, tc.path, tc.valid)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "names are unique")

			rec = api.do(http.MethodPost, tc.path, tc.invalid)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, decode[validationBody](t, rec).Errors, tc.field)

			item := fmt.Sprintf("%s/%d", tc.path, id)
			rec = api.do(http.MethodPut, item, tc.updated)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tc.updated["name"], decode[envelope[map[string]any]](t, rec).Data["name"])

			rec = api.do(http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decode[envelope[[]map[string]any]](t, rec).Data, 1)

			rec = api.do(http.MethodPut, tc.path+"/100", tc.updated)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = api.do(http.MethodDelete, item, nil)
			require.Equal(t, http.StatusNoContent, rec.Code)
			rec = api.do(http.MethodGet, item, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestModulesAndClients(t *testing.T) {
	api := newAPI(t)
	room := models.Room{Name: "Main hall"}
	counter := models.ModuleType{Name: "Counter"}
	senior := models.ClientType{Name: "Senior", Priority: 50}
	api.create(&room, &counter, &senior)

	rec := api.do(http.MethodPost, "/modules", map[string]any{"name": "Window 1", "ip_address": "not-an-ip", "room_id": room.ID, "module_type_id": 100})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode[validationBody](t, rec).Errors
	assert.Contains(t, errs, "ip_address")
	assert.Contains(t, errs, "module_type_id")

	rec = api.do(http.MethodPost, "/modules", map[string]any{"name": "Window 1", "ip_address": "192.168.0.10", "room_id": room.ID, "module_type_id": counter.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	module := decode[envelope[models.Module]](t, rec).Data
	require.NotNil(t, module.Room)
	assert.Equal(t, "Main hall", module.Room.Name)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/rooms/%d", room.ID), nil)
	require.Equal(t, http.StatusConflict, rec.Code, "a room with modules cannot be deleted")

	rec = api.do(http.MethodGet, fmt.Sprintf("/modules?room_id=%d", room.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[envelope[[]models.Module]](t, rec).Data, 1)

	rec = api.do(http.MethodPost, "/clients", map[string]any{"name": "Juan", "dni": "30111222", "client_type_id": senior.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	client := decode[envelope[models.Client]](t, rec).Data
	require.NotNil(t, client.ClientType)
	assert.Equal(t, 50, client.ClientType.Priority)

	rec = api.do(http.MethodPost, "/clients", map[string]any{"name": "Pedro", "dni": "30111222"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[validationBody](t, rec).Errors, "dni")

	rec = api.do(http.MethodGet, "/clients?dni=30111222", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[envelope[[]models.Client]](t, rec).Data, 1)

	rec = api.do(http.MethodPut, fmt.Sprintf("/clients/%d", client.ID), map[string]any{"name": "Juan Perez", "dni": "30111222"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[envelope[models.Client]](t, rec).Data
	assert.Nil(t, updated.ClientTypeID)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/modules/%d", module.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
