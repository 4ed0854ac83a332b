package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdesk/internal/handlers"
	"shiftdesk/internal/models"
	"shiftdesk/internal/router"
	"shiftdesk/internal/storage/storagetest"
	"shiftdesk/internal/ws"
)

func TestRoomWebSocketReceivesShiftEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := storagetest.NewDB(t)
	hub := ws.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	api := &testAPI{t: t, db: db, engine: router.New(handlers.New(handlers.Deps{DB: db, Hub: hub}), router.Options{})}
	client := models.Client{Name: "Juan Perez", DNI: "30111222"}
	room := models.Room{Name: "Main hall"}
	api.create(&client, &room)
	cashier := seedProfile(t, api, "Cashier")
	loans := seedProfile(t, api, "Loans")

	ts := httptest.NewServer(api.engine)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/rooms/100/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	roomID := fmt.Sprint(room.ID)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/rooms/" + roomID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(roomID) == 1 }, 2*time.Second, 10*time.Millisecond)

	read := func() ws.WSMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg ws.WSMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	}

	rec := api.do(http.MethodPost, "/shifts", map[string]any{
		"client_id":            client.ID,
		"attention_profile_id": cashier.ID,
		"room_id":              room.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	shift := decode[envelope[models.Shift]](t, rec).Data

	msg := read()
	assert.Equal(t, "shift_created", msg.EventType)
	assert.Equal(t, roomID, msg.RoomID)

	rec = api.do(http.MethodPost, fmt.Sprintf("/shifts/%d/transfer", shift.ID), map[string]any{"qualification": 2, "attention_profile_id": loans.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	msg = read()
	assert.Equal(t, "shift_transferred", msg.EventType)
	data, ok := msg.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(models.ShiftTransferred), data["state"])

	msg = read()
	assert.Equal(t, "shift_created", msg.EventType)
	data, ok = msg.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(models.ShiftPendingTransferred), data["state"])
}
