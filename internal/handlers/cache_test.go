package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdesk/internal/cache"
	"shiftdesk/internal/handlers"
	"shiftdesk/internal/models"
	"shiftdesk/internal/router"
	"shiftdesk/internal/storage/storagetest"
)

func newCachedAPI(t *testing.T) (*testAPI, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db := storagetest.NewDB(t)
	h := handlers.New(handlers.Deps{DB: db, Cache: cache.New(client, time.Minute, nil)})
	return &testAPI{t: t, db: db, engine: router.New(h, router.Options{})}, mr
}

func roomNames(t *testing.T, api *testAPI) []string {
	t.Helper()
	rec := api.do(http.MethodGet, "/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	for _, room := range decode[envelope[[]models.Room]](t, rec).Data {
		names = append(names, room.Name)
	}
	return names
}

func TestCatalogListIsCachedAndInvalidatedOnWrite(t *testing.T) {
	api, mr := newCachedAPI(t)
	api.create(&models.Room{Name: "Hall A"})

	assert.Equal(t, []string{"Hall A"}, roomNames(t, api))
	assert.True(t, mr.Exists("shiftdesk:rooms"))

	// Written behind the API's back, so only a cache hit hides it.
	api.create(&models.Room{Name: "Hall B"})
	assert.Equal(t, []string{"Hall A"}, roomNames(t, api))

	rec := api.do(http.MethodPost, "/rooms", map[string]any{"name": "Hall C"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[envelope[models.Room]](t, rec).Data
	assert.False(t, mr.Exists("shiftdesk:rooms"))
	assert.Equal(t, []string{"Hall A", "Hall B", "Hall C"}, roomNames(t, api))

	path := fmt.Sprintf("/rooms/%d", created.ID)
	rec = api.do(http.MethodPut, path, map[string]any{"name": "Hall D"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Hall A", "Hall B", "Hall D"}, roomNames(t, api))

	rec = api.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"Hall A", "Hall B"}, roomNames(t, api))
}

func TestAttentionProfileListInvalidatedOnWrite(t *testing.T) {
	api, _ := newCachedAPI(t)

	rec := api.do(http.MethodGet, "/attention_profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = api.do(http.MethodPost, "/attention_profiles", map[string]any{"name": "Cashier"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodGet, "/attention_profiles", nil)
	require.Len(t, decode[envelope[[]models.AttentionProfile]](t, rec).Data, 1)
}
