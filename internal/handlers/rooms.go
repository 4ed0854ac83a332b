package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

const (
	roomsKey     = "rooms"
	roomNotFound = "Room not found"
)

// ListRooms godoc
// @Summary	List rooms
// @Tags		rooms
// @Produce	json
// @Success	200	{object}	response.DataResponse{data=[]models.Room}
// @Router		/rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms := []models.Room{}
	h.cachedList(c, roomsKey, &rooms)
}

// ShowRoom godoc
// @Summary	Show a room
// @Tags		rooms
// @Produce	json
// @Param		id	path		int	true	"Room ID"
// @Success	200	{object}	response.DataResponse{data=models.Room}
// @Failure	404	{object}	response.ErrorResponse
// @Router		/rooms/{id} [get]
func (h *Handler) ShowRoom(c *gin.Context) {
	var room models.Room
	if !h.find(c, &room, "id", roomNotFound) {
		return
	}
	response.Data(c, http.StatusOK, room)
}

// StoreRoom godoc
// @Summary	Create a room
// @Tags		rooms
// @Accept		json
// @Produce	json
// @Param		request	body		requests.RoomRequest	true	"Room"
// @Success	201		{object}	response.DataResponse{data=models.Room}
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/rooms [post]
func (h *Handler) StoreRoom(c *gin.Context) {
	var req requests.RoomRequest
	if !h.bind(c, &req, 0) {
		return
	}
	room := models.Room{Name: req.Name, Description: req.Description}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Create(&room).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, roomsKey)
	response.Data(c, http.StatusCreated, room)
}

// UpdateRoom godoc
// @Summary	Replace a room
// @Tags		rooms
// @Accept		json
// @Produce	json
// @Param		id		path		int						true	"Room ID"
// @Param		request	body		requests.RoomRequest	true	"Room"
// @Success	200		{object}	response.DataResponse{data=models.Room}
// @Failure	404		{object}	response.ErrorResponse
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/rooms/{id} [put]
func (h *Handler) UpdateRoom(c *gin.Context) {
	var room models.Room
	if !h.find(c, &room, "id", roomNotFound) {
		return
	}
	var req requests.RoomRequest
	if !h.bind(c, &req, room.ID) {
		return
	}
	room.Name = req.Name
	room.Description = req.Description
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Save(&room).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, roomsKey)
	response.Data(c, http.StatusOK, room)
}

// DestroyRoom godoc
// @Summary	Delete a room
// @Tags		rooms
// @Param		id	path	int	true	"Room ID"
// @Success	204
// @Failure	404	{object}	response.ErrorResponse
// @Failure	409	{object}	response.ErrorResponse	"Room still has modules or shifts"
// @Router		/rooms/{id} [delete]
func (h *Handler) DestroyRoom(c *gin.Context) {
	var room models.Room
	if !h.find(c, &room, "id", roomNotFound) {
		return
	}
	if h.inUse(c, room.ID,
		reference{&models.Module{}, "room_id"},
		reference{&models.Shift{}, "room_id"},
	) {
		return
	}
	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Delete(&room).Error; err != nil {
		h.dbError(c, err)
		return
	}
	h.cache.Forget(ctx, roomsKey)
	response.NoContent(c)
}

// RoomWebSocket godoc
// @Summary		Live shift events for a room
// @Description	Upgrades to a WebSocket that receives every shift event of the room.
// @Tags			rooms
// @Param			id	path	int	true	"Room ID"
// @Success		101
// @Failure		404	{object}	response.ErrorResponse
// @Failure		503	{object}	response.ErrorResponse
// @Router			/rooms/{id}/ws [get]
func (h *Handler) RoomWebSocket(c *gin.Context) {
	var room models.Room
	if !h.find(c, &room, "id", roomNotFound) {
		return
	}
	if h.hub == nil {
		response.Error(c, http.StatusServiceUnavailable, "WS_DISABLED", "Live updates are not available")
		return
	}
	h.hub.Serve(c, strconv.FormatUint(uint64(room.ID), 10))
}
