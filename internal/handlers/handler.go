package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/cache"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
	"shiftdesk/internal/shifts"
	"shiftdesk/internal/storage"
	"shiftdesk/internal/ws"
)

// Handler serves every REST endpoint. Hub, Cache and Tokens may be nil.
type Handler struct {
	db     *gorm.DB
	shifts *shifts.Service
	cache  *cache.Cache
	hub    *ws.Hub
	tokens *auth.Tokens
	log    *zap.Logger
}

type Deps struct {
	DB     *gorm.DB
	Shifts *shifts.Service
	Cache  *cache.Cache
	Hub    *ws.Hub
	Tokens *auth.Tokens
	Log    *zap.Logger
}

func New(d Deps) *Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Cache == nil {
		d.Cache = cache.New(nil, 0, d.Log)
	}
	if d.Shifts == nil {
		var notifier shifts.Notifier
		if d.Hub != nil {
			notifier = d.Hub
		}
		d.Shifts = shifts.NewService(d.DB, notifier, d.Log)
	}
	return &Handler{
		db:     d.DB,
		shifts: d.Shifts,
		cache:  d.Cache,
		hub:    d.Hub,
		tokens: d.Tokens,
		log:    d.Log,
	}
}

// parseID reads a numeric path parameter. Anything else cannot name a record,
// so it is answered with 404.
func parseID(c *gin.Context, param, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.NotFound(c, notFound)
		return 0, false
	}
	return uint(id), true
}

// find loads dest by the id in path parameter param, answering 404 or 500 itself.
func (h *Handler) find(c *gin.Context, dest any, param, notFound string, preloads ...string) bool {
	id, ok := parseID(c, param, notFound)
	if !ok {
		return false
	}
	query := h.db.WithContext(c.Request.Context())
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, notFound)
			return false
		}
		response.Internal(c, "DB_ERROR", err)
		return false
	}
	return true
}

// bind decodes and validates req. Requests with database rules are checked
// against the database, ignoring the row ignoreID on update.
func (h *Handler) bind(c *gin.Context, req any, ignoreID uint) bool {
	errs, err := requests.Bind(c, req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_JSON",
			Message: "Request body is not valid JSON",
			Details: err.Error(),
		})
		return false
	}
	if checkable, ok := req.(requests.Checkable); ok {
		if err := requests.Check(c.Request.Context(), h.db, errs, checkable, ignoreID); err != nil {
			response.Internal(c, "DB_ERROR", err)
			return false
		}
	}
	if !errs.Empty() {
		response.Validation(c, errs)
		return false
	}
	return true
}

// dbError maps constraint violations that slipped past validation.
func (h *Handler) dbError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		response.Error(c, http.StatusConflict, "IN_USE", "The record is referenced by other records")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		response.Validation(c, map[string][]string{"id": {"The record already exists."}})
	default:
		response.Internal(c, "DB_ERROR", err)
	}
}

// Health godoc
// @Summary	Liveness probe
// @Tags		health
// @Produce	json
// @Success	200	{object}	map[string]string
// @Failure	503	{object}	response.ErrorResponse
// @Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	if err := storage.Ping(c.Request.Context(), h.db); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cachedList answers a catalog listing from the cache, falling back to the
// table ordered by id. dest must point to an empty slice.
func (h *Handler) cachedList(c *gin.Context, key string, dest any, preloads ...string) {
	ctx := c.Request.Context()
	if h.cache.Get(ctx, key, dest) {
		response.Data(c, http.StatusOK, dest)
		return
	}
	query := h.db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.Order("id").Find(dest).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	h.cache.Set(ctx, key, dest)
	response.Data(c, http.StatusOK, dest)
}

// reference is a table column pointing at the record about to be deleted.
type reference struct {
	model  any
	column string
}

// inUse answers 409 when any reference still points at id.
func (h *Handler) inUse(c *gin.Context, id uint, refs ...reference) bool {
	for _, ref := range refs {
		var count int64
		err := h.db.WithContext(c.Request.Context()).Model(ref.model).Where(ref.column+" = ?", id).Count(&count).Error
		if err != nil {
			response.Internal(c, "DB_ERROR", err)
			return true
		}
		if count > 0 {
			response.Error(c, http.StatusConflict, "IN_USE", "The record is referenced by other records")
			return true
		}
	}
	return false
}
