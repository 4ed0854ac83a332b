// Package router wires the gin engine: middleware, swagger and every route.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/handlers"
	"shiftdesk/internal/logger"
)

type Options struct {
	Log         *zap.Logger
	CORSOrigins []string
	// Tokens guards every resource route when AuthEnabled is set.
	Tokens      *auth.Tokens
	AuthEnabled bool
	Swagger     bool
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", logger.RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// New builds the engine serving h.
func New(h *handlers.Handler, opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		logger.RequestID(),
		logger.Middleware(opts.Log),
		gin.Recovery(),
		cors.New(corsConfig(opts.CORSOrigins)),
	)

	r.GET("/health", h.Health)
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if opts.Tokens != nil {
		authGroup := r.Group("/auth")
		{
			authGroup.POST("/login", h.Login)
			authGroup.POST("/refresh", h.Refresh)
		}
	}

	api := r.Group("")
	if opts.AuthEnabled && opts.Tokens != nil {
		api.Use(auth.AuthMiddleware(opts.Tokens))
	}

	attendants := api.Group("/attendants")
	{
		attendants.GET("", h.ListAttendants)
		attendants.POST("", h.StoreAttendant)
		attendants.GET("/:id", h.ShowAttendant)
		attendants.PUT("/:id", h.UpdateAttendant)
		attendants.DELETE("/:id", h.DestroyAttendant)
		attendants.GET("/:id/modules", h.ListAttendantModules)
		attendants.POST("/:id/modules", h.AttachAttendantModule)
		attendants.DELETE("/:id/modules/:module_id", h.DetachAttendantModule)
	}

	profiles := api.Group("/attention_profiles")
	{
		profiles.GET("", h.ListAttentionProfiles)
		profiles.POST("", h.StoreAttentionProfile)
		profiles.GET("/:id", h.ShowAttentionProfile)
		profiles.PUT("/:id", h.UpdateAttentionProfile)
		profiles.DELETE("/:id", h.DestroyAttentionProfile)
		profiles.GET("/:id/services", h.ListAttentionProfileServices)
		profiles.POST("/:id/services", h.AttachAttentionProfileService)
		profiles.DELETE("/:id/services/:service_id", h.DetachAttentionProfileService)
	}

	resource(api, "/services", h.ListServices, h.StoreService, h.ShowService, h.UpdateService, h.DestroyService)
	rooms := resource(api, "/rooms", h.ListRooms, h.StoreRoom, h.ShowRoom, h.UpdateRoom, h.DestroyRoom)
	rooms.GET("/:id/ws", h.RoomWebSocket)
	resource(api, "/module_types", h.ListModuleTypes, h.StoreModuleType, h.ShowModuleType, h.UpdateModuleType, h.DestroyModuleType)
	resource(api, "/modules", h.ListModules, h.StoreModule, h.ShowModule, h.UpdateModule, h.DestroyModule)
	resource(api, "/client_types", h.ListClientTypes, h.StoreClientType, h.ShowClientType, h.UpdateClientType, h.DestroyClientType)
	resource(api, "/clients", h.ListClients, h.StoreClient, h.ShowClient, h.UpdateClient, h.DestroyClient)
	resource(api, "/absence_reasons", h.ListAbsenceReasons, h.StoreAbsenceReason, h.ShowAbsenceReason, h.UpdateAbsenceReason, h.DestroyAbsenceReason)

	shifts := api.Group("/shifts")
	{
		shifts.GET("", h.ListShifts)
		shifts.POST("", h.StoreShift)
		shifts.GET("/:id", h.ShowShift)
		shifts.DELETE("/:id", h.DestroyShift)
		shifts.POST("/:id/transfer", h.TransferShift)
		shifts.POST("/:id/call", h.CallShift)
		shifts.POST("/:id/finish", h.FinishShift)
		shifts.POST("/:id/cancel", h.CancelShift)
	}

	return r
}

// resource registers the five CRUD routes of a catalog under path.
func resource(g *gin.RouterGroup, path string, index, store, show, update, destroy gin.HandlerFunc) *gin.RouterGroup {
	group := g.Group(path)
	group.GET("", index)
	group.POST("", store)
	group.GET("/:id", show)
	group.PUT("/:id", update)
	group.DELETE("/:id", destroy)
	return group
}
