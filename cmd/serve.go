package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/cache"
	"shiftdesk/internal/handlers"
	"shiftdesk/internal/router"
	"shiftdesk/internal/shifts"
	"shiftdesk/internal/storage"
	"shiftdesk/internal/tasks"
	"shiftdesk/internal/telemetry"
	"shiftdesk/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the websocket hub and the scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, "shiftdesk", a.cfg.OTLPEndpoint, a.cfg.OTLPInsecure, a.log)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			a.log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, closeDB, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	rdb := storage.InitRedis(ctx, a.cfg, a.log)
	if rdb != nil {
		defer rdb.Close()
	}

	hub := ws.NewHub(a.log)
	svc := shifts.NewService(db, hub, a.log)

	var tokens *auth.Tokens
	if a.cfg.JWTAccessSecret != "" && a.cfg.JWTRefreshSecret != "" {
		tokens = auth.NewTokens(a.cfg.JWTAccessSecret, a.cfg.JWTRefreshSecret)
	}

	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.New(handlers.Deps{
		DB:     db,
		Shifts: svc,
		Cache:  cache.New(rdb, a.cfg.CacheTTL, a.log),
		Hub:    hub,
		Tokens: tokens,
		Log:    a.log,
	})
	engine := router.New(h, router.Options{
		Log:         a.log,
		CORSOrigins: a.cfg.CORSOrigins,
		Tokens:      tokens,
		AuthEnabled: a.cfg.AuthEnabled,
		Swagger:     true,
	})

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(engine, "shiftdesk"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var scheduler *cron.Cron
	if a.cfg.CronEnabled {
		scheduler, err = tasks.InitScheduler(ctx, tasks.NewPlanner(svc, a.log), a.cfg.CronExpireSpec)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	if scheduler != nil {
		g.Go(func() error {
			<-gctx.Done()
			<-scheduler.Stop().Done()
			return nil
		})
	}

	g.Go(func() error {
		a.log.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
