// Package cmd holds the shiftdesk command line: serve, migrate, seed and create-user.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/config"
	"shiftdesk/internal/logger"
	"shiftdesk/internal/storage"
)

// app is the state shared by every subcommand once the root pre-run finished.
type app struct {
	envFiles []string
	cfg      config.Config
	log      *zap.Logger
}

func (a *app) init() error {
	envErr := config.LoadEnv(a.envFiles...)
	if envErr != nil && len(a.envFiles) > 0 {
		return envErr
	}

	a.cfg = config.Load()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log
	if envErr != nil {
		a.log.Debug("no .env file loaded", zap.Error(envErr))
	}
	return nil
}

// openDB connects and migrates; the caller closes the returned database.
func (a *app) openDB(ctx context.Context) (*gorm.DB, func(), error) {
	db, err := storage.ConnectDatabase(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := storage.Migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "shiftdesk",
		Short:         "Shift and queue management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "env files to load instead of .env")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newCreateUserCmd(a),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
