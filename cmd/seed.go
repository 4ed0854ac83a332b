package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shiftdesk/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [catalog.yaml]",
		Short: "Load the reference catalog; the built-in one when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := seed.Default
			source := "built-in"
			if len(args) == 1 {
				var err error
				if data, err = os.ReadFile(args[0]); err != nil {
					return fmt.Errorf("read catalog: %w", err)
				}
				source = args[0]
			}
			catalog, err := seed.Parse(data)
			if err != nil {
				return err
			}

			db, closeDB, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			a.log.Info("seeding catalog", zap.String("source", source))
			return seed.Run(cmd.Context(), db, catalog, a.log)
		},
	}
}
