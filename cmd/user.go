package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/models"
)

func newCreateUserCmd(a *app) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a back-office account for the API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			db, closeDB, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			var existing int64
			if err := db.WithContext(cmd.Context()).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
				return fmt.Errorf("look up user: %w", err)
			}
			if existing > 0 {
				return fmt.Errorf("user %s already exists", email)
			}

			user := models.User{Name: name, Email: email, PasswordHash: hash}
			if err := db.WithContext(cmd.Context()).Create(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("user %s already exists", email)
				}
				return fmt.Errorf("create user: %w", err)
			}
			a.log.Info("user created", zap.Uint("id", user.ID), zap.String("email", email))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
