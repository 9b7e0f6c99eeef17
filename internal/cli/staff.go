package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/example/parkave-bakery/internal/auth"
	"github.com/example/parkave-bakery/internal/config"
	"github.com/example/parkave-bakery/internal/db"
	"github.com/example/parkave-bakery/internal/migrate"
	"github.com/spf13/cobra"
)

func NewStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Staff account management",
	}
	cmd.AddCommand(newStaffAddCmd())
	return cmd
}

func newStaffAddCmd() *cobra.Command {
	var username, password string
	c := &cobra.Command{
		Use:   "add",
		Short: "Create a dashboard login",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			database, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()
			if err := migrate.Up(ctx, database); err != nil {
				return err
			}

			store := auth.NewStore(database, cfg.CookieHashKey, cfg.CookieBlockKey)
			if err := store.CreateStaff(ctx, username, password); err != nil {
				return err
			}
			fmt.Println("created staff user:", username)
			return nil
		},
	}
	c.Flags().StringVar(&username, "username", "", "username")
	c.Flags().StringVar(&password, "password", "", "password")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
