package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/parkave-bakery/internal/auth"
	"github.com/example/parkave-bakery/internal/checklists"
	"github.com/example/parkave-bakery/internal/clock"
	"github.com/example/parkave-bakery/internal/clover"
	"github.com/example/parkave-bakery/internal/config"
	"github.com/example/parkave-bakery/internal/db"
	"github.com/example/parkave-bakery/internal/migrate"
	"github.com/example/parkave-bakery/internal/orders"
	"github.com/example/parkave-bakery/internal/rules"
	ordersync "github.com/example/parkave-bakery/internal/sync"
	"github.com/example/parkave-bakery/internal/web"
	"github.com/spf13/cobra"
)

func NewServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the ordering API and staff dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			tz, err := clock.New(cfg.Timezone)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			openCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
			defer cancel()
			database, err := db.Open(openCtx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrate.Up(openCtx, database); err != nil {
				return err
			}

			catalog, err := rules.NewCatalog(rules.DefaultItems())
			if err != nil {
				return err
			}
			engine := rules.NewEngine(catalog, rules.DefaultCalendar(), rules.DefaultSlotTable(), tz)

			store := orders.NewRepo(database)
			cloverClient := clover.New(clover.Credentials{
				APIKey:     cfg.CloverAPIKey,
				MerchantID: cfg.CloverMerchantID,
			})

			if cloverClient.Enabled() {
				mirror := &ordersync.Mirror{
					Store:    store,
					Clover:   cloverClient,
					Catalog:  catalog,
					TZ:       tz,
					Clock:    tz,
					Interval: cfg.SyncInterval,
				}
				go func() {
					if err := mirror.Run(ctx); err != nil && ctx.Err() == nil {
						log.Printf("order mirror stopped: %v", err)
					}
				}()
			} else {
				log.Println("clover credentials not set; checkout and order sync disabled")
			}

			srv := web.NewServer(web.Server{
				Engine:        engine,
				Store:         store,
				Auth:          auth.NewStore(database, cfg.CookieHashKey, cfg.CookieBlockKey),
				Checklists:    checklists.NewRepo(database),
				Clover:        cloverClient,
				TZ:            tz,
				Clock:         tz,
				BaseURL:       cfg.BaseURL,
				AllowedOrigin: cfg.AllowedOrigin,
				WebhookSecret: cfg.CloverWebhookSecret,
				DemoMode:      cfg.DemoMode,
			})

			return web.Start(ctx, cfg.ListenAddr, srv.Routes())
		},
	}
}
