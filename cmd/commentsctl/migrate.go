package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pribylovaa/review-comments/internal/config"
	"github.com/pribylovaa/review-comments/internal/notify"
	"github.com/pribylovaa/review-comments/internal/storage/postgres"
)

func migrateCmd(f *flags) *cli.Command {
	var skipQueue bool

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply PostgreSQL schema migrations (comments and the notification queue)",
		Description: `Applies embedded SQL migrations for revisions and comments, then the river
job queue schema. Already applied migrations are skipped. MongoDB needs no
migrations: indexes are created on service start.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "skip-queue",
				Usage:       "do not migrate the river queue schema",
				Destination: &skipQueue,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}

			if cfg.DB.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate: db.driver is %q, nothing to do", cfg.DB.Driver)
			}

			pg, err := postgres.New(ctx, cfg.DB.URL)
			if err != nil {
				return err
			}
			defer pg.Close()

			out := c.Root().Writer

			applied, err := pg.Migrate(ctx)
			if err != nil {
				return err
			}
			for _, name := range applied {
				fmt.Fprintf(out, "applied %s\n", name)
			}

			if !skipQueue {
				versions, err := notify.MigrateQueue(ctx, pg.Pool())
				if err != nil {
					return err
				}
				for _, v := range versions {
					fmt.Fprintf(out, "applied river migration %d\n", v)
				}
			}

			fmt.Fprintln(out, "schema is up to date")
			return nil
		},
	}
}
