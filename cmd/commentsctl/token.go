package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/pribylovaa/review-comments/internal/auth"
	"github.com/pribylovaa/review-comments/internal/models"
)

// tokenCmd выпускает bearer-токен тем же секретом, что проверяет сервис.
// Только для локальной разработки: в проде токены выдаёт auth-сервис.
func tokenCmd(f *flags) *cli.Command {
	var (
		sub  string
		name string
		role string
		ttl  time.Duration
	)

	return &cli.Command{
		Name:      "token",
		Usage:     "Mint a development bearer token",
		UsageText: "commentsctl token --role revisor [--sub UUID] [--name Rui] [--ttl 1h]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sub", Usage: "caller id (generated when empty)", Destination: &sub},
			&cli.StringFlag{Name: "name", Usage: "display name", Destination: &name},
			&cli.StringFlag{Name: "role", Usage: "autor, revisor, editor or admin", Required: true, Destination: &role},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: time.Hour, Destination: &ttl},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			r, ok := models.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}

			id := uuid.New()
			if sub != "" {
				v, err := uuid.Parse(sub)
				if err != nil {
					return fmt.Errorf("--sub must be a UUID: %w", err)
				}
				id = v
			}

			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}

			cfg, err := f.load()
			if err != nil {
				return err
			}

			tok, err := auth.NewVerifier(cfg.Auth).Mint(models.Caller{ID: id, Name: name, Role: r}, time.Now(), ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, tok)
			return nil
		},
	}
}
