// commentsctl — операторская утилита сервиса комментариев:
// миграции схемы, регистрация ревизий и выпуск dev-токенов.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pribylovaa/review-comments/internal/config"
)

// flags — глобальные флаги, общие для всех подкоманд.
type flags struct {
	configPath string
}

func (f *flags) load() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func newApp() *cli.Command {
	f := &flags{}

	return &cli.Command{
		Name:      "commentsctl",
		Usage:     "Operate the review comments service",
		UsageText: "commentsctl [--config path] command [command options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (overrides CONFIG_PATH)",
				Destination: &f.configPath,
			},
		},
		Commands: []*cli.Command{
			migrateCmd(f),
			revisionCmd(f),
			tokenCmd(f),
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "commentsctl: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
