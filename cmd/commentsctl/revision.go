package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/pribylovaa/review-comments/internal/config"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
	rcmongo "github.com/pribylovaa/review-comments/internal/storage/mongo"
	"github.com/pribylovaa/review-comments/internal/storage/postgres"
)

// revisionCmd регистрирует ревизии. В проде их создаёт редакционная система;
// команда нужна для локальной разработки и ручного восстановления.
func revisionCmd(f *flags) *cli.Command {
	var id, article, author, reviewer string

	return &cli.Command{
		Name:  "revision",
		Usage: "Manage revisions known to the comments service",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Register a revision with its article author and reviewer",
				UsageText: "commentsctl revision add --article UUID --author UUID --reviewer UUID [--id UUID]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Usage: "revision id (generated when empty)", Destination: &id},
					&cli.StringFlag{Name: "article", Usage: "article id", Required: true, Destination: &article},
					&cli.StringFlag{Name: "author", Usage: "article author id", Required: true, Destination: &author},
					&cli.StringFlag{Name: "reviewer", Usage: "assigned reviewer id", Required: true, Destination: &reviewer},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					rev, err := parseRevision(id, article, author, reviewer, time.Now())
					if err != nil {
						return err
					}

					cfg, err := f.load()
					if err != nil {
						return err
					}

					store, err := openRevisionStorage(ctx, cfg)
					if err != nil {
						return err
					}
					defer store.Close()

					if err := store.SaveRevision(ctx, rev); err != nil {
						return fmt.Errorf("save revision: %w", err)
					}

					fmt.Fprintln(c.Root().Writer, rev.ID.String())
					return nil
				},
			},
		},
	}
}

// parseRevision собирает ревизию из аргументов командной строки.
func parseRevision(id, article, author, reviewer string, now time.Time) (models.Revision, error) {
	rev := models.Revision{CreatedAt: now.UTC().Truncate(time.Millisecond)}

	fields := []struct {
		name  string
		value string
		dst   *uuid.UUID
	}{
		{"article", article, &rev.ArticleID},
		{"author", author, &rev.AuthorID},
		{"reviewer", reviewer, &rev.ReviewerID},
	}
	for _, fl := range fields {
		v, err := uuid.Parse(fl.value)
		if err != nil {
			return models.Revision{}, fmt.Errorf("--%s must be a UUID: %w", fl.name, err)
		}
		*fl.dst = v
	}

	if id == "" {
		rev.ID = uuid.New()
		return rev, nil
	}

	v, err := uuid.Parse(id)
	if err != nil {
		return models.Revision{}, fmt.Errorf("--id must be a UUID: %w", err)
	}
	rev.ID = v

	return rev, nil
}

func openRevisionStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.DB.Driver == config.DriverMongo {
		m, err := rcmongo.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	pg, err := postgres.New(ctx, cfg.DB.URL)
	if err != nil {
		return nil, err
	}
	return pg, nil
}
