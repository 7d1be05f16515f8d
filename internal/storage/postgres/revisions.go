package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
)

// RevisionByID находит ревизию по ID.
func (s *Storage) RevisionByID(ctx context.Context, id uuid.UUID) (*models.Revision, error) {
	const op = "storage.postgres.RevisionByID"

	query := `
		SELECT id, articulo_id, autor_id, revisor_id, fecha_creacion
		FROM revisions
		WHERE id = $1
	`

	var rev models.Revision
	err := s.db.QueryRow(ctx, query, id).Scan(
		&rev.ID,
		&rev.ArticleID,
		&rev.AuthorID,
		&rev.ReviewerID,
		&rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rev.CreatedAt = rev.CreatedAt.UTC()

	return &rev, nil
}

// SaveRevision регистрирует ревизию.
func (s *Storage) SaveRevision(ctx context.Context, rev models.Revision) error {
	const op = "storage.postgres.SaveRevision"

	query := `
		INSERT INTO revisions (id, articulo_id, autor_id, revisor_id, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Exec(ctx, query, rev.ID, rev.ArticleID, rev.AuthorID, rev.ReviewerID, rev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
