package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
)

const commentColumns = `id, revision_id, autor_id, autor_nombre, autor_rol, tipo, contenido,
	estado, respuesta_a, oculto, fecha_creacion, fecha_actualizacion`

// scanComment читает строку в порядке commentColumns (pgx.Row и pgx.Rows).
func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.RevisionID,
		&c.AuthorID,
		&c.AuthorName,
		&c.AuthorRole,
		&c.Type,
		&c.Content,
		&c.State,
		&c.ReplyTo,
		&c.Hidden,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()

	return &c, nil
}

// CreateComment вставляет комментарий одной командой.
// Для ответа условие на родителя проверяется в том же INSERT ... SELECT ... WHERE:
// родитель блокируется FOR SHARE, чтобы параллельное скрытие не проскочило между проверкой и вставкой.
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage.postgres.CreateComment"

	query := `
		INSERT INTO comments (` + commentColumns + `)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::text, $7::text, $8::text,
		       $9::uuid, FALSE, $10::timestamptz, $11::timestamptz
		WHERE $9::uuid IS NULL OR EXISTS (
			SELECT 1 FROM comments p
			WHERE p.id = $9::uuid
			  AND p.revision_id = $2::uuid
			  AND p.respuesta_a IS NULL
			  AND NOT p.oculto
			FOR SHARE
		)
		RETURNING ` + commentColumns

	out, err := scanComment(s.db.QueryRow(ctx, query,
		comment.ID,
		comment.RevisionID,
		comment.AuthorID,
		comment.AuthorName,
		comment.AuthorRole,
		comment.Type,
		comment.Content,
		comment.State,
		comment.ReplyTo,
		comment.CreatedAt,
		comment.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentInvalid)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
			case pgerrcode.ForeignKeyViolation:
				// revision_id ссылается на несуществующую ревизию.
				return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CommentByID находит комментарий по ID (включая скрытые).
func (s *Storage) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const op = "storage.postgres.CommentByID"

	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	out, err := scanComment(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListByRevision возвращает все видимые комментарии ревизии (created ASC, id ASC).
func (s *Storage) ListByRevision(ctx context.Context, revisionID uuid.UUID) ([]models.Comment, error) {
	const op = "storage.postgres.ListByRevision"

	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE revision_id = $1 AND NOT oculto
		ORDER BY fecha_creacion ASC, id ASC
	`

	rows, err := s.db.Query(ctx, query, revisionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateContent меняет текст и fecha_actualizacion не скрытого комментария.
func (s *Storage) UpdateContent(ctx context.Context, id uuid.UUID, content string, at time.Time) (*models.Comment, error) {
	const op = "storage.postgres.UpdateContent"

	query := `
		UPDATE comments
		SET contenido = $2, fecha_actualizacion = $3
		WHERE id = $1 AND NOT oculto
		RETURNING ` + commentColumns

	out, err := scanComment(s.db.QueryRow(ctx, query, id, content, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ToggleState переключает estado одной командой UPDATE ... CASE, без чтения перед записью.
func (s *Storage) ToggleState(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	const op = "storage.postgres.ToggleState"

	query := `
		UPDATE comments
		SET estado = CASE estado WHEN 'activo' THEN 'resuelto' ELSE 'activo' END
		WHERE id = $1 AND NOT oculto
		RETURNING ` + commentColumns

	out, err := scanComment(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// HideComment помечает комментарий скрытым (oculto = TRUE).
func (s *Storage) HideComment(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.HideComment"

	cmdTag, err := s.db.Exec(ctx, `UPDATE comments SET oculto = TRUE WHERE id = $1 AND NOT oculto`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
