package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/policy"
	"github.com/pribylovaa/review-comments/internal/storage"
)

// rulesFor возвращает права роли вызывающего.
func rulesFor(lg *slog.Logger, op string, caller models.Caller) (policy.Rules, error) {
	if caller.ID == uuid.Nil {
		lg.Warn("invalid argument: empty caller id")
		return policy.Rules{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	rules, ok := policy.For(caller.Role)
	if !ok {
		lg.Warn("unknown role", "role", string(caller.Role))
		return policy.Rules{}, fmt.Errorf("%s: %w", op, ErrUnknownRole)
	}

	return rules, nil
}

// revisionFor загружает ревизию и проверяет доступ вызывающего к ней.
func (s *Service) revisionFor(ctx context.Context, lg *slog.Logger, op string, revisionID uuid.UUID, caller models.Caller) (*models.Revision, error) {
	if revisionID == uuid.Nil {
		lg.Warn("invalid argument: empty revision_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	rev, err := s.storage.RevisionByID(ctx, revisionID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("revision not found")
			return nil, fmt.Errorf("%s: %w", op, ErrRevisionNotFound)
		default:
			lg.Error("storage error on RevisionByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if !policy.CanAccessRevision(caller, *rev) {
		lg.Warn("no access to revision")
		return nil, fmt.Errorf("%s: %w", op, ErrNoRevisionAccess)
	}

	return rev, nil
}

// commentFor загружает не скрытый комментарий.
// Ответ под скрытым корнем считается скрытым вместе с веткой.
func (s *Service) commentFor(ctx context.Context, lg *slog.Logger, op string, id uuid.UUID) (*models.Comment, error) {
	if id == uuid.Nil {
		lg.Warn("invalid argument: empty comment id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		default:
			lg.Error("storage error on CommentByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if c.Hidden {
		lg.Warn("comment is hidden")
		return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
	}

	if c.IsRoot() {
		return c, nil
	}

	root, err := s.storage.CommentByID(ctx, *c.ReplyTo)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("thread root not found", "respuesta_a", c.ReplyTo.String())
			return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		default:
			lg.Error("storage error on CommentByID (root)", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if root.Hidden {
		lg.Warn("thread root is hidden", "respuesta_a", c.ReplyTo.String())
		return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
	}

	return c, nil
}

// normalizeContent обрезает пробелы и проверяет длину в рунах.
func (s *Service) normalizeContent(lg *slog.Logger, op, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		lg.Warn("invalid argument: empty content")
		return "", fmt.Errorf("%s: %w", op, ErrEmptyContent)
	}

	if s.limits.MaxContent > 0 && utf8.RuneCountInString(content) > s.limits.MaxContent {
		lg.Warn("invalid argument: content too long", "max", s.limits.MaxContent)
		return "", fmt.Errorf("%s: %w", op, ErrContentTooLong)
	}

	return content, nil
}

// statsScope — ключ области видимости для кэша агрегатов.
// Staff видят одно и то же; остальным privado виден построчно, поэтому ключ персональный.
func statsScope(caller models.Caller, rules policy.Rules) string {
	if rules.Staff {
		return "staff"
	}

	return string(caller.Role) + ":" + caller.ID.String()
}
