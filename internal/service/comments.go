package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/metrics"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/notify"
	"github.com/pribylovaa/review-comments/internal/policy"
	"github.com/pribylovaa/review-comments/internal/storage"
	"github.com/pribylovaa/review-comments/pkg/log"
)

// CreateComment — бизнес-операция создания комментария.
//
// Поведение/ошибки:
//   - ErrRevisionNotFound — ревизии нет;
//   - ErrNoRevisionAccess — у вызывающего нет доступа к ревизии;
//   - ErrUnknownType / ErrTypeNotAllowed — tipo не распознан / не разрешён роли;
//   - ErrEmptyContent / ErrContentTooLong — после TrimSpace текст пуст / слишком длинный;
//   - ErrInvalidParent — родитель не найден, скрыт, из другой ревизии, не корень или не виден;
//   - ErrInternal — прочие ошибки хранилища.
//
// После записи сбрасывается кэш статистики и ставится уведомление; их сбои только логируются.
func (s *Service) CreateComment(ctx context.Context, caller models.Caller, in models.CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	lg := log.From(ctx).With(
		"op", op,
		"caller_id", caller.ID.String(),
		"revision_id", in.RevisionID.String(),
	)

	rules, err := rulesFor(lg, op, caller)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisionFor(ctx, lg, op, in.RevisionID, caller); err != nil {
		return nil, err
	}

	if !rules.CanComment {
		lg.Warn("role cannot comment")
		return nil, fmt.Errorf("%s: %w", op, ErrCannotComment)
	}

	tipo, ok := models.ParseVisibility(in.Type)
	if !ok {
		lg.Warn("invalid argument: unknown tipo", "tipo", in.Type)
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownType)
	}

	if !rules.CanCreate(tipo) {
		lg.Warn("tipo not allowed for role", "tipo", string(tipo), "role", string(caller.Role))
		return nil, fmt.Errorf("%s: %w", op, ErrTypeNotAllowed)
	}

	content, err := s.normalizeContent(lg, op, in.Content)
	if err != nil {
		return nil, err
	}

	if in.ReplyTo != nil {
		if err := s.checkParent(ctx, caller, in.RevisionID, *in.ReplyTo); err != nil {
			lg.Warn("invalid parent", "respuesta_a", in.ReplyTo.String(), "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidParent)
		}
	}

	now := s.timestamp()
	comment := models.Comment{
		ID:         s.newID(),
		RevisionID: in.RevisionID,
		AuthorID:   caller.ID,
		AuthorName: caller.Name,
		AuthorRole: caller.Role,
		Type:       tipo,
		Content:    content,
		State:      models.StateActive,
		ReplyTo:    in.ReplyTo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := s.storage.CreateComment(ctx, comment)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentInvalid):
			lg.Warn("parent rejected at write time")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidParent)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("revision disappeared")
			return nil, fmt.Errorf("%s: %w", op, ErrRevisionNotFound)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("comment created", "comment_id", result.ID.String(), "tipo", string(result.Type))

	s.metrics.CommentCreated(string(result.Type))
	s.invalidateStats(ctx, result.RevisionID)
	s.dispatch(ctx, notify.CommentCreated(result))

	return result, nil
}

// checkParent проверяет родителя до записи; хранилище повторяет проверку атомарно со вставкой.
func (s *Service) checkParent(ctx context.Context, caller models.Caller, revisionID, parentID uuid.UUID) error {
	parent, err := s.storage.CommentByID(ctx, parentID)
	if err != nil {
		return err
	}

	switch {
	case parent.Hidden:
		return errors.New("parent is hidden")
	case parent.RevisionID != revisionID:
		return errors.New("parent belongs to another revision")
	case !parent.IsRoot():
		return errors.New("parent is a reply")
	case !policy.Visible(caller, *parent):
		return errors.New("parent is not visible to caller")
	}

	return nil
}

// UpdateComment — правка текста. Разрешена только автору, независимо от tipo и роли.
// fecha_actualizacion всегда строго позже fecha_creacion.
//
// Поведение/ошибки:
//   - ErrCommentNotFound — комментария нет или он скрыт;
//   - ErrNoRevisionAccess — у вызывающего больше нет доступа к ревизии;
//   - ErrNotAuthor — вызывающий не автор;
//   - ErrEmptyContent / ErrContentTooLong — как при создании;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) UpdateComment(ctx context.Context, caller models.Caller, id uuid.UUID, content string) (*models.Comment, error) {
	const op = "service/comments/UpdateComment"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "comment_id", id.String())

	if _, err := rulesFor(lg, op, caller); err != nil {
		return nil, err
	}

	current, err := s.commentFor(ctx, lg, op, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisionFor(ctx, lg, op, current.RevisionID, caller); err != nil {
		return nil, err
	}

	if current.AuthorID != caller.ID {
		lg.Warn("caller is not the author")
		return nil, fmt.Errorf("%s: %w", op, ErrNotAuthor)
	}

	content, err = s.normalizeContent(lg, op, content)
	if err != nil {
		return nil, err
	}

	// Правка в ту же миллисекунду, что и создание, не должна выглядеть как «не правился».
	at := s.timestamp()
	if !at.After(current.CreatedAt) {
		at = current.CreatedAt.Add(time.Millisecond)
	}

	result, err := s.storage.UpdateContent(ctx, id, content, at)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		default:
			lg.Error("storage error on UpdateContent", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// ToggleState — переключение activo <-> resuelto одной атомарной операцией хранилища.
// Повторный вызов возвращает исходное состояние. fecha_actualizacion не меняется.
//
// Поведение/ошибки:
//   - ErrCommentNotFound — комментария нет или он скрыт;
//   - ErrNoRevisionAccess / ErrCannotResolve / ErrCommentNotVisible — нет прав;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) ToggleState(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Comment, error) {
	const op = "service/comments/ToggleState"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "comment_id", id.String())

	rules, err := rulesFor(lg, op, caller)
	if err != nil {
		return nil, err
	}

	current, err := s.commentFor(ctx, lg, op, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisionFor(ctx, lg, op, current.RevisionID, caller); err != nil {
		return nil, err
	}

	if !rules.CanResolve {
		lg.Warn("role cannot resolve", "role", string(caller.Role))
		return nil, fmt.Errorf("%s: %w", op, ErrCannotResolve)
	}

	if !policy.Visible(caller, *current) {
		lg.Warn("comment not visible to caller")
		return nil, fmt.Errorf("%s: %w", op, ErrCommentNotVisible)
	}

	result, err := s.storage.ToggleState(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		default:
			lg.Error("storage error on ToggleState", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("comment state toggled", "estado", string(result.State))

	s.metrics.StateToggled(string(result.State))
	s.invalidateStats(ctx, result.RevisionID)

	return result, nil
}

// DeleteComment — мягкое скрытие (oculto). Разрешено автору и staff.
// Скрытый корень убирает из выдачи всю ветку; ответы остаются в хранилище.
//
// Поведение/ошибки:
//   - ErrCommentNotFound — комментария нет или он уже скрыт;
//   - ErrCannotHide — вызывающий не автор и не staff;
//   - ErrInternal — прочие ошибки хранилища.
func (s *Service) DeleteComment(ctx context.Context, caller models.Caller, id uuid.UUID) error {
	const op = "service/comments/DeleteComment"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "comment_id", id.String())

	rules, err := rulesFor(lg, op, caller)
	if err != nil {
		return err
	}

	current, err := s.commentFor(ctx, lg, op, id)
	if err != nil {
		return err
	}

	if current.AuthorID != caller.ID && !rules.Staff {
		lg.Warn("caller cannot hide comment")
		return fmt.Errorf("%s: %w", op, ErrCannotHide)
	}

	if err := s.storage.HideComment(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrCommentNotFound)
		default:
			lg.Error("storage error on HideComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("comment hidden")
	s.invalidateStats(ctx, current.RevisionID)

	return nil
}

// CommentByID — чтение одного комментария с теми же проверками доступа, что и у выдачи.
func (s *Service) CommentByID(ctx context.Context, caller models.Caller, id uuid.UUID) (*models.Comment, error) {
	const op = "service/comments/CommentByID"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "comment_id", id.String())

	if _, err := rulesFor(lg, op, caller); err != nil {
		return nil, err
	}

	c, err := s.commentFor(ctx, lg, op, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisionFor(ctx, lg, op, c.RevisionID, caller); err != nil {
		return nil, err
	}

	if !policy.Visible(caller, *c) {
		lg.Warn("comment not visible to caller")
		return nil, fmt.Errorf("%s: %w", op, ErrCommentNotVisible)
	}

	return c, nil
}

// invalidateStats сбрасывает кэш агрегатов ревизии; ошибка не влияет на запрос.
func (s *Service) invalidateStats(ctx context.Context, revisionID uuid.UUID) {
	if s.stats == nil {
		return
	}

	if err := s.stats.Invalidate(ctx, revisionID); err != nil {
		log.From(ctx).Warn("stats cache invalidate failed", "revision_id", revisionID.String(), "err", err)
	}
}

// dispatch ставит уведомление; ошибка не влияет на запрос.
func (s *Service) dispatch(ctx context.Context, ev notify.Event) {
	if s.notifier == nil {
		s.metrics.NotificationEnqueued(metrics.NotifySkipped)
		return
	}

	if err := s.notifier.Dispatch(ctx, ev); err != nil {
		s.metrics.NotificationEnqueued(metrics.NotifyFailed)
		log.From(ctx).Warn("notification dispatch failed", "comment_id", ev.CommentID.String(), "err", err)
		return
	}

	s.metrics.NotificationEnqueued(metrics.NotifyOK)
}
