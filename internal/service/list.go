package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/policy"
	"github.com/pribylovaa/review-comments/pkg/log"
)

// ListComments — ветки комментариев ревизии, видимые вызывающему.
//
// Правила:
//   - корни и ответы упорядочены по fecha_creacion (ASC), при равенстве по id;
//   - ответ выдаётся только вместе с видимым корнем;
//   - Total и агрегаты считают ровно те комментарии, что попадают в выдачу без пагинации;
//   - пагинация идёт по корням: PageSize == 0 без токена — все ветки,
//     с токеном — limits.Default; больше limits.Max — обрезается.
//
// Поведение/ошибки:
//   - ErrRevisionNotFound / ErrNoRevisionAccess — как у остальных операций;
//   - ErrInvalidArgument — отрицательный PageSize;
//   - ErrInvalidCursor — битый PageToken;
//   - ErrInternal — ошибка хранилища.
func (s *Service) ListComments(ctx context.Context, caller models.Caller, revisionID uuid.UUID, params models.ListParams) (*models.CommentList, error) {
	const op = "service/list/ListComments"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "revision_id", revisionID.String())

	rules, err := rulesFor(lg, op, caller)
	if err != nil {
		return nil, err
	}

	if params.PageSize < 0 {
		lg.Warn("invalid argument: negative page_size", "page_size", params.PageSize)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var after *cursor
	if params.PageToken != "" {
		cur, err := decodeCursor(params.PageToken)
		if err != nil {
			lg.Warn("invalid page_token", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		}
		after = &cur
	}

	threads, err := s.visibleThreads(ctx, lg, op, revisionID, caller)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, t := range threads {
		total += 1 + len(t.Replies)
	}

	page, next := s.paginate(threads, after, params.PageSize)

	return &models.CommentList{
		Comments:      page,
		Permissions:   rules.Permissions(),
		AllowedTypes:  rules.AllowedTypes(),
		Total:         total,
		NextPageToken: next,
	}, nil
}

// Statistics — агрегаты по комментариям, видимым вызывающему.
// Кэш необязателен; его ошибки логируются и не влияют на ответ.
func (s *Service) Statistics(ctx context.Context, caller models.Caller, revisionID uuid.UUID) (*models.Stats, error) {
	const op = "service/list/Statistics"

	lg := log.From(ctx).With("op", op, "caller_id", caller.ID.String(), "revision_id", revisionID.String())

	rules, err := rulesFor(lg, op, caller)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisionFor(ctx, lg, op, revisionID, caller); err != nil {
		return nil, err
	}

	scope := statsScope(caller, rules)

	var (
		version   int64
		cacheable bool
	)
	if s.stats != nil {
		st, v, ok, err := s.stats.Get(ctx, revisionID, scope)
		switch {
		case err != nil:
			// версия неизвестна: запись под ней никто не прочитает
			lg.Warn("stats cache get failed", "err", err)
		case ok:
			return st, nil
		default:
			version, cacheable = v, true
		}
	}

	threads, err := s.loadThreads(ctx, lg, revisionID, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st := &models.Stats{}
	for _, t := range threads {
		st.Add(t.Comment)
		for _, r := range t.Replies {
			st.Add(r)
		}
	}

	if cacheable {
		if err := s.stats.Set(ctx, revisionID, scope, version, st); err != nil {
			lg.Warn("stats cache set failed", "err", err)
		}
	}

	return st, nil
}

// visibleThreads проверяет доступ к ревизии и строит видимый лес.
func (s *Service) visibleThreads(ctx context.Context, lg *slog.Logger, op string, revisionID uuid.UUID, caller models.Caller) ([]models.CommentThread, error) {
	if _, err := s.revisionFor(ctx, lg, op, revisionID, caller); err != nil {
		return nil, err
	}

	threads, err := s.loadThreads(ctx, lg, revisionID, caller)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return threads, nil
}

func (s *Service) loadThreads(ctx context.Context, lg *slog.Logger, revisionID uuid.UUID, caller models.Caller) ([]models.CommentThread, error) {
	all, err := s.storage.ListByRevision(ctx, revisionID)
	if err != nil {
		lg.Error("storage error on ListByRevision", "err", err)
		return nil, ErrInternal
	}

	return buildThreads(caller, all), nil
}

// buildThreads оставляет видимые комментарии и собирает ветки в один уровень.
// Ответ на невидимый (или отсутствующий) корень отбрасывается.
func buildThreads(caller models.Caller, all []models.Comment) []models.CommentThread {
	visible := make([]models.Comment, 0, len(all))
	for _, c := range all {
		if policy.Visible(caller, c) {
			visible = append(visible, c)
		}
	}
	slices.SortFunc(visible, compareComments)

	index := make(map[uuid.UUID]int)
	threads := make([]models.CommentThread, 0)

	for _, c := range visible {
		if c.IsRoot() {
			index[c.ID] = len(threads)
			threads = append(threads, models.CommentThread{Comment: c, Replies: []models.Comment{}})
		}
	}

	for _, c := range visible {
		if c.IsRoot() {
			continue
		}

		i, ok := index[*c.ReplyTo]
		if !ok {
			continue
		}
		threads[i].Replies = append(threads[i].Replies, c)
	}

	return threads
}

// paginate отдаёт страницу корней строго после курсора.
func (s *Service) paginate(threads []models.CommentThread, after *cursor, size int32) ([]models.CommentThread, string) {
	start := 0
	if after != nil {
		start = len(threads)
		for i, t := range threads {
			if compareKeys(cursorOf(t.Comment), *after) > 0 {
				start = i
				break
			}
		}
	}
	rest := threads[start:]

	limit := size
	switch {
	case limit == 0 && after == nil:
		return rest, ""
	case limit == 0:
		// продолжение обхода без page_size
		limit = s.limits.Default
	}
	if s.limits.Max > 0 && limit > s.limits.Max {
		limit = s.limits.Max
	}
	if limit <= 0 {
		return rest, ""
	}

	if len(rest) <= int(limit) {
		return rest, ""
	}

	page := rest[:limit]
	return page, encodeCursor(cursorOf(page[len(page)-1].Comment))
}
