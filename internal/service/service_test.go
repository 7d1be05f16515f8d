package service

// Тесты сервисного слоя (internal/service).
//
//  Проверяем:
//  - матрицу прав в операциях (создание, правка, смена состояния, скрытие);
//  - построение веток и пагинацию выдачи;
//  - маппинг ошибок storage -> service;
//  - побочные эффекты: сброс кэша статистики, уведомления, метрики.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   mockgen -source=./internal/cache/cache.go -destination=./mocks/cache.go -package=mocks
//   mockgen -source=./internal/notify/notify.go -destination=./mocks/notify.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/config"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
	"github.com/pribylovaa/review-comments/mocks"
)

var testLimits = config.LimitsConfig{Default: 2, Max: 3, MaxContent: 50}

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// newServiceWithMocks — поднимает сервис с моками стораджа и фиксированными часами.
func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	s := New(ms, testLimits)
	s.now = func() time.Time { return baseTime }
	return s, ms, ctrl
}

// fixture — ревизия с автором, рецензентом и администратором.
type fixture struct {
	rev      models.Revision
	author   models.Caller
	reviewer models.Caller
	editor   models.Caller
	admin    models.Caller
	outsider models.Caller
}

func newFixture() fixture {
	f := fixture{
		author:   models.Caller{ID: uuid.New(), Name: "Ana", Role: models.RoleAuthor},
		reviewer: models.Caller{ID: uuid.New(), Name: "Rui", Role: models.RoleReviewer},
		editor:   models.Caller{ID: uuid.New(), Name: "Eva", Role: models.RoleEditor},
		admin:    models.Caller{ID: uuid.New(), Name: "Max", Role: models.RoleAdmin},
		outsider: models.Caller{ID: uuid.New(), Name: "Otto", Role: models.RoleAuthor},
	}
	f.rev = models.Revision{
		ID:         uuid.New(),
		ArticleID:  uuid.New(),
		AuthorID:   f.author.ID,
		ReviewerID: f.reviewer.ID,
		CreatedAt:  baseTime,
	}
	return f
}

// comment — быстрый хелпер для сборки комментария.
func comment(rev uuid.UUID, author models.Caller, tipo models.Visibility, replyTo *uuid.UUID, offset time.Duration) models.Comment {
	at := baseTime.Add(offset)
	return models.Comment{
		ID:         uuid.New(),
		RevisionID: rev,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		Type:       tipo,
		Content:    "texto",
		State:      models.StateActive,
		ReplyTo:    replyTo,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

// memStore — состояние, через которое сценарные тесты связывают ожидания мока.
// Повторяет контракт storage.Storage: скрытые комментарии не попадают в ListByRevision,
// родитель проверяется при вставке.
type memStore struct {
	mu        sync.Mutex
	revisions map[uuid.UUID]models.Revision
	comments  map[uuid.UUID]models.Comment
}

func newMemStore(ms *mocks.MockStorage, revs ...models.Revision) *memStore {
	m := &memStore{
		revisions: make(map[uuid.UUID]models.Revision),
		comments:  make(map[uuid.UUID]models.Comment),
	}
	for _, r := range revs {
		m.revisions[r.ID] = r
	}

	ms.EXPECT().RevisionByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (*models.Revision, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			r, ok := m.revisions[id]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return &r, nil
		}).AnyTimes()

	ms.EXPECT().CommentByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.comments[id]
			if !ok {
				return nil, storage.ErrNotFound
			}
			return &c, nil
		}).AnyTimes()

	ms.EXPECT().CreateComment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c models.Comment) (*models.Comment, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.revisions[c.RevisionID]; !ok {
				return nil, storage.ErrNotFound
			}
			if c.ReplyTo != nil {
				p, ok := m.comments[*c.ReplyTo]
				if !ok || p.Hidden || !p.IsRoot() || p.RevisionID != c.RevisionID {
					return nil, storage.ErrParentInvalid
				}
			}
			m.comments[c.ID] = c
			return &c, nil
		}).AnyTimes()

	ms.EXPECT().ListByRevision(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, revisionID uuid.UUID) ([]models.Comment, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			out := make([]models.Comment, 0, len(m.comments))
			for _, c := range m.comments {
				if c.RevisionID == revisionID && !c.Hidden {
					out = append(out, c)
				}
			}
			return out, nil
		}).AnyTimes()

	ms.EXPECT().UpdateContent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID, content string, at time.Time) (*models.Comment, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.comments[id]
			if !ok || c.Hidden {
				return nil, storage.ErrNotFound
			}
			c.Content = content
			c.UpdatedAt = at
			m.comments[id] = c
			return &c, nil
		}).AnyTimes()

	ms.EXPECT().ToggleState(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) (*models.Comment, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.comments[id]
			if !ok || c.Hidden {
				return nil, storage.ErrNotFound
			}
			c.State = c.State.Toggled()
			m.comments[id] = c
			return &c, nil
		}).AnyTimes()

	ms.EXPECT().HideComment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id uuid.UUID) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			c, ok := m.comments[id]
			if !ok || c.Hidden {
				return storage.ErrNotFound
			}
			c.Hidden = true
			m.comments[id] = c
			return nil
		}).AnyTimes()

	return m
}

func (m *memStore) put(cs ...models.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cs {
		m.comments[c.ID] = c
	}
}

// useTickingClock — монотонные часы для сценариев, где важен порядок создания.
func (s *Service) useTickingClock() {
	var mu sync.Mutex
	cur := baseTime
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}
