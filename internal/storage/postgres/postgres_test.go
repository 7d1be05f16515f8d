package postgres

// Интеграционные тесты пакета postgres:
// - поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяют встроенные миграции через Storage.Migrate;
// - проверяют ревизии, вставку с проверкой родителя, выдачу, правку, переключение и скрытие.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/pribylovaa/review-comments/internal/storage"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres — поднимает временный PostgreSQL, применяет миграции и возвращает хранилище.
// Если GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	st, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	_, err = st.Migrate(ctx)
	require.NoError(t, err)

	return st
}

func seedRevision(t *testing.T, st *Storage) models.Revision {
	t.Helper()
	rev := models.Revision{
		ID:         uuid.New(),
		ArticleID:  uuid.New(),
		AuthorID:   uuid.New(),
		ReviewerID: uuid.New(),
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, st.SaveRevision(context.Background(), rev))
	return rev
}

func newComment(revisionID uuid.UUID, replyTo *uuid.UUID, at time.Time) models.Comment {
	return models.Comment{
		ID:         uuid.New(),
		RevisionID: revisionID,
		AuthorID:   uuid.New(),
		AuthorName: "Ana",
		AuthorRole: models.RoleReviewer,
		Type:       models.VisibilityPublic,
		Content:    "texto",
		State:      models.StateActive,
		ReplyTo:    replyTo,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestIntegration_Migrate_Idempotent(t *testing.T) {
	st := startPostgres(t)

	applied, err := st.Migrate(context.Background())
	require.NoError(t, err)
	require.Empty(t, applied)
}

func TestIntegration_Revisions(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	rev := seedRevision(t, st)

	got, err := st.RevisionByID(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, rev.AuthorID, got.AuthorID)
	require.Equal(t, rev.ReviewerID, got.ReviewerID)
	require.WithinDuration(t, rev.CreatedAt, got.CreatedAt, time.Millisecond)

	require.ErrorIs(t, st.SaveRevision(ctx, rev), storage.ErrConflict)

	_, err = st.RevisionByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_CreateComment_ParentRules(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rev := seedRevision(t, st)
	other := seedRevision(t, st)

	root, err := st.CreateComment(ctx, newComment(rev.ID, nil, now))
	require.NoError(t, err)
	require.True(t, root.IsRoot())
	require.Equal(t, models.StateActive, root.State)

	reply, err := st.CreateComment(ctx, newComment(rev.ID, &root.ID, now.Add(time.Second)))
	require.NoError(t, err)
	require.Equal(t, root.ID, *reply.ReplyTo)

	// Ответ на ответ.
	_, err = st.CreateComment(ctx, newComment(rev.ID, &reply.ID, now.Add(2*time.Second)))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	// Родитель из другой ревизии.
	_, err = st.CreateComment(ctx, newComment(other.ID, &root.ID, now.Add(2*time.Second)))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	// Несуществующий родитель.
	missing := uuid.New()
	_, err = st.CreateComment(ctx, newComment(rev.ID, &missing, now))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	// Скрытый родитель.
	require.NoError(t, st.HideComment(ctx, root.ID))
	_, err = st.CreateComment(ctx, newComment(rev.ID, &root.ID, now.Add(3*time.Second)))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	// Повтор id.
	dup := newComment(rev.ID, nil, now)
	dup.ID = reply.ID
	_, err = st.CreateComment(ctx, dup)
	require.ErrorIs(t, err, storage.ErrConflict)

	// Несуществующая ревизия.
	_, err = st.CreateComment(ctx, newComment(uuid.New(), nil, now))
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListByRevision_OrderAndHidden(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rev := seedRevision(t, st)

	second, err := st.CreateComment(ctx, newComment(rev.ID, nil, now.Add(time.Minute)))
	require.NoError(t, err)
	first, err := st.CreateComment(ctx, newComment(rev.ID, nil, now))
	require.NoError(t, err)
	hidden, err := st.CreateComment(ctx, newComment(rev.ID, nil, now.Add(2*time.Minute)))
	require.NoError(t, err)
	require.NoError(t, st.HideComment(ctx, hidden.ID))

	// Чужая ревизия в выдачу не попадает.
	other := seedRevision(t, st)
	_, err = st.CreateComment(ctx, newComment(other.ID, nil, now))
	require.NoError(t, err)

	got, err := st.ListByRevision(ctx, rev.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first.ID, got[0].ID)
	require.Equal(t, second.ID, got[1].ID)

	// Скрытый по-прежнему читается по ID, но с флагом.
	h, err := st.CommentByID(ctx, hidden.ID)
	require.NoError(t, err)
	require.True(t, h.Hidden)

	require.ErrorIs(t, st.HideComment(ctx, hidden.ID), storage.ErrNotFound)
}

func TestIntegration_UpdateContent_And_ToggleState(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rev := seedRevision(t, st)
	c, err := st.CreateComment(ctx, newComment(rev.ID, nil, now))
	require.NoError(t, err)

	later := now.Add(time.Hour)
	upd, err := st.UpdateContent(ctx, c.ID, "nuevo", later)
	require.NoError(t, err)
	require.Equal(t, "nuevo", upd.Content)
	require.WithinDuration(t, now, upd.CreatedAt, time.Millisecond)
	require.WithinDuration(t, later, upd.UpdatedAt, time.Millisecond)
	require.True(t, upd.Edited())

	t1, err := st.ToggleState(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateResolved, t1.State)
	require.WithinDuration(t, later, t1.UpdatedAt, time.Millisecond)

	t2, err := st.ToggleState(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateActive, t2.State)

	_, err = st.ToggleState(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.HideComment(ctx, c.ID))
	_, err = st.UpdateContent(ctx, c.ID, "x", later)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = st.ToggleState(ctx, c.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Параллельные переключения не теряются: чётное число переключений возвращает исходное состояние.
func TestIntegration_ToggleState_Concurrent(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()

	rev := seedRevision(t, st)
	c, err := st.CreateComment(ctx, newComment(rev.ID, nil, time.Now().UTC()))
	require.NoError(t, err)

	const n = 10
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := st.ToggleState(ctx, c.ID)
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	got, err := st.CommentByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateActive, got.State)
}
