package mongo

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
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// mongoURI — адрес контейнера без имени БД; пусто, если интеграционные тесты выключены.
var mongoURI string

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Каждый тест работает в своей БД с уникальным именем (см. mustNewMongo).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	mongoURI = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной тестовой БД и регистрирует её удаление.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	if mongoURI == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	uri := mongoURI + "/comments_test_" + uuid.NewString()[:8]
	m, err := New(ctx, uri)
	require.NoError(t, err, "cannot connect to MongoDB in container (%s)", uri)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		m.Close()
	})

	return m
}

func seedRevision(t *testing.T, m *Mongo) models.Revision {
	t.Helper()
	rev := models.Revision{
		ID:         uuid.New(),
		ArticleID:  uuid.New(),
		AuthorID:   uuid.New(),
		ReviewerID: uuid.New(),
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, m.SaveRevision(context.Background(), rev))
	return rev
}

func newComment(revisionID uuid.UUID, replyTo *uuid.UUID, at time.Time) models.Comment {
	return models.Comment{
		ID:         uuid.New(),
		RevisionID: revisionID,
		AuthorID:   uuid.New(),
		AuthorName: "Luis",
		AuthorRole: models.RoleAuthor,
		Type:       models.VisibilityPrivate,
		Content:    "nota",
		State:      models.StateActive,
		ReplyTo:    replyTo,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func TestDatabaseFromURI(t *testing.T) {
	require.Equal(t, "reviews", databaseFromURI("mongodb://localhost:27017/reviews?replicaSet=rs0"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
}

// Документ хранит UUID строками и переживает конвертацию туда-обратно вместе с respuesta_a.
func TestCommentDoc_Model(t *testing.T) {
	parent := uuid.New()
	at := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	c := newComment(uuid.New(), &parent, at)

	doc := toCommentDoc(c)
	require.Equal(t, c.ID.String(), doc.ID)
	require.Equal(t, parent.String(), *doc.ReplyTo)
	require.Equal(t, at.Truncate(time.Millisecond), doc.CreatedAt)

	back, err := doc.model()
	require.NoError(t, err)
	require.Equal(t, c.ID, back.ID)
	require.Equal(t, parent, *back.ReplyTo)
	require.Equal(t, models.VisibilityPrivate, back.Type)

	doc.AuthorID = "not-a-uuid"
	_, err = doc.model()
	require.Error(t, err)
}

func TestIntegration_Revisions(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()

	rev := seedRevision(t, m)

	got, err := m.RevisionByID(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, rev.ReviewerID, got.ReviewerID)

	require.ErrorIs(t, m.SaveRevision(ctx, rev), storage.ErrConflict)

	_, err = m.RevisionByID(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_CreateComment_ParentRules(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rev := seedRevision(t, m)
	other := seedRevision(t, m)

	root, err := m.CreateComment(ctx, newComment(rev.ID, nil, now))
	require.NoError(t, err)

	reply, err := m.CreateComment(ctx, newComment(rev.ID, &root.ID, now.Add(time.Second)))
	require.NoError(t, err)
	require.Equal(t, root.ID, *reply.ReplyTo)

	_, err = m.CreateComment(ctx, newComment(rev.ID, &reply.ID, now))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	_, err = m.CreateComment(ctx, newComment(other.ID, &root.ID, now))
	require.ErrorIs(t, err, storage.ErrParentInvalid)

	_, err = m.CreateComment(ctx, newComment(uuid.New(), nil, now))
	require.ErrorIs(t, err, storage.ErrNotFound)

	dup := newComment(rev.ID, nil, now)
	dup.ID = root.ID
	_, err = m.CreateComment(ctx, dup)
	require.ErrorIs(t, err, storage.ErrConflict)

	require.NoError(t, m.HideComment(ctx, root.ID))
	_, err = m.CreateComment(ctx, newComment(rev.ID, &root.ID, now))
	require.ErrorIs(t, err, storage.ErrParentInvalid)
}

func TestIntegration_ListUpdateToggleHide(t *testing.T) {
	m := mustNewMongo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rev := seedRevision(t, m)

	second, err := m.CreateComment(ctx, newComment(rev.ID, nil, now.Add(time.Minute)))
	require.NoError(t, err)
	first, err := m.CreateComment(ctx, newComment(rev.ID, nil, now))
	require.NoError(t, err)

	list, err := m.ListByRevision(ctx, rev.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, first.ID, list[0].ID)
	require.Equal(t, second.ID, list[1].ID)

	later := now.Add(time.Hour)
	upd, err := m.UpdateContent(ctx, first.ID, "editado", later)
	require.NoError(t, err)
	require.Equal(t, "editado", upd.Content)
	require.WithinDuration(t, later, upd.UpdatedAt, time.Millisecond)
	require.WithinDuration(t, now, upd.CreatedAt, time.Millisecond)

	t1, err := m.ToggleState(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateResolved, t1.State)
	require.WithinDuration(t, later, t1.UpdatedAt, time.Millisecond)

	t2, err := m.ToggleState(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateActive, t2.State)

	require.NoError(t, m.HideComment(ctx, second.ID))
	require.ErrorIs(t, m.HideComment(ctx, second.ID), storage.ErrNotFound)

	list, err = m.ListByRevision(ctx, rev.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	hidden, err := m.CommentByID(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, hidden.Hidden)

	_, err = m.ToggleState(ctx, second.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, err = m.UpdateContent(ctx, uuid.New(), "x", later)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
