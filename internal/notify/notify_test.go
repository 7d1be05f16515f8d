package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
	"github.com/stretchr/testify/require"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() Event {
	parent := uuid.New()
	return CommentCreated(&models.Comment{
		ID:         uuid.New(),
		RevisionID: uuid.New(),
		AuthorID:   uuid.New(),
		AuthorRole: models.RoleReviewer,
		Type:       models.VisibilityPublic,
		Content:    "no debe viajar",
		ReplyTo:    &parent,
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
}

// fakeSender — потокобезопасный Sender для тестов очереди.
type fakeSender struct {
	mu   sync.Mutex
	got  []Event
	err  error
	hold chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, ev Event) error {
	if f.hold != nil {
		<-f.hold
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, ev)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

func TestWebhook_Send_OK(t *testing.T) {
	ev := sampleEvent()

	var (
		gotBody   map[string]any
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	require.NoError(t, NewWebhook(srv.URL, time.Second).Send(context.Background(), ev))

	require.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	require.Equal(t, EventCommentCreated, gotHeader.Get("X-Event-Type"))
	require.Equal(t, ev.CommentID.String(), gotBody["comment_id"])
	require.Equal(t, "publico", gotBody["tipo"])
	require.Equal(t, ev.ReplyTo.String(), gotBody["respuesta_a"])
	require.NotContains(t, gotBody, "contenido")
}

func TestWebhook_Send_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, time.Second).Send(context.Background(), sampleEvent())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestWebhook_Send_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, 20*time.Millisecond).Send(context.Background(), sampleEvent())
	require.Error(t, err)
}

func TestAsync_DeliversAll(t *testing.T) {
	fs := &fakeSender{}
	a := NewAsync(fs, silentLogger(), time.Second, 16)
	a.Start(3)

	for i := 0; i < 10; i++ {
		require.NoError(t, a.Dispatch(context.Background(), sampleEvent()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Stop(ctx))
	require.Equal(t, 10, fs.count())

	require.ErrorIs(t, a.Dispatch(context.Background(), sampleEvent()), ErrStopped)
	// Повторный Stop безопасен.
	require.NoError(t, a.Stop(ctx))
}

// Ошибки отправителя только логируются и не останавливают воркеры.
func TestAsync_SenderErrorsAreSwallowed(t *testing.T) {
	fs := &fakeSender{err: errors.New("boom")}
	a := NewAsync(fs, silentLogger(), time.Second, 4)
	a.Start(1)

	require.NoError(t, a.Dispatch(context.Background(), sampleEvent()))
	require.NoError(t, a.Dispatch(context.Background(), sampleEvent()))

	require.NoError(t, a.Stop(context.Background()))
	require.Equal(t, 2, fs.count())
}

func TestAsync_QueueFull(t *testing.T) {
	fs := &fakeSender{hold: make(chan struct{})}
	a := NewAsync(fs, silentLogger(), time.Second, 1)
	// Воркеров нет: первое событие занимает буфер, второе не помещается.
	require.NoError(t, a.Dispatch(context.Background(), sampleEvent()))
	require.ErrorIs(t, a.Dispatch(context.Background(), sampleEvent()), ErrQueueFull)

	close(fs.hold)
	a.Start(1)
	require.NoError(t, a.Stop(context.Background()))
	require.Equal(t, 1, fs.count())
}

