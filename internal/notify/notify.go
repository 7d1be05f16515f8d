// notify доставляет события о новых комментариях во внешний webhook
// (уведомления авторам/рецензентам строит принимающая сторона).
// Ошибки доставки никогда не влияют на исходный запрос: вызывающий их только логирует.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/review-comments/internal/models"
)

var (
	// ErrQueueFull — асинхронная очередь переполнена, событие отброшено.
	ErrQueueFull = errors.New("notification queue is full")
	// ErrStopped — очередь уже остановлена.
	ErrStopped = errors.New("notification queue is stopped")
)

// EventCommentCreated — единственный пока тип события.
const EventCommentCreated = "comment.created"

// Event — полезная нагрузка уведомления. Текст комментария не передаётся:
// получатель сам читает его с учётом прав.
type Event struct {
	Type       string            `json:"type"`
	CommentID  uuid.UUID         `json:"comment_id"`
	RevisionID uuid.UUID         `json:"revision_id"`
	AuthorID   uuid.UUID         `json:"autor_id"`
	AuthorRole models.Role       `json:"autor_rol"`
	Visibility models.Visibility `json:"tipo"`
	ReplyTo    *uuid.UUID        `json:"respuesta_a,omitempty"`
	CreatedAt  time.Time         `json:"fecha_creacion"`
}

// CommentCreated собирает событие из сохранённого комментария.
func CommentCreated(c *models.Comment) Event {
	return Event{
		Type:       EventCommentCreated,
		CommentID:  c.ID,
		RevisionID: c.RevisionID,
		AuthorID:   c.AuthorID,
		AuthorRole: c.AuthorRole,
		Visibility: c.Type,
		ReplyTo:    c.ReplyTo,
		CreatedAt:  c.CreatedAt,
	}
}

// Dispatcher ставит событие на доставку. Не должен блокироваться на сетевом вызове.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

// Sender — синхронная доставка одного события.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

// Webhook отправляет событие POST-запросом с JSON-телом.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook создаёт отправителя с таймаутом на запрос.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{url: url, client: &http.Client{Timeout: timeout}}
}

// Send возвращает ошибку на сетевой сбой и на любой не-2xx ответ.
func (w *Webhook) Send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", ev.Type)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: webhook responded %d", resp.StatusCode)
	}

	return nil
}
