package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

// maxAttempts — сколько раз river повторит доставку с экспоненциальной паузой.
const maxAttempts = 8

// CommentCreatedArgs — аргументы задания river.
type CommentCreatedArgs struct {
	Event Event `json:"event"`
}

// Kind возвращает тип задания для river.
func (CommentCreatedArgs) Kind() string {
	return "comment_created_webhook"
}

// InsertOpts — ограничение числа попыток по умолчанию.
func (CommentCreatedArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: maxAttempts}
}

// WebhookWorker доставляет событие; ошибка — повтор по политике river.
type WebhookWorker struct {
	river.WorkerDefaults[CommentCreatedArgs]
	sender  Sender
	timeout time.Duration
}

// Timeout — дедлайн одной попытки.
func (w *WebhookWorker) Timeout(*river.Job[CommentCreatedArgs]) time.Duration {
	return w.timeout
}

func (w *WebhookWorker) Work(ctx context.Context, job *river.Job[CommentCreatedArgs]) error {
	if err := w.sender.Send(ctx, job.Args.Event); err != nil {
		return fmt.Errorf("deliver %s (attempt %d): %w", job.Args.Event.CommentID, job.Attempt, err)
	}

	return nil
}

// RiverQueue — устойчивая очередь уведомлений в той же PostgreSQL, что и комментарии.
type RiverQueue struct {
	client *river.Client[pgx.Tx]
}

// NewRiverQueue создаёт клиента river с одним воркером доставки.
// Таблицы river должны существовать (MigrateQueue / commentsctl migrate).
func NewRiverQueue(pool *pgxpool.Pool, sender Sender, logger *slog.Logger, maxWorkers int, timeout time.Duration) (*RiverQueue, error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, &WebhookWorker{sender: sender, timeout: timeout})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("notify: create river client: %w", err)
	}

	return &RiverQueue{client: client}, nil
}

// Start запускает воркеры river.
func (q *RiverQueue) Start(ctx context.Context) error {
	return q.client.Start(ctx)
}

// Stop дожидается текущих заданий.
func (q *RiverQueue) Stop(ctx context.Context) error {
	return q.client.Stop(ctx)
}

// Dispatch ставит задание в очередь (одна INSERT-команда).
func (q *RiverQueue) Dispatch(ctx context.Context, ev Event) error {
	if _, err := q.client.Insert(ctx, CommentCreatedArgs{Event: ev}, nil); err != nil {
		return fmt.Errorf("notify: enqueue: %w", err)
	}

	return nil
}

// MigrateQueue применяет миграции схемы river. Возвращает номера применённых версий.
func MigrateQueue(ctx context.Context, pool *pgxpool.Pool) ([]int, error) {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return nil, fmt.Errorf("notify: river migrator: %w", err)
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil)
	if err != nil {
		return nil, fmt.Errorf("notify: river migrate: %w", err)
	}

	versions := make([]int, 0, len(res.Versions))
	for _, v := range res.Versions {
		versions = append(versions, v.Version)
	}

	return versions, nil
}

var (
	_ Dispatcher = (*RiverQueue)(nil)
	_ Dispatcher = (*Async)(nil)
)
