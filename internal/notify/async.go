package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Async — in-process очередь с пулом воркеров поверх Sender.
// Используется, когда нет PostgreSQL для river (бэкенд MongoDB): события не переживают рестарт.
type Async struct {
	sender  Sender
	logger  *slog.Logger
	timeout time.Duration
	queue   chan Event

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewAsync создаёт очередь ёмкостью buffer; воркеры запускаются в Start.
func NewAsync(sender Sender, logger *slog.Logger, timeout time.Duration, buffer int) *Async {
	if buffer <= 0 {
		buffer = 1
	}

	return &Async{
		sender:  sender,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan Event, buffer),
	}
}

// Dispatch не блокируется: при заполненной очереди возвращает ErrQueueFull,
// после Stop — ErrStopped.
func (a *Async) Dispatch(_ context.Context, ev Event) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.stopped {
		return ErrStopped
	}

	select {
	case a.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start запускает workers воркеров. Они дорабатывают очередь после Stop.
func (a *Async) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			for ev := range a.queue {
				a.deliver(ev)
			}
		}()
	}
}

// Stop закрывает очередь и ждёт воркеров или отмены ctx.
func (a *Async) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.stopped {
		a.stopped = true
		close(a.queue)
	}
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Async) deliver(ev Event) {
	ctx := context.Background()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.sender.Send(ctx, ev); err != nil {
		a.logger.Warn("notification delivery failed",
			"comment_id", ev.CommentID.String(),
			"revision_id", ev.RevisionID.String(),
			"err", err,
		)
		return
	}

	a.logger.Debug("notification delivered", "comment_id", ev.CommentID.String())
}
