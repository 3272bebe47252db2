package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"conferencecentral/internal/domain"
)

const (
	defaultBuffer   = 256
	defaultAttempts = 3
	retryDelay      = time.Second
)

type task struct {
	id     string
	name   string
	params map[string]string
}

// Queue is an in-process domain.TaskQueue: buffered channel, fixed worker
// pool, at-least-once delivery with a bounded retry. Handlers are registered
// per task name before Start.
type Queue struct {
	mu       sync.RWMutex
	handlers map[string]domain.TaskHandler
	tasks    chan task
	logger   *slog.Logger
	wg       sync.WaitGroup
	started  bool
}

func NewQueue(logger *slog.Logger) *Queue {
	return &Queue{
		handlers: make(map[string]domain.TaskHandler),
		tasks:    make(chan task, defaultBuffer),
		logger:   logger,
	}
}

// Register binds a handler to a task name. Registering after Start is a
// programming error.
func (q *Queue) Register(name string, handler domain.TaskHandler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		panic("tasks: Register called after Start")
	}
	q.handlers[name] = handler
}

// Start launches the worker pool. Workers stop when ctx is cancelled.
func (q *Queue) Start(ctx context.Context, workers int) {
	q.mu.Lock()
	q.started = true
	q.mu.Unlock()

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
}

// Wait blocks until all workers have exited.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) Enqueue(ctx context.Context, name string, params map[string]string) error {
	q.mu.RLock()
	_, ok := q.handlers[name]
	q.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no handler registered for task %q", name)
	}

	// Non-blocking: a full buffer fails the enqueue instead of stalling the
	// request path.
	t := task{id: uuid.NewString(), name: name, params: params}
	select {
	case q.tasks <- t:
		q.logger.Debug("task enqueued", "task_id", t.id, "task", name)
		return nil
	default:
		return fmt.Errorf("task queue full, dropping task %q", name)
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q.tasks:
			q.run(ctx, t)
		}
	}
}

func (q *Queue) run(ctx context.Context, t task) {
	q.mu.RLock()
	handler := q.handlers[t.name]
	q.mu.RUnlock()

	var err error
	for attempt := 1; attempt <= defaultAttempts; attempt++ {
		if err = handler(ctx, t.params); err == nil {
			q.logger.Debug("task done", "task_id", t.id, "task", t.name, "attempt", attempt)
			return
		}
		q.logger.Warn("task failed", "task_id", t.id, "task", t.name, "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
	q.logger.Error("task dropped after retries", "task_id", t.id, "task", t.name, "error", err)
}
