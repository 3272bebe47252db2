package domain

import "context"

// Task names handled by the work queue.
const (
	TaskSetFeaturedSpeaker    = "set_featured_speaker"
	TaskSetAnnouncement       = "set_announcement"
	TaskSendConfirmationEmail = "send_confirmation_email"
)

// TaskHandler processes one task submission. Handlers must be idempotent:
// delivery is at-least-once.
type TaskHandler func(ctx context.Context, params map[string]string) error

// TaskQueue submits named tasks for asynchronous fire-and-forget execution,
// decoupled from the synchronous request path.
type TaskQueue interface {
	Enqueue(ctx context.Context, name string, params map[string]string) error
}
