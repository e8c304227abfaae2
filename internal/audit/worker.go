package audit

import (
	"context"
	"log/slog"
)

// Forwarder ships an audit event to an external sink (Kafka in production).
type Forwarder interface {
	Forward(ctx context.Context, event Event) error
}

// Worker drains the recorder's outbox and hands events to the forwarder.
// Forwarding shares the recorder's best-effort contract: a failed forward is
// logged and the worker keeps going.
type Worker struct {
	inbox     <-chan Event
	forwarder Forwarder
	logger    *slog.Logger
}

func NewWorker(inbox <-chan Event, forwarder Forwarder, logger *slog.Logger) *Worker {
	return &Worker{inbox: inbox, forwarder: forwarder, logger: logger}
}

// Run blocks until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.forwarder.Forward(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit forward failed",
					"error", err,
					"event_id", event.ID,
					"action", event.Action,
				)
			}
		}
	}
}
