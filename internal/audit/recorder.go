package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lendfold/internal/access"
	"lendfold/internal/platform/middleware"
)

// Recorder emits audit events to the store and, when configured, to an outbox
// channel consumed by the forwarding worker. Every failure is contained here:
// a full channel drops the event with a warning, a failing store is logged,
// and neither ever propagates to the read or write operation being audited.
type Recorder struct {
	store  Store
	logger *slog.Logger
	outbox chan<- Event
}

type Option func(*Recorder)

// WithOutbox attaches a channel the recorder fans events out to, typically
// consumed by a Worker that forwards to Kafka.
func WithOutbox(outbox chan<- Event) Option {
	return func(r *Recorder) { r.outbox = outbox }
}

func NewRecorder(store Store, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{store: store, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Access records that an actor performed an action on a resource. fields
// names the top-level fields a mutation touched; nil for reads.
func (r *Recorder) Access(ctx context.Context, actor access.Actor, resourceID string, action Action, fields []string) {
	r.emit(ctx, Event{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		ResourceID: resourceID,
		Action:     action,
		Fields:     fields,
	})
}

// SensitiveAccess records that an actor's operation touched a sensitive data
// type. Emitted in addition to, never instead of, the Access entry.
func (r *Recorder) SensitiveAccess(ctx context.Context, actor access.Actor, resourceID string, dataType string) {
	r.emit(ctx, Event{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		ResourceID: resourceID,
		Action:     ActionView,
		DataType:   dataType,
	})
}

func (r *Recorder) emit(ctx context.Context, event Event) {
	event.ID = uuid.New()
	event.Timestamp = time.Now().UTC()
	event.RequestID = middleware.GetRequestID(ctx)

	if err := r.store.Append(ctx, event); err != nil {
		r.logger.WarnContext(ctx, "audit append failed",
			"error", err,
			"resource_id", event.ResourceID,
			"action", event.Action,
		)
	}

	if r.outbox == nil {
		return
	}
	select {
	case r.outbox <- event:
	default:
		r.logger.WarnContext(ctx, "audit outbox full, dropping event",
			"resource_id", event.ResourceID,
			"action", event.Action,
		)
	}
}
