package audit

import (
	"context"
)

// Store persists audit events. Append-only: no implementation exposes an
// update or delete path.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByResource(ctx context.Context, resourceID string) ([]Event, error)
}
