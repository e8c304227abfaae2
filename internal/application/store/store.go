// Package store persists loan application records.
package store

import (
	"context"

	"github.com/google/uuid"

	"lendfold/internal/application/models"
)

// Store is interface-driven so the service stays testable and persistence can
// move between in-memory and Postgres without rewiring business code.
//
// Save is a plain load-compute-save overwrite: there is no version check and
// no lock, so of two concurrent writers to the same record the later Save
// wins and silently discards the earlier writer's unseen changes. This
// matches the system being replaced; an optimistic-concurrency token is a
// known possible upgrade, not an assumed requirement.
type Store interface {
	Create(ctx context.Context, app *models.LoanApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.LoanApplication, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.LoanApplication, error)
	ListAll(ctx context.Context) ([]*models.LoanApplication, error)
	Save(ctx context.Context, app *models.LoanApplication) error
}
