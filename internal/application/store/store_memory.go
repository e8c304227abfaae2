package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"lendfold/internal/application/models"
	"lendfold/pkg/platform/sentinel"
)

// InMemory keeps records in a mutex-guarded map. Default when no database is
// configured, and what the unit tests run against. Records are deep-copied on
// the way in and out so callers never alias stored state.
type InMemory struct {
	mu   sync.RWMutex
	apps map[uuid.UUID]*models.LoanApplication
}

func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[uuid.UUID]*models.LoanApplication)}
}

func (s *InMemory) Create(_ context.Context, app *models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	s.apps[app.ID] = app.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return app.Clone(), nil
}

func (s *InMemory) ListByOwner(_ context.Context, ownerID string) ([]*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.LoanApplication
	for _, app := range s.apps {
		if app.OwnerID == ownerID {
			out = append(out, app.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.LoanApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.LoanApplication, 0, len(s.apps))
	for _, app := range s.apps {
		out = append(out, app.Clone())
	}
	sortByCreation(out)
	return out, nil
}

// Save overwrites the stored record. Last save wins; see Store.
func (s *InMemory) Save(_ context.Context, app *models.LoanApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.apps[app.ID] = app.Clone()
	return nil
}

func sortByCreation(apps []*models.LoanApplication) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].ID.String() < apps[j].ID.String()
		}
		return apps[i].CreatedAt.Before(apps[j].CreatedAt)
	})
}
