package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lendfold/internal/application/models"
	"lendfold/pkg/platform/sentinel"
)

// Postgres persists the aggregate as a JSONB document with the query columns
// (owner, status) denormalized alongside. The document write in Save is a
// whole-row overwrite, preserving the last-save-wins semantics documented on
// Store.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Schema is the DDL for the application record table. Applied by the
// deployment's migration step and by the store integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS loan_applications (
	id         UUID PRIMARY KEY,
	owner_id   TEXT        NOT NULL,
	status     TEXT        NOT NULL,
	record     JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS loan_applications_owner_idx ON loan_applications (owner_id);

CREATE TABLE IF NOT EXISTS audit_events (
	id          UUID PRIMARY KEY,
	occurred_at TIMESTAMPTZ NOT NULL,
	actor_id    TEXT        NOT NULL,
	actor_role  TEXT        NOT NULL,
	resource_id TEXT        NOT NULL,
	action      TEXT        NOT NULL,
	data_type   TEXT,
	fields      TEXT[],
	request_id  TEXT
);
CREATE INDEX IF NOT EXISTS audit_events_resource_idx ON audit_events (resource_id);
`

func (s *Postgres) Create(ctx context.Context, app *models.LoanApplication) error {
	record, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	query := `
		INSERT INTO loan_applications (id, owner_id, status, record, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		app.ID, app.OwnerID, string(app.Status), record, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.LoanApplication, error) {
	query := `SELECT record FROM loan_applications WHERE id = $1`
	var record []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return unmarshalApplication(record)
}

func (s *Postgres) ListByOwner(ctx context.Context, ownerID string) ([]*models.LoanApplication, error) {
	query := `SELECT record FROM loan_applications WHERE owner_id = $1 ORDER BY created_at ASC`
	return s.queryApplications(ctx, query, ownerID)
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.LoanApplication, error) {
	query := `SELECT record FROM loan_applications ORDER BY created_at ASC`
	return s.queryApplications(ctx, query)
}

// Save overwrites the stored document. Last save wins; see Store.
func (s *Postgres) Save(ctx context.Context, app *models.LoanApplication) error {
	record, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}
	query := `
		UPDATE loan_applications
		SET owner_id = $2, status = $3, record = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		app.ID, app.OwnerID, string(app.Status), record, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) queryApplications(ctx context.Context, query string, args ...any) ([]*models.LoanApplication, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []*models.LoanApplication
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		app, err := unmarshalApplication(record)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func unmarshalApplication(record []byte) (*models.LoanApplication, error) {
	var app models.LoanApplication
	if err := json.Unmarshal(record, &app); err != nil {
		return nil, fmt.Errorf("unmarshal application: %w", err)
	}
	return &app, nil
}
