package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"lendfold/internal/access"
)

// PostgresStore persists the audit trail in the audit_events table. The table
// grants no UPDATE or DELETE to the application role, so append-only holds at
// the database layer too.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			id, occurred_at, actor_id, actor_role, resource_id, action, data_type, fields, request_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.ActorID,
		string(event.ActorRole),
		event.ResourceID,
		string(event.Action),
		nullable(event.DataType),
		pq.Array(event.Fields),
		nullable(event.RequestID),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByResource(ctx context.Context, resourceID string) ([]Event, error) {
	query := `
		SELECT id, occurred_at, actor_id, actor_role, resource_id, action, data_type, fields, request_id
		FROM audit_events
		WHERE resource_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e         Event
			role      string
			action    string
			dataType  sql.NullString
			requestID sql.NullString
			fields    pq.StringArray
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.ActorID, &role, &e.ResourceID, &action, &dataType, &fields, &requestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.ActorRole = access.Role(role)
		e.Action = Action(action)
		e.DataType = dataType.String
		e.RequestID = requestID.String
		e.Fields = []string(fields)
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
