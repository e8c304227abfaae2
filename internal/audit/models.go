// Package audit produces the tamper-evident trail of every access to and
// mutation of application records. Emission is best-effort: a failing sink
// never fails the operation being audited.
package audit

import (
	"time"

	"github.com/google/uuid"

	"lendfold/internal/access"
)

// Action classifies what the actor did to the resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionView   Action = "view"
	ActionUpdate Action = "update"
)

// Sensitive data types recorded by SensitiveAccess.
const (
	DataTypePII                = "pii"
	DataTypeSSNPlaintextExport = "ssn_plaintext_export"
)

// Event is one audit trail entry. Metadata is limited to structural facts
// (which top-level fields changed, which data type was touched); raw field
// values, sensitive ones above all, never appear here.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	ActorID    string      `json:"actorId"`
	ActorRole  access.Role `json:"actorRole"`
	ResourceID string      `json:"resourceId"`
	Action     Action      `json:"action"`
	// DataType is set on sensitive-access events only.
	DataType string `json:"dataType,omitempty"`
	// Fields lists the top-level field names a mutation touched.
	Fields []string `json:"fields,omitempty"`
	// RequestID correlates the entry with the HTTP request that caused it.
	RequestID string `json:"requestId,omitempty"`
}
