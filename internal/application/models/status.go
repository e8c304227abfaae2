package models

import (
	dErrors "lendfold/pkg/domain-errors"
)

// Status is the closed set of application lifecycle states. Approved and
// rejected are terminal in the origination flow; the state machine records
// but does not police transitions between them, matching the behavior of the
// system this replaces.
type Status string

const (
	StatusSubmitted      Status = "submitted"
	StatusUnderReview    Status = "under_review"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusMoreInfoNeeded Status = "more_info_needed"
)

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusMoreInfoNeeded:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown status value: "+raw)
	}
}

// Decision is the closed set of review outcomes. The empty value means no
// decision has been made.
type Decision string

const (
	DecisionNone     Decision = ""
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ParseDecision validates a raw decision value against the closed set.
func ParseDecision(raw string) (Decision, error) {
	switch Decision(raw) {
	case DecisionApproved, DecisionRejected:
		return Decision(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "unknown decision value: "+raw)
	}
}
