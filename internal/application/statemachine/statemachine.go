// Package statemachine governs status and decision transitions, first-touch
// auto-assignment, and the append-only status history of a loan application.
package statemachine

import (
	"time"

	"lendfold/internal/access"
	"lendfold/internal/application/models"
)

// Machine plans workflow side effects for a write. Plan is pure with respect
// to the record: it validates first and computes a change set; nothing is
// mutated until Changes.ApplyTo runs. A rejected write therefore leaves the
// record completely unchanged.
type Machine struct{}

func New() Machine { return Machine{} }

// Changes is the side-effect set computed from one staff write.
type Changes struct {
	AssignTo   string
	AssignedAt *time.Time

	NewStatus *models.Status

	NewDecision *models.Decision
	ReviewedBy  string
	ReviewedAt  *time.Time

	History []models.StatusChange
}

// Empty reports whether the write produced no workflow side effects.
func (c *Changes) Empty() bool {
	return c.AssignTo == "" && c.NewStatus == nil && c.NewDecision == nil && len(c.History) == 0
}

// Plan evaluates the transition rules against the stored record and the
// proposed payload.
//
// Rules, staff actors only (customer writes never trigger any of them):
//  1. Auto-assign: an unassigned record is assigned to the first employee
//     (not admin) who writes to it. At most once; later writers never
//     reassign.
//  2. Status change: a differing status appends one history entry and updates
//     the status. A matching status is a no-op for history.
//  3. Decision change: a differing decision sets ReviewedBy/ReviewedAt and
//     appends its own history entry, independent of rule 2.
//
// Malformed status or decision values fail with a validation error before any
// side effect is computed.
func (Machine) Plan(app *models.LoanApplication, actor access.Actor, req *models.UpdateRequest, now time.Time) (*Changes, error) {
	changes := &Changes{}
	if !actor.IsStaff() {
		return changes, nil
	}

	// Validate everything up front so a bad value cannot leave a partial
	// change set behind.
	var newStatus *models.Status
	if req.Status != nil {
		parsed, err := models.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		newStatus = &parsed
	}
	var newDecision *models.Decision
	if req.Decision != nil {
		parsed, err := models.ParseDecision(*req.Decision)
		if err != nil {
			return nil, err
		}
		newDecision = &parsed
	}

	if app.AssignedTo == "" && actor.Role == access.RoleEmployee {
		changes.AssignTo = actor.ID
		at := now
		changes.AssignedAt = &at
	}

	if newStatus != nil && *newStatus != app.Status {
		changes.NewStatus = newStatus
		changes.History = append(changes.History, models.StatusChange{
			Status:    *newStatus,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Timestamp: now,
			Notes:     req.Notes,
		})
	}

	if newDecision != nil && *newDecision != app.Decision {
		changes.NewDecision = newDecision
		changes.ReviewedBy = actor.ID
		at := now
		changes.ReviewedAt = &at
		status := app.Status
		if changes.NewStatus != nil {
			status = *changes.NewStatus
		}
		changes.History = append(changes.History, models.StatusChange{
			Status:    status,
			Decision:  *newDecision,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Timestamp: now,
			Notes:     req.DecisionNotes,
		})
	}

	return changes, nil
}

// ApplyTo mutates the record with the planned side effects. History entries
// are appended, never inserted or replaced.
func (c *Changes) ApplyTo(app *models.LoanApplication) {
	if c.AssignTo != "" {
		app.AssignedTo = c.AssignTo
		app.AssignedAt = c.AssignedAt
	}
	if c.NewStatus != nil {
		app.Status = *c.NewStatus
	}
	if c.NewDecision != nil {
		app.Decision = *c.NewDecision
		app.ReviewedBy = c.ReviewedBy
		app.ReviewedAt = c.ReviewedAt
	}
	app.StatusHistory = append(app.StatusHistory, c.History...)
}
