// Package export produces the regulatory disclosure of an application with
// its SSN in plaintext. This is the only path in the service that ever emits
// a decrypted sensitive value, and it is restricted to administrators.
package export

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lendfold/internal/access"
	"lendfold/internal/application/models"
	"lendfold/internal/application/store"
	"lendfold/internal/audit"
	"lendfold/internal/fieldcrypt"
	dErrors "lendfold/pkg/domain-errors"
	"lendfold/pkg/platform/sentinel"
)

// Auditor mirrors the service-layer audit surface; calls are best-effort.
type Auditor interface {
	Access(ctx context.Context, actor access.Actor, resourceID string, action audit.Action, fields []string)
	SensitiveAccess(ctx context.Context, actor access.Actor, resourceID string, dataType string)
}

// RegulatoryRecord is the disclosure payload. Borrower.SSN is plaintext.
type RegulatoryRecord struct {
	ApplicationID uuid.UUID           `json:"applicationId"`
	OwnerID       string              `json:"ownerId"`
	Status        models.Status       `json:"status"`
	Decision      models.Decision     `json:"decision,omitempty"`
	Borrower      models.BorrowerInfo `json:"borrowerInfo"`
	PropertyInfo  models.PropertyInfo `json:"propertyInfo"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	GeneratedBy   string              `json:"generatedBy"`
}

// Service builds regulatory records.
type Service struct {
	store   store.Store
	codec   *fieldcrypt.Codec
	auditor Auditor
	logger  *slog.Logger
}

func New(st store.Store, codec *fieldcrypt.Codec, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{store: st, codec: codec, auditor: auditor, logger: logger}
}

// Regulatory returns the plaintext disclosure for one application. Admin
// only; every call is double-audited, once as a view and once as a
// plaintext-SSN sensitive access.
func (s *Service) Regulatory(ctx context.Context, actor access.Actor, id uuid.UUID) (*RegulatoryRecord, error) {
	if !actor.Valid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if actor.Role != access.RoleAdmin {
		s.logger.WarnContext(ctx, "regulatory export denied",
			"actor_id", actor.ID,
			"actor_role", actor.Role,
			"application_id", id,
		)
		return nil, dErrors.New(dErrors.CodeForbidden, "access denied")
	}

	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}

	borrower := app.BorrowerInfo
	if borrower.SSN != "" && s.codec.IsEncrypted(borrower.SSN) {
		plain, err := s.codec.Decrypt(borrower.SSN)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to decrypt ssn for regulatory export",
				"error", err,
				"application_id", id,
			)
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to prepare export")
		}
		borrower.SSN = plain
	}

	s.auditor.Access(ctx, actor, app.ID.String(), audit.ActionView, nil)
	s.auditor.SensitiveAccess(ctx, actor, app.ID.String(), audit.DataTypeSSNPlaintextExport)

	return &RegulatoryRecord{
		ApplicationID: app.ID,
		OwnerID:       app.OwnerID,
		Status:        app.Status,
		Decision:      app.Decision,
		Borrower:      borrower,
		PropertyInfo:  app.PropertyInfo,
		GeneratedAt:   time.Now().UTC(),
		GeneratedBy:   actor.ID,
	}, nil
}
