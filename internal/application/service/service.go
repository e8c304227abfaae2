// Package service orchestrates the loan application record lifecycle:
// access checks, validation, state machine side effects, field-level merge,
// sensitive-field encryption, persistence, and audit.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Auditor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lendfold/internal/access"
	"lendfold/internal/application/models"
	"lendfold/internal/application/statemachine"
	"lendfold/internal/application/store"
	"lendfold/internal/audit"
	"lendfold/internal/fieldcrypt"
	"lendfold/internal/platform/metrics"
	dErrors "lendfold/pkg/domain-errors"
	"lendfold/pkg/platform/sentinel"
)

// Auditor records data access. Implemented by audit.Recorder; calls never
// return errors because the trail is best-effort relative to the record.
type Auditor interface {
	Access(ctx context.Context, actor access.Actor, resourceID string, action audit.Action, fields []string)
	SensitiveAccess(ctx context.Context, actor access.Actor, resourceID string, dataType string)
}

// Service is the application record repository. Every operation takes the
// actor explicitly; nothing is read from ambient state.
//
// Updates are load-compute-save with no version check, so concurrent writers
// to one record race and the later save wins (see store.Store). The
// field-level merge protects a writer's own unrelated fields, not a
// concurrent writer's.
type Service struct {
	store   store.Store
	guard   access.Guard
	codec   *fieldcrypt.Codec
	machine statemachine.Machine
	auditor Auditor
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(st store.Store, codec *fieldcrypt.Codec, auditor Auditor, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:   st,
		guard:   access.NewGuard(),
		codec:   codec,
		machine: statemachine.New(),
		auditor: auditor,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create submits a new application for the acting customer. Status always
// starts at submitted regardless of the payload; assignment, decision, and
// history cannot be supplied by the client.
func (s *Service) Create(ctx context.Context, actor access.Actor, req *models.CreateRequest) (*models.View, error) {
	if !actor.Valid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if actor.Role != access.RoleCustomer {
		return nil, dErrors.New(dErrors.CodeForbidden, "only customers may submit applications")
	}
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.validatePlainSSN(req.BorrowerInfo.SSN); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app := &models.LoanApplication{
		ID:           uuid.New(),
		OwnerID:      actor.ID,
		Status:       models.StatusSubmitted,
		BorrowerInfo: *req.BorrowerInfo,
		PropertyInfo: *req.PropertyInfo,
		Assets:       append([]models.Asset(nil), req.Assets...),
		Liabilities:  append([]models.Liability(nil), req.Liabilities...),
		StatusHistory: []models.StatusChange{{
			Status:    models.StatusSubmitted,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.CurrentAddress != nil {
		app.CurrentAddress = *req.CurrentAddress
	}
	if req.Employment != nil {
		app.Employment = *req.Employment
	}
	if req.FinancialInfo != nil {
		app.FinancialInfo = *req.FinancialInfo
	}
	if req.Declarations != nil {
		app.Declarations = *req.Declarations
	}

	if err := s.encryptSensitiveFields(app); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, app); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist application",
			"error", err,
			"application_id", app.ID,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create application")
	}

	s.auditor.Access(ctx, actor, app.ID.String(), audit.ActionCreate, req.Groups())
	if s.metrics != nil {
		s.metrics.ApplicationsCreated.Inc()
	}
	return s.buildView(app), nil
}

// Get returns the masked view of one application. Plaintext sensitive values
// never leave this package through here.
func (s *Service) Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.View, error) {
	if !actor.Valid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanRead(actor, app.OwnerID) {
		return nil, s.deny(ctx, actor, id)
	}

	s.auditor.Access(ctx, actor, app.ID.String(), audit.ActionView, nil)
	if app.HasSensitiveFields() {
		s.auditor.SensitiveAccess(ctx, actor, app.ID.String(), audit.DataTypePII)
		if s.metrics != nil {
			s.metrics.SensitiveReads.Inc()
		}
	}
	return s.buildView(app), nil
}

// List returns masked views of the applications the actor may see: customers
// get their own records via an owner-scoped query, staff get all of them.
func (s *Service) List(ctx context.Context, actor access.Actor) ([]*models.View, error) {
	if !actor.Valid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	var (
		apps []*models.LoanApplication
		err  error
	)
	if actor.IsStaff() {
		apps, err = s.store.ListAll(ctx)
	} else {
		apps, err = s.store.ListByOwner(ctx, actor.ID)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}

	views := make([]*models.View, 0, len(apps))
	for _, app := range apps {
		views = append(views, s.buildView(app))
	}
	return views, nil
}

// Update merges a partial payload into the record. Only the keys the payload
// supplies are written; state machine side effects (assignment, history,
// review fields) are computed against the stored record before the merge.
func (s *Service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, req *models.UpdateRequest) (*models.View, error) {
	if !actor.Valid() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if req == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.guard.CanWrite(actor, app.OwnerID) {
		return nil, s.deny(ctx, actor, id)
	}

	// Fail fast on bad input before any state is touched.
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.BorrowerInfo != nil && req.BorrowerInfo.SSN != nil {
		if err := s.validatePlainSSN(*req.BorrowerInfo.SSN); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	changes, err := s.machine.Plan(app, actor, req, now)
	if err != nil {
		return nil, err
	}

	req.Merge(app)
	changes.ApplyTo(app)
	if err := s.encryptSensitiveFields(app); err != nil {
		return nil, err
	}
	app.UpdatedAt = now

	if err := s.store.Save(ctx, app); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		s.logger.ErrorContext(ctx, "failed to save application",
			"error", err,
			"application_id", app.ID,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application")
	}

	s.auditor.Access(ctx, actor, app.ID.String(), audit.ActionUpdate, req.ChangedFields())
	if s.metrics != nil && changes.NewStatus != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(*changes.NewStatus)).Inc()
	}
	return s.buildView(app), nil
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*models.LoanApplication, error) {
	app, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		s.logger.ErrorContext(ctx, "failed to load application",
			"error", err,
			"application_id", id,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load application")
	}
	return app, nil
}

// deny records the denial and returns a forbidden error that reveals nothing
// about the record.
func (s *Service) deny(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	s.logger.WarnContext(ctx, "access denied",
		"actor_id", actor.ID,
		"actor_role", actor.Role,
		"application_id", id,
	)
	if s.metrics != nil {
		s.metrics.AccessDenied.Inc()
	}
	return dErrors.New(dErrors.CodeForbidden, "access denied")
}

// validatePlainSSN checks the SSN format for plaintext values. Resubmitted
// ciphertext tokens bypass the check; they are persisted as-is.
func (s *Service) validatePlainSSN(ssn string) error {
	if ssn == "" || s.codec.IsEncrypted(ssn) {
		return nil
	}
	if !models.ValidSSNFormat(ssn) {
		return dErrors.New(dErrors.CodeValidation, "borrowerInfo.ssn must match ###-##-####")
	}
	return nil
}

// encryptSensitiveFields encrypts every sensitive value not already in
// encrypted form. The IsEncrypted check prevents double encryption when a
// payload resubmits a stored token.
func (s *Service) encryptSensitiveFields(app *models.LoanApplication) error {
	if ssn := app.BorrowerInfo.SSN; ssn != "" && !s.codec.IsEncrypted(ssn) {
		token, err := s.codec.Encrypt(ssn)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to protect sensitive field")
		}
		app.BorrowerInfo.SSN = token
	}
	for i := range app.Assets {
		if acct := app.Assets[i].AccountNumber; acct != "" && !s.codec.IsEncrypted(acct) {
			token, err := s.codec.Encrypt(acct)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to protect sensitive field")
			}
			app.Assets[i].AccountNumber = token
		}
	}
	return nil
}
