package export

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"lendfold/internal/access"
	"lendfold/internal/application/models"
	"lendfold/internal/application/store"
	"lendfold/internal/audit"
	"lendfold/internal/fieldcrypt"
	dErrors "lendfold/pkg/domain-errors"
)

type ExportSuite struct {
	suite.Suite
	ctx        context.Context
	store      *store.InMemory
	codec      *fieldcrypt.Codec
	auditStore *audit.InMemoryStore
	svc        *Service
	admin      access.Actor
	app        *models.LoanApplication
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportSuite))
}

func (s *ExportSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	codec, err := fieldcrypt.New("test-secret")
	s.Require().NoError(err)
	s.codec = codec
	s.auditStore = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := audit.NewRecorder(s.auditStore, logger)
	s.svc = New(s.store, codec, recorder, logger)
	s.admin = access.Actor{ID: "adm-1", Role: access.RoleAdmin}

	token, err := codec.Encrypt("123-45-6789")
	s.Require().NoError(err)
	s.app = &models.LoanApplication{
		ID:      uuid.New(),
		OwnerID: "cust-1",
		Status:  models.StatusApproved,
		BorrowerInfo: models.BorrowerInfo{
			FirstName: "Ada",
			LastName:  "Nguyen",
			SSN:       token,
		},
	}
	s.Require().NoError(s.store.Create(s.ctx, s.app))
}

func (s *ExportSuite) TestRegulatory() {
	s.Run("admin receives plaintext ssn", func() {
		record, err := s.svc.Regulatory(s.ctx, s.admin, s.app.ID)
		s.Require().NoError(err)
		s.Equal(s.app.ID, record.ApplicationID)
		s.Equal("123-45-6789", record.Borrower.SSN)
		s.Equal("adm-1", record.GeneratedBy)
		s.False(record.GeneratedAt.IsZero())
	})

	s.Run("every export is double-audited", func() {
		events, err := s.auditStore.ListByResource(s.ctx, s.app.ID.String())
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(audit.ActionView, events[0].Action)
		s.Empty(events[0].DataType)
		s.Equal(audit.DataTypeSSNPlaintextExport, events[1].DataType)
	})

	s.Run("legacy plaintext row exports as-is", func() {
		legacy := &models.LoanApplication{
			ID:           uuid.New(),
			OwnerID:      "cust-2",
			Status:       models.StatusSubmitted,
			BorrowerInfo: models.BorrowerInfo{SSN: "555-66-7777"},
		}
		s.Require().NoError(s.store.Create(s.ctx, legacy))

		record, err := s.svc.Regulatory(s.ctx, s.admin, legacy.ID)
		s.Require().NoError(err)
		s.Equal("555-66-7777", record.Borrower.SSN)
	})
}

func (s *ExportSuite) TestRegulatoryDenied() {
	s.Run("employee forbidden", func() {
		_, err := s.svc.Regulatory(s.ctx, access.Actor{ID: "emp-1", Role: access.RoleEmployee}, s.app.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("customer forbidden even for own record", func() {
		_, err := s.svc.Regulatory(s.ctx, access.Actor{ID: "cust-1", Role: access.RoleCustomer}, s.app.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("denied export leaves no audit entries", func() {
		events, err := s.auditStore.ListByResource(s.ctx, s.app.ID.String())
		s.Require().NoError(err)
		s.Empty(events)
	})

	s.Run("unknown id not found", func() {
		_, err := s.svc.Regulatory(s.ctx, s.admin, uuid.New())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
