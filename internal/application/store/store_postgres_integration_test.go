//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"lendfold/internal/application/models"
	"lendfold/internal/application/store"
	"lendfold/pkg/platform/sentinel"
	"lendfold/pkg/testutil/containers"
)

type PostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	ctx      context.Context
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T(), store.Schema)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx, "loan_applications", "audit_events"))
}

func (s *PostgresSuite) newApp(owner string) *models.LoanApplication {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.LoanApplication{
		ID:      uuid.New(),
		OwnerID: owner,
		Status:  models.StatusSubmitted,
		BorrowerInfo: models.BorrowerInfo{
			FirstName: "Ada",
			SSN:       "enc:v1:bm9uY2U:Y2lwaGVy",
		},
		PropertyInfo: models.PropertyInfo{
			LoanAmount:    decimal.NewFromInt(360000),
			PropertyValue: decimal.NewFromInt(450000),
		},
		StatusHistory: []models.StatusChange{{
			Status:    models.StatusSubmitted,
			ActorID:   owner,
			ActorRole: "customer",
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresSuite) TestCreateAndFind() {
	app := s.newApp("cust-1")
	s.Require().NoError(s.store.Create(s.ctx, app))

	found, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(app.ID, found.ID)
	s.Equal("cust-1", found.OwnerID)
	s.Equal(app.BorrowerInfo.SSN, found.BorrowerInfo.SSN)
	s.True(app.PropertyInfo.LoanAmount.Equal(found.PropertyInfo.LoanAmount))
	s.Require().Len(found.StatusHistory, 1)

	s.Run("duplicate id conflicts", func() {
		s.ErrorIs(s.store.Create(s.ctx, app), sentinel.ErrConflict)
	})

	s.Run("unknown id not found", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PostgresSuite) TestList() {
	first := s.newApp("cust-1")
	second := s.newApp("cust-1")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := s.newApp("cust-2")
	for _, app := range []*models.LoanApplication{first, second, other} {
		s.Require().NoError(s.store.Create(s.ctx, app))
	}

	byOwner, err := s.store.ListByOwner(s.ctx, "cust-1")
	s.Require().NoError(err)
	s.Require().Len(byOwner, 2)
	s.Equal(first.ID, byOwner[0].ID)

	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *PostgresSuite) TestSave() {
	app := s.newApp("cust-1")
	s.Require().NoError(s.store.Create(s.ctx, app))

	app.Status = models.StatusUnderReview
	app.StatusHistory = append(app.StatusHistory, models.StatusChange{
		Status:    models.StatusUnderReview,
		ActorID:   "emp-1",
		ActorRole: "employee",
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	})
	app.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(s.store.Save(s.ctx, app))

	found, err := s.store.FindByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusUnderReview, found.Status)
	s.Len(found.StatusHistory, 2)

	s.Run("save of unknown record not found", func() {
		missing := s.newApp("cust-9")
		s.ErrorIs(s.store.Save(s.ctx, missing), sentinel.ErrNotFound)
	})
}
