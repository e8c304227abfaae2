package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"lendfold/internal/application/models"
	"lendfold/internal/application/service"
	"lendfold/internal/application/store"
	"lendfold/internal/audit"
	"lendfold/internal/fieldcrypt"
	"lendfold/internal/ratelimit"
	"lendfold/pkg/testutil"
)

const createLimit = 3

type HandlerSuite struct {
	suite.Suite
	router chi.Router
	store  *store.InMemory
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = store.NewInMemory()
	codec, err := fieldcrypt.New("test-secret")
	s.Require().NoError(err)

	recorder := audit.NewRecorder(audit.NewInMemoryStore(), logger)
	svc := service.New(s.store, codec, recorder, logger)
	limiter := ratelimit.NewLimiter(ratelimit.NewInMemoryBucketStore(), createLimit, time.Hour, logger)

	s.router = chi.NewRouter()
	New(svc, limiter, logger).Register(s.router)
}

func createPayload() map[string]any {
	return map[string]any{
		"borrowerInfo": map[string]any{
			"firstName": "Ada",
			"lastName":  "Nguyen",
			"ssn":       "123-45-6789",
		},
		"propertyInfo": map[string]any{
			"address":       "12 Elm St",
			"propertyValue": "450000",
			"loanAmount":    "360000",
		},
	}
}

func (s *HandlerSuite) create(actorID string) *models.View {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", createPayload())
	req = testutil.WithActor(req, testutil.Customer(actorID))
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	return testutil.UnmarshalResponse[models.View](s.T(), rr)
}

func (s *HandlerSuite) TestCreate() {
	s.Run("customer submission returns masked view", func() {
		view := s.create("cust-1")
		s.Equal("cust-1", view.OwnerID)
		s.Equal(models.StatusSubmitted, view.Status)
		s.Equal("XXX-XX-6789", view.BorrowerInfo.SSN)
	})

	s.Run("unauthenticated request rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", createPayload())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("malformed body rejected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/applications", "{not json")
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("employee submission forbidden", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", createPayload())
		req = testutil.WithActor(req, testutil.Employee("emp-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("submissions over the limit are throttled", func() {
		for i := 0; i < createLimit; i++ {
			s.create("cust-throttled")
		}

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/applications", createPayload())
		req = testutil.WithActor(req, testutil.Customer("cust-throttled"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
	})
}

func (s *HandlerSuite) TestGet() {
	created := s.create("cust-1")

	s.Run("owner reads own record", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/"+created.ID.String())
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)

		view := testutil.UnmarshalResponse[models.View](s.T(), rr)
		s.Equal(created.ID, view.ID)
		s.Equal("XXX-XX-6789", view.BorrowerInfo.SSN)
	})

	s.Run("another customer is denied", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/"+created.ID.String())
		req = testutil.WithActor(req, testutil.Customer("cust-2"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("unknown id yields 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/"+uuid.NewString())
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed id yields 400", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications/not-a-uuid")
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestList() {
	s.create("cust-1")
	s.create("cust-2")

	s.Run("customer sees own records only", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications")
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)

		views := testutil.UnmarshalResponse[[]models.View](s.T(), rr)
		s.Require().Len(*views, 1)
		s.Equal("cust-1", (*views)[0].OwnerID)
	})

	s.Run("employee sees everything", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/applications")
		req = testutil.WithActor(req, testutil.Employee("emp-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)

		views := testutil.UnmarshalResponse[[]models.View](s.T(), rr)
		s.Len(*views, 2)
	})
}

func (s *HandlerSuite) TestUpdate() {
	created := s.create("cust-1")

	s.Run("customer patches a field", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/applications/"+created.ID.String(),
			map[string]any{"borrowerInfo": map[string]any{"phone": "555-0100"}})
		req = testutil.WithActor(req, testutil.Customer("cust-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)

		view := testutil.UnmarshalResponse[models.View](s.T(), rr)
		s.Equal("555-0100", view.BorrowerInfo.Phone)
		s.Equal("Ada", view.BorrowerInfo.FirstName)
	})

	s.Run("employee transitions status", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/applications/"+created.ID.String(),
			map[string]any{"status": "under_review", "notes": "review started"})
		req = testutil.WithActor(req, testutil.Employee("emp-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)

		view := testutil.UnmarshalResponse[models.View](s.T(), rr)
		s.Equal(models.StatusUnderReview, view.Status)
		s.Equal("emp-1", view.AssignedTo)
		s.Len(view.StatusHistory, 2)
	})

	s.Run("invalid status yields 400", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/applications/"+created.ID.String(),
			map[string]any{"status": "escalated"})
		req = testutil.WithActor(req, testutil.Employee("emp-1"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("other customer forbidden", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/applications/"+created.ID.String(),
			map[string]any{"notes": "x"})
		req = testutil.WithActor(req, testutil.Customer("cust-2"))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})
}
