package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"petclinic/internal/owner/handler/mocks"
	"petclinic/internal/owner/models"
	"petclinic/internal/owner/service"
	"petclinic/internal/owner/store"
	"petclinic/internal/owner/validation"
	"petclinic/pkg/platform/sentinel"
	"petclinic/pkg/testutil"
)

type OwnerHandlerSuite struct {
	suite.Suite
	ctx    context.Context
	store  *store.InMemory
	router chi.Router
}

func TestOwnerHandlerSuite(t *testing.T) {
	suite.Run(t, new(OwnerHandlerSuite))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *OwnerHandlerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
	svc := service.New(s.store, validation.New())
	s.router = chi.NewRouter()
	New(svc, discardLogger()).Register(s.router)
}

func (s *OwnerHandlerSuite) seed(lastNames ...string) []*models.Owner {
	saved := make([]*models.Owner, 0, len(lastNames))
	for i, lastName := range lastNames {
		owner, err := s.store.Save(s.ctx, &models.Owner{
			FirstName: fmt.Sprintf("First%d", i),
			LastName:  lastName,
			Address:   "1 Main St.",
			City:      "Madison",
			Telephone: "6085550000",
		})
		s.Require().NoError(err)
		saved = append(saved, owner)
	}
	return saved
}

func validForm() url.Values {
	return url.Values{
		"firstName": {"first_name"},
		"lastName":  {"last_name"},
		"address":   {"adss"},
		"city":      {"cy"},
		"telephone": {"000"},
	}
}

func (s *OwnerHandlerSuite) do(req *http.Request) *ViewResponse {
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	return testutil.UnmarshalResponse[ViewResponse](s.T(), rr)
}

func (s *OwnerHandlerSuite) TestInitCreationForm() {
	resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners/new"))

	s.Equal("owners/createOrUpdateOwnerForm", resp.View)
	s.Contains(resp.Model, "owner")
}

func (s *OwnerHandlerSuite) TestProcessCreationForm() {
	s.Run("empty submission re-renders the form", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/owners/new"))

		s.Equal("owners/createOrUpdateOwnerForm", resp.View)
		errs := resp.Model["errors"].(map[string]any)
		s.Len(errs, 5)
	})

	s.Run("valid submission redirects to the new owner", func() {
		form := validForm()
		form.Set("id", "42")
		rr := testutil.DoRequest(s.router, testutil.NewFormRequest(s.T(), http.MethodPost, "/owners/new", form))

		testutil.AssertRedirect(s.T(), rr, "/owners/1")
		count, err := s.store.Count(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("missing address and city are reported on those fields", func() {
		form := validForm()
		form.Del("address")
		form.Del("city")
		resp := s.do(testutil.NewFormRequest(s.T(), http.MethodPost, "/owners/new", form))

		s.Equal("owners/createOrUpdateOwnerForm", resp.View)
		errs := resp.Model["errors"].(map[string]any)
		s.Contains(errs, "address")
		s.Contains(errs, "city")
		s.NotContains(errs, "telephone")
		owner := resp.Model["owner"].(map[string]any)
		s.Equal("first_name", owner["firstName"])
	})
}

func (s *OwnerHandlerSuite) TestInitFindForm() {
	resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners/find"))

	s.Equal("owners/findOwners", resp.View)
	s.Contains(resp.Model, "owner")
}

func (s *OwnerHandlerSuite) TestProcessFindForm() {
	s.seed("Franklin", "Davis", "Davis")

	s.Run("no match shows the search form without errors", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners?lastName=Dont+find+ME%21"))

		s.Equal("owners/findOwners", resp.View)
		s.Empty(resp.Model["errors"])
	})

	s.Run("one match redirects", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/owners?lastName=Frank"))

		testutil.AssertRedirect(s.T(), rr, "/owners/1")
	})

	s.Run("several matches list them", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners?lastName=Davis"))

		s.Equal("owners/ownersList", resp.View)
		s.Len(resp.Model["selections"], 2)
	})

	s.Run("missing lastName lists everyone", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners"))

		s.Equal("owners/ownersList", resp.View)
		s.Len(resp.Model["selections"], 3)
	})
}

func (s *OwnerHandlerSuite) TestUpdateOwnerForm() {
	s.seed("Franklin")

	s.Run("edit form is pre-filled", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners/1/edit"))

		s.Equal("owners/createOrUpdateOwnerForm", resp.View)
		owner := resp.Model["owner"].(map[string]any)
		s.Equal("Franklin", owner["lastName"])
	})

	s.Run("edit of an unknown owner is not found", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/owners/999/edit"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("empty submission re-renders the form", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodPost, "/owners/1/edit"))

		s.Equal("owners/createOrUpdateOwnerForm", resp.View)
		owner := resp.Model["owner"].(map[string]any)
		s.EqualValues(1, owner["id"])
	})

	s.Run("valid submission keeps the path id", func() {
		form := validForm()
		form.Set("id", "2")
		rr := testutil.DoRequest(s.router, testutil.NewFormRequest(s.T(), http.MethodPost, "/owners/1/edit", form))

		testutil.AssertRedirect(s.T(), rr, "/owners/1")
		stored, err := s.store.FindByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal("last_name", stored.LastName)
	})

	s.Run("non-numeric id is a bad request", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/owners/abc/edit"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *OwnerHandlerSuite) TestShowOwner() {
	s.seed("Franklin")

	s.Run("existing owner", func() {
		resp := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/owners/1"))

		s.Equal("owners/ownerDetails", resp.View)
		owner := resp.Model["owner"].(map[string]any)
		s.EqualValues(1, owner["id"])
	})

	s.Run("unknown owner", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/owners/7"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func newMockedRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(mockService, discardLogger()).Register(r)
	return r, mockService
}

func TestOwnerHandlerFaults(t *testing.T) {
	testutil.Given(t, "an unreachable owner store", func(t *testing.T) {
		router, mockService := newMockedRouter(t)
		fault := fmt.Errorf("find owners: %w", sentinel.ErrUnavailable)

		testutil.When(t, "searching", func(t *testing.T) {
			mockService.EXPECT().Search(gomock.Any(), "Davis").Return(models.Outcome{}, fault)
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/owners?lastName=Davis"))

			testutil.Then(t, "the fault surfaces as 503", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, "service_unavailable")
			})
		})
	})

	testutil.Given(t, "a store that rejects the save", func(t *testing.T) {
		router, mockService := newMockedRouter(t)

		testutil.When(t, "creating an owner", func(t *testing.T) {
			mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Outcome{}, sentinel.ErrConflict)
			rr := testutil.DoRequest(router, testutil.NewFormRequest(t, http.MethodPost, "/owners/new", validForm()))

			testutil.Then(t, "the fault surfaces as 409", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
			})
		})
	})

	testutil.Given(t, "an update request", func(t *testing.T) {
		router, mockService := newMockedRouter(t)

		testutil.When(t, "the form carries a different id", func(t *testing.T) {
			form := validForm()
			form.Set("id", "2")
			mockService.EXPECT().Update(gomock.Any(), 1, gomock.Any()).DoAndReturn(
				func(_ context.Context, id int, owner *models.Owner) (models.Outcome, error) {
					if owner.ID != 0 {
						t.Errorf("form id leaked into the decoded owner: %d", owner.ID)
					}
					return models.RedirectToDetail(id), nil
				})
			rr := testutil.DoRequest(router, testutil.NewFormRequest(t, http.MethodPost, "/owners/1/edit", form))

			testutil.Then(t, "the path id wins", func(t *testing.T) {
				testutil.AssertRedirect(t, rr, "/owners/1")
			})
		})
	})

	testutil.Given(t, "an unexpected failure", func(t *testing.T) {
		router, mockService := newMockedRouter(t)

		testutil.When(t, "showing an owner", func(t *testing.T) {
			mockService.EXPECT().Show(gomock.Any(), 3).Return(models.Outcome{}, fmt.Errorf("boom"))
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/owners/3"))

			testutil.Then(t, "it is an internal error", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
			})
		})
	})
}
