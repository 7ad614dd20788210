package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"petclinic/internal/hearing"
	ownerhandler "petclinic/internal/owner/handler"
	ownerservice "petclinic/internal/owner/service"
	ownerstore "petclinic/internal/owner/store"
	"petclinic/internal/owner/validation"
	pettypehandler "petclinic/internal/pettype/handler"
	pettypemodels "petclinic/internal/pettype/models"
	pettypeservice "petclinic/internal/pettype/service"
	pettypestore "petclinic/internal/pettype/store"
	"petclinic/internal/platform/metrics"
	"petclinic/internal/platform/middleware"
	vethandler "petclinic/internal/vet/handler"
	vetmodels "petclinic/internal/vet/models"
	vetservice "petclinic/internal/vet/service"
	vetstore "petclinic/internal/vet/store"
	"petclinic/pkg/testutil"
)

type checkFunc func(ctx context.Context) error

func (f checkFunc) Health(ctx context.Context) error { return f(ctx) }

type RouterSuite struct {
	suite.Suite
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	features []Registrar
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s.registry = prometheus.NewRegistry()
	s.metrics = &metrics.Metrics{
		EndpointLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "router_test_latency"}, []string{"method", "route"}),
		RequestsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "router_test_requests_total"}, []string{"method", "route", "status"}),
	}
	s.registry.MustRegister(s.metrics.EndpointLatency, s.metrics.RequestsTotal)

	owners := ownerstore.NewInMemory()
	_, err := ownerstore.Seed(ctx, owners)
	s.Require().NoError(err)
	vets := vetstore.NewInMemory()
	_, err = vetstore.Seed(ctx, vets)
	s.Require().NoError(err)
	petTypes := pettypestore.NewInMemory()
	_, err = pettypestore.Seed(ctx, petTypes)
	s.Require().NoError(err)

	s.features = []Registrar{
		ownerhandler.New(ownerservice.New(owners, validation.New()), s.logger),
		vethandler.New(vetservice.New(vets), s.logger),
		pettypehandler.New(pettypeservice.New(petTypes), s.logger),
		hearing.NewHandler(hearing.NewInterpreter(hearing.Yanny{}, s.logger)),
	}
}

func (s *RouterSuite) router(opts ...Option) http.Handler {
	opts = append([]Option{WithMetrics(s.metrics, s.registry)}, opts...)
	return NewRouter(s.logger, s.features, opts...)
}

func (s *RouterSuite) TestHealth() {
	s.Run("no dependencies", func() {
		rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/health"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[healthResponse](s.T(), rr)
		s.Equal("ok", resp.Status)
	})

	s.Run("a failing dependency degrades the service", func() {
		router := s.router(
			WithHealthCheck("redis", checkFunc(func(context.Context) error { return errors.New("connection refused") })),
			WithHealthCheck("database", checkFunc(func(context.Context) error { return nil })),
		)
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/health"))

		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
		resp := testutil.UnmarshalResponse[healthResponse](s.T(), rr)
		s.Equal("degraded", resp.Status)
		s.Equal("down", resp.Checks["redis"])
		s.Equal("ok", resp.Checks["database"])
	})
}

func (s *RouterSuite) TestFeatureRoutesAreMounted() {
	router := s.router()

	s.Run("owner search redirects on a single match", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/owners?lastName=Franklin"))

		testutil.AssertRedirect(s.T(), rr, "/owners/1")
		s.NotEmpty(rr.Header().Get(middleware.HeaderRequestID))
	})

	s.Run("vets resource", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/vets"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[vetmodels.Vets](s.T(), rr)
		s.Len(resp.VetList, len(vetstore.SampleVets()))
	})

	s.Run("pet types", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/petTypes"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[[]pettypemodels.PetType](s.T(), rr)
		s.Len(*resp, len(pettypestore.SamplePetTypes()))
	})

	s.Run("hearing", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/hearing"))

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		s.JSONEq(`{"word":"Yanny"}`, rr.Body.String())
	})

	s.Run("unknown route", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/pets"))

		testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	})
}

func (s *RouterSuite) TestRequestTimeout() {
	router := s.router(WithRequestTimeout(-time.Second))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/vets"))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusGatewayTimeout, "timeout")
}

func (s *RouterSuite) TestMetricsEndpoint() {
	router := s.router()
	testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/owners/2"))

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	s.Contains(rr.Body.String(), `router_test_requests_total{method="GET",route="/owners/{ownerId}",status="200"} 1`)
}
