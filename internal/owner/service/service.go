package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"petclinic/internal/owner/metrics"
	"petclinic/internal/owner/models"
	dErrors "petclinic/pkg/domain-errors"
	"petclinic/pkg/requestcontext"
)

var errOwnerRequired = dErrors.New(dErrors.CodeBadRequest, "owner is required")

// Store is the persistence collaborator. Implementations report missing
// records with sentinel.ErrNotFound, unreachable backends with
// sentinel.ErrUnavailable and constraint violations with sentinel.ErrConflict.
type Store interface {
	FindByLastName(ctx context.Context, fragment string) ([]*models.Owner, error)
	FindByID(ctx context.Context, id int) (*models.Owner, error)
	Save(ctx context.Context, owner *models.Owner) (*models.Owner, error)
}

// Validator is the field-constraint collaborator. It must be side-effect free.
type Validator interface {
	Validate(owner *models.Owner) models.ValidationResult
}

// Service turns owner requests into navigation outcomes. Collaborator faults
// are returned exactly as received: no retries, no fallbacks.
type Service struct {
	store     Store
	validator Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(store Store, validator Validator, opts ...Option) *Service {
	s := &Service{
		store:     store,
		validator: validator,
		tracer:    otel.Tracer("petclinic/owner"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewForm presents an empty create form.
func (s *Service) NewForm() models.Outcome {
	return models.ShowForm(models.FormCreateOrUpdate, &models.Owner{}, nil)
}

// FindForm presents an empty search form.
func (s *Service) FindForm() models.Outcome {
	return models.ShowForm(models.FormFindOwners, &models.Owner{}, nil)
}

// Search looks owners up by last-name prefix and classifies the matches.
// An empty fragment is the broadest search.
func (s *Service) Search(ctx context.Context, lastName string) (models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "owner.Search")
	defer span.End()

	matches, err := s.store.FindByLastName(ctx, lastName)
	if err != nil {
		recordError(span, err)
		return models.Outcome{}, err
	}

	outcome := Classify(matches)
	span.SetAttributes(
		attribute.Int("owner.matches", len(matches)),
		attribute.String("owner.outcome", outcome.Kind.String()),
	)
	s.metrics.IncrementOutcome("search", outcome.Kind.String())
	return outcome, nil
}

// Submit runs the validation gate on an already-validated owner and, when
// accepted, saves it and redirects to the saved record.
func (s *Service) Submit(ctx context.Context, owner *models.Owner, result models.ValidationResult) (models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "owner.Submit")
	defer span.End()

	if owner == nil {
		recordError(span, errOwnerRequired)
		return models.Outcome{}, errOwnerRequired
	}

	decision := Evaluate(owner, result)
	if !decision.Accepted {
		for _, field := range decision.Validation.Fields() {
			s.metrics.IncrementRejectedField(field)
		}
		span.SetAttributes(attribute.StringSlice("owner.rejected_fields", decision.Validation.Fields()))
		s.metrics.IncrementOutcome("submit", models.OutcomeShowForm.String())
		return models.ShowForm(models.FormCreateOrUpdate, decision.Owner, decision.Validation), nil
	}

	created := decision.Owner.IsNew()
	saved, err := s.store.Save(ctx, decision.Owner)
	if err != nil {
		recordError(span, err)
		return models.Outcome{}, err
	}

	event := "owner_updated"
	if created {
		event = "owner_created"
	}
	s.logAudit(ctx, event, "owner_id", saved.ID)
	span.SetAttributes(attribute.Int("owner.id", saved.ID))
	s.metrics.IncrementOutcome("submit", models.OutcomeRedirectToDetail.String())
	return models.RedirectToDetail(saved.ID), nil
}

// Create validates a new owner and submits it.
func (s *Service) Create(ctx context.Context, owner *models.Owner) (models.Outcome, error) {
	if owner == nil {
		return models.Outcome{}, errOwnerRequired
	}
	return s.Submit(ctx, owner, s.validator.Validate(owner))
}

// Update pins owner to id, validates it and submits it. The path identifier
// always wins over whatever the form carried.
func (s *Service) Update(ctx context.Context, id int, owner *models.Owner) (models.Outcome, error) {
	if owner == nil {
		return models.Outcome{}, errOwnerRequired
	}
	owner.ID = id
	return s.Submit(ctx, owner, s.validator.Validate(owner))
}

// LoadForEdit presents the edit form pre-filled with the stored owner.
// A missing owner is returned as the store's not-found fault.
func (s *Service) LoadForEdit(ctx context.Context, id int) (models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "owner.LoadForEdit", trace.WithAttributes(attribute.Int("owner.id", id)))
	defer span.End()

	owner, err := s.store.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return models.Outcome{}, err
	}
	s.metrics.IncrementOutcome("edit", models.OutcomeShowForm.String())
	return models.ShowForm(models.FormCreateOrUpdate, owner, nil), nil
}

// Show renders a single owner's details.
func (s *Service) Show(ctx context.Context, id int) (models.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "owner.Show", trace.WithAttributes(attribute.Int("owner.id", id)))
	defer span.End()

	owner, err := s.store.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return models.Outcome{}, err
	}
	s.metrics.IncrementOutcome("show", models.OutcomeShowDetail.String())
	return models.ShowDetail(owner), nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if clientIP := requestcontext.ClientIP(ctx); clientIP != "" {
		attributes = append(attributes, "client_ip", clientIP)
	}
	args := append(attributes,
		"event", event,
		"log_type", "audit",
		"occurred_at", requestcontext.Now(ctx).UTC(),
	)
	s.logger.InfoContext(ctx, event, args...)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
