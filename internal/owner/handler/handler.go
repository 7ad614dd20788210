package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/owner/models"
	"petclinic/internal/platform/middleware"
	dErrors "petclinic/pkg/domain-errors"
	"petclinic/pkg/platform/httputil"
	"petclinic/pkg/platform/sentinel"
)

// Service is the owner workflow the handler drives.
type Service interface {
	NewForm() models.Outcome
	FindForm() models.Outcome
	Search(ctx context.Context, lastName string) (models.Outcome, error)
	Create(ctx context.Context, owner *models.Owner) (models.Outcome, error)
	Update(ctx context.Context, id int, owner *models.Owner) (models.Outcome, error)
	LoadForEdit(ctx context.Context, id int) (models.Outcome, error)
	Show(ctx context.Context, id int) (models.Outcome, error)
}

// Handler serves the owner pages.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new owner Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register registers the owner routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/owners/new", h.handleInitCreate)
	r.Post("/owners/new", h.handleProcessCreate)
	r.Get("/owners/find", h.handleInitFind)
	r.Get("/owners", h.handleProcessFind)
	r.Get("/owners/{ownerId}", h.handleShow)
	r.Get("/owners/{ownerId}/edit", h.handleInitUpdate)
	r.Post("/owners/{ownerId}/edit", h.handleProcessUpdate)
}

func (h *Handler) handleInitCreate(w http.ResponseWriter, r *http.Request) {
	writeOutcome(w, r, h.service.NewForm())
}

func (h *Handler) handleProcessCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, err := decodeOwnerForm(r)
	if err != nil {
		h.writeError(ctx, w, "invalid owner form", err)
		return
	}

	outcome, err := h.service.Create(ctx, owner)
	if err != nil {
		h.writeError(ctx, w, "failed to create owner", err)
		return
	}
	writeOutcome(w, r, outcome)
}

func (h *Handler) handleInitFind(w http.ResponseWriter, r *http.Request) {
	writeOutcome(w, r, h.service.FindForm())
}

// handleProcessFind treats a missing lastName as the empty fragment, which
// lists every owner.
func (h *Handler) handleProcessFind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	outcome, err := h.service.Search(ctx, r.URL.Query().Get(paramLastName))
	if err != nil {
		h.writeError(ctx, w, "failed to search owners", err)
		return
	}
	writeOutcome(w, r, outcome)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseOwnerID(r)
	if err != nil {
		h.writeError(ctx, w, "invalid owner id", err)
		return
	}

	outcome, err := h.service.Show(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "failed to load owner", err, "owner_id", id)
		return
	}
	writeOutcome(w, r, outcome)
}

func (h *Handler) handleInitUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseOwnerID(r)
	if err != nil {
		h.writeError(ctx, w, "invalid owner id", err)
		return
	}

	outcome, err := h.service.LoadForEdit(ctx, id)
	if err != nil {
		h.writeError(ctx, w, "failed to load owner for edit", err, "owner_id", id)
		return
	}
	writeOutcome(w, r, outcome)
}

func (h *Handler) handleProcessUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseOwnerID(r)
	if err != nil {
		h.writeError(ctx, w, "invalid owner id", err)
		return
	}
	owner, err := decodeOwnerForm(r)
	if err != nil {
		h.writeError(ctx, w, "invalid owner form", err)
		return
	}

	outcome, err := h.service.Update(ctx, id, owner)
	if err != nil {
		h.writeError(ctx, w, "failed to update owner", err, "owner_id", id)
		return
	}
	writeOutcome(w, r, outcome)
}

// writeError logs client faults at warn and everything else at error, then
// writes the JSON error envelope.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err.Error(), "request_id", middleware.GetRequestID(ctx))
	if isClientFault(err) {
		h.logger.WarnContext(ctx, msg, attrs...)
	} else {
		h.logger.ErrorContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func isClientFault(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound) ||
		dErrors.HasCode(err, dErrors.CodeBadRequest) ||
		dErrors.HasCode(err, dErrors.CodeNotFound)
}
