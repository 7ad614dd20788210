package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/pettype/models"
	"petclinic/internal/platform/middleware"
	"petclinic/pkg/platform/httputil"
)

// Service lists pet types.
type Service interface {
	FindPetTypes(ctx context.Context) ([]*models.PetType, error)
}

// Handler serves the pet type list used to populate pet forms.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/petTypes", h.handleListPetTypes)
}

func (h *Handler) handleListPetTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	types, err := h.service.FindPetTypes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list pet types",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if types == nil {
		types = []*models.PetType{}
	}
	httputil.WriteJSON(w, http.StatusOK, types)
}
