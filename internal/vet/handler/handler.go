package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/platform/middleware"
	"petclinic/internal/vet/models"
	"petclinic/pkg/platform/httputil"
)

// ViewVetList is the page that lists every vet.
const ViewVetList = "vets/vetList"

// Service lists vets.
type Service interface {
	FindVets(ctx context.Context) ([]*models.Vet, error)
}

// Handler serves the vet list as a page and as a resource.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/vets.html", h.handleShowVetList)
	r.Get("/vets", h.handleShowResourcesVetList)
	r.Get("/vets.json", h.handleShowResourcesVetList)
}

type viewResponse struct {
	View  string         `json:"view"`
	Model map[string]any `json:"model"`
}

func (h *Handler) handleShowVetList(w http.ResponseWriter, r *http.Request) {
	vets, ok := h.findVets(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewResponse{
		View:  ViewVetList,
		Model: map[string]any{"vets": models.Vets{VetList: vets}},
	})
}

func (h *Handler) handleShowResourcesVetList(w http.ResponseWriter, r *http.Request) {
	vets, ok := h.findVets(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.Vets{VetList: vets})
}

func (h *Handler) findVets(w http.ResponseWriter, r *http.Request) ([]*models.Vet, bool) {
	ctx := r.Context()
	vets, err := h.service.FindVets(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list vets",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	if vets == nil {
		vets = []*models.Vet{}
	}
	return vets, true
}
