package hearing

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/pkg/platform/httputil"
)

// Listener is what the handler asks.
type Listener interface {
	WhatIHeard(ctx context.Context) string
}

// Handler exposes the configured word over HTTP.
type Handler struct {
	listener Listener
}

func NewHandler(listener Listener) *Handler {
	return &Handler{listener: listener}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/hearing", h.handleWhatIHeard)
}

type wordResponse struct {
	Word string `json:"word"`
}

func (h *Handler) handleWhatIHeard(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, wordResponse{Word: h.listener.WhatIHeard(r.Context())})
}
