package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lendfold/internal/platform/middleware"
	"lendfold/internal/transport/http/shared"
	dErrors "lendfold/pkg/domain-errors"
)

// Handler exposes the regulatory export endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the export routes. The router wiring applies identity
// middleware before these run.
func (h *Handler) Register(r chi.Router) {
	r.Post("/export/applications/{id}/regulatory", h.handleRegulatory)
}

func (h *Handler) handleRegulatory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid application id"))
		return
	}

	record, err := h.service.Regulatory(ctx, actor, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}
