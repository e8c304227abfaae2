// Package handler is the HTTP surface of the application record service. It
// decodes payloads, resolves the actor, and delegates; policy lives below.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lendfold/internal/access"
	"lendfold/internal/application/models"
	"lendfold/internal/platform/middleware"
	"lendfold/internal/ratelimit"
	"lendfold/internal/transport/http/shared"
	dErrors "lendfold/pkg/domain-errors"
)

// Service defines the application operations the handler needs.
type Service interface {
	Create(ctx context.Context, actor access.Actor, req *models.CreateRequest) (*models.View, error)
	Get(ctx context.Context, actor access.Actor, id uuid.UUID) (*models.View, error)
	List(ctx context.Context, actor access.Actor) ([]*models.View, error)
	Update(ctx context.Context, actor access.Actor, id uuid.UUID, req *models.UpdateRequest) (*models.View, error)
}

// Handler handles the /applications endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
	limiter *ratelimit.Limiter
}

func New(service Service, limiter *ratelimit.Limiter, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		limiter: limiter,
	}
}

// Register mounts the application routes. The router wiring applies identity
// middleware before these run.
func (h *Handler) Register(r chi.Router) {
	r.Post("/applications", h.handleCreate)
	r.Get("/applications", h.handleList)
	r.Get("/applications/{id}", h.handleGet)
	r.Patch("/applications/{id}", h.handleUpdate)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if err := h.limiter.Allow(ctx, actor.ID); err != nil {
		shared.WriteError(w, err)
		return
	}

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	view, err := h.service.Create(ctx, actor, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	view, err := h.service.Get(ctx, actor, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	views, err := h.service.List(ctx, actor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid update request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	view, err := h.service.Update(ctx, actor, id, &req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, view)
}
