package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	facade *service.Facade
	logger zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(facade *service.Facade, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		facade: facade,
		logger: logger.With().Str("handler", "review").Logger(),
	}
}

// RegisterRoutes registers the review read routes.
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reviews", h.handleList)
	r.Get("/reviews/{id}", h.handleGet)
}

// RegisterProtectedRoutes registers the review mutation routes.
func (h *ReviewHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/reviews", h.handleCreate)
	r.Put("/reviews/{id}", h.handleUpdate)
	r.Delete("/reviews/{id}", h.handleDelete)
}

// handleCreate creates a review authored by the caller.
func (h *ReviewHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Error: "authentication required"})
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, present := payload["author_id"]; !present || !caller.IsAdmin {
		payload["author_id"] = caller.AccountID
	}

	review, err := h.facade.CreateReview(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Error: "authentication required"})
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	review, err := h.facade.UpdateReview(r.Context(), chi.URLParam(r, "id"), payload, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "unauthorized", Error: "authentication required"})
		return
	}

	if err := h.facade.DeleteReview(r.Context(), chi.URLParam(r, "id"), caller); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReviewHandler) handleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.ListReviews(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list reviews")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
