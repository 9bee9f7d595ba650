package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/service"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	facade *service.Facade
	logger zerolog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(facade *service.Facade, logger zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		facade: facade,
		logger: logger.With().Str("handler", "listing").Logger(),
	}
}

// RegisterRoutes registers the listing read routes.
func (h *ListingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/listings", h.handleList)
	r.Get("/listings/{id}", h.handleGet)
	r.Get("/listings/{id}/reviews", h.handleReviews)
	r.Get("/listings/{id}/rating", h.handleRating)
}

// RegisterProtectedRoutes registers the listing mutation routes, which
// require authentication.
func (h *ListingHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/listings", h.handleCreate)
	r.Put("/listings/{id}", h.handleUpdate)
}

// handleCreate creates a listing owned by the caller. Admins may create
// on behalf of another account by supplying owner_id.
func (h *ListingHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
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
	if _, present := payload["owner_id"]; !present || !caller.IsAdmin {
		payload["owner_id"] = caller.AccountID
	}

	listing, err := h.facade.CreateListing(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	listing, err := h.facade.UpdateListing(r.Context(), chi.URLParam(r, "id"), payload, caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) handleList(w http.ResponseWriter, r *http.Request) {
	listings, err := h.facade.ListListings(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list listings")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	listing, err := h.facade.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) handleReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.GetReviewsByListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// ratingResponse reports the average rating of a listing. A listing
// without reviews has a null rating, never a zero.
type ratingResponse struct {
	ListingID     string   `json:"listing_id"`
	AverageRating *float64 `json:"average_rating"`
}

func (h *ListingHandler) handleRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	avg, err := h.facade.AverageRating(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNoRatings) {
			writeJSON(w, http.StatusOK, ratingResponse{ListingID: id})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{ListingID: id, AverageRating: &avg})
}
