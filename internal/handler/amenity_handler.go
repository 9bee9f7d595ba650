package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/service"
)

// AmenityHandler handles amenity endpoints. The catalog is public to
// read; only admins maintain it.
type AmenityHandler struct {
	facade *service.Facade
	logger zerolog.Logger
}

// NewAmenityHandler creates a new AmenityHandler.
func NewAmenityHandler(facade *service.Facade, logger zerolog.Logger) *AmenityHandler {
	return &AmenityHandler{
		facade: facade,
		logger: logger.With().Str("handler", "amenity").Logger(),
	}
}

// RegisterRoutes registers the amenity read routes.
func (h *AmenityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/amenities", h.handleList)
	r.Get("/amenities/{id}", h.handleGet)
}

// RegisterProtectedRoutes registers the amenity mutation routes.
func (h *AmenityHandler) RegisterProtectedRoutes(r chi.Router) {
	r.With(auth.RequireAdmin).Post("/amenities", h.handleCreate)
	r.With(auth.RequireAdmin).Put("/amenities/{id}", h.handleUpdate)
}

func (h *AmenityHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	amenity, err := h.facade.CreateAmenity(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, amenity)
}

func (h *AmenityHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	amenity, err := h.facade.UpdateAmenity(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}

func (h *AmenityHandler) handleList(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.facade.ListAmenities(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list amenities")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, amenities)
}

func (h *AmenityHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.facade.GetAmenity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}
