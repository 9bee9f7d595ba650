package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/service"
)

// AccountHandler handles account endpoints.
type AccountHandler struct {
	facade *service.Facade
	logger zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(facade *service.Facade, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		facade: facade,
		logger: logger.With().Str("handler", "account").Logger(),
	}
}

// RegisterRoutes registers account routes on an authenticated router.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.With(auth.RequireAdmin).Post("/accounts", h.handleCreate)
	r.Get("/accounts", h.handleList)
	r.Get("/accounts/{id}", h.handleGet)
	r.Put("/accounts/{id}", h.handleUpdate)
	r.Get("/accounts/{id}/listings", h.handleListings)
	r.Get("/accounts/{id}/reviews", h.handleReviews)
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.facade.CreateAccount(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.facade.ListAccounts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list accounts")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	account, err := h.facade.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// handleUpdate lets an account edit itself; admins may edit anyone.
func (h *AccountHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok || !caller.Allows(id) {
		writeJSON(w, http.StatusForbidden, errorResponse{Code: "forbidden", Error: "forbidden"})
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Only admins may grant or revoke admin rights.
	if !caller.IsAdmin {
		delete(payload, "is_admin")
	}

	account, err := h.facade.UpdateAccount(r.Context(), id, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) handleListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.facade.GetListingsByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *AccountHandler) handleReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.facade.GetReviewsByAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
