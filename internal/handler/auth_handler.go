package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/service"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	facade   *service.Facade
	tokens   *auth.TokenManager
	tokenTTL int // seconds, echoed in the login response
	logger   zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(facade *service.Facade, tokens *auth.TokenManager, tokenTTLSeconds int, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		facade:   facade,
		tokens:   tokens,
		tokenTTL: tokenTTLSeconds,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// loginResponse is the successful login body.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.facade.Authenticate(r.Context(), payload["email"], payload["password"])
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(account.ID, account.IsAdmin)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.tokenTTL,
	})
}
