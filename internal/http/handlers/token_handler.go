package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cdvtrack/internal/service"
)

// TokenIssuer signs API tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID int64, username string) (string, error)
}

// NewTokenHandler handles POST /api/token for headless clients.
func NewTokenHandler(auth Authenticator, tokens TokenIssuer) http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type response struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		user, err := auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to login")
			return
		}

		token, err := tokens.Generate(user.ID, user.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		writeJSON(w, http.StatusOK, response{Token: token, TokenType: "Bearer"})
	}
}
