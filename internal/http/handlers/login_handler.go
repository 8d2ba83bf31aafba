package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cdvtrack/internal/http/middleware"
	"cdvtrack/internal/models"
	"cdvtrack/internal/service"
	"cdvtrack/internal/session"
)

// Authenticator verifies operator credentials.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// SessionOpener creates browser sessions.
type SessionOpener interface {
	Create(ctx context.Context, userID int64, username string) (*session.Session, error)
}

// NewLoginHandler serves the login form and processes submissions.
func NewLoginHandler(auth Authenticator, sessions SessionOpener, templates *Templates) http.HandlerFunc {
	type pageData struct {
		Error string
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			templates.render(w, "login.html", pageData{})
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", "GET, POST")
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if err := r.ParseForm(); err != nil {
			templates.render(w, "login.html", pageData{Error: "Nome de usuário ou senha incorretos."})
			return
		}

		username := strings.TrimSpace(r.PostFormValue("username"))
		pass := r.PostFormValue("password")

		user, err := auth.Login(r.Context(), username, pass)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				templates.render(w, "login.html", pageData{Error: "Nome de usuário ou senha incorretos."})
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to login")
			return
		}

		sess, err := sessions.Create(r.Context(), user.ID, user.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to open session")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
