package handlers

import (
	"context"
	"net/http"

	"cdvtrack/internal/http/middleware"
)

// SessionCloser ends browser sessions.
type SessionCloser interface {
	Delete(ctx context.Context, id string) error
}

// NewLogoutHandler drops the caller's session and sends them to the login page.
func NewLogoutHandler(sessions SessionCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, ok := middleware.IdentityFromContext(r.Context()); ok && id.SessionID != "" {
			_ = sessions.Delete(r.Context(), id.SessionID)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		http.Redirect(w, r, "/login/", http.StatusFound)
	}
}
