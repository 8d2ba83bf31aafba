package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"cdvtrack/internal/session"
	"cdvtrack/internal/token"
)

// SessionCookie is the browser session cookie name.
const SessionCookie = "cdv_session"

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
}

// GuardKey scopes the duplicate-submission guard to the caller's session,
// falling back to the user for headless token clients.
func (id Identity) GuardKey() string {
	if id.SessionID != "" {
		return id.SessionID
	}
	return "user:" + strconv.FormatInt(id.UserID, 10)
}

// SessionReader looks sessions up by id.
type SessionReader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// TokenValidator verifies API bearer tokens.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// Auth authenticates via the session cookie, or a Bearer JWT for headless
// clients. Unauthenticated browser requests are redirected to the login page.
func Auth(sessions SessionReader, tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if sess, err := sessions.Get(r.Context(), cookie.Value); err == nil {
					ctx := WithIdentity(r.Context(), Identity{
						UserID:    sess.UserID,
						Username:  sess.Username,
						SessionID: sess.ID,
					})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if header := r.Header.Get("Authorization"); header != "" {
				parts := strings.SplitN(header, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					if claims, err := tokens.Validate(strings.TrimSpace(parts[1])); err == nil {
						ctx := WithIdentity(r.Context(), Identity{
							UserID:   claims.UserID,
							Username: claims.Username,
						})
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			http.Redirect(w, r, "/login/", http.StatusFound)
		})
	}
}

// WithIdentity stores the caller identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller identity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
