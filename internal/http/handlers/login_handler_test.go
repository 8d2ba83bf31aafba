package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"cdvtrack/internal/http/middleware"
	"cdvtrack/internal/models"
	"cdvtrack/internal/service"
	"cdvtrack/internal/session"
)

type fakeAuth struct {
	user *models.User
	err  error
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeSessions struct {
	sess *session.Session
}

func (f *fakeSessions) Create(_ context.Context, userID int64, username string) (*session.Session, error) {
	f.sess = &session.Session{ID: "sess-login", UserID: userID, Username: username}
	return f.sess, nil
}

func testTemplates(t *testing.T) *Templates {
	t.Helper()
	tpl, err := NewTemplates(zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return tpl
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	auth := &fakeAuth{user: &models.User{ID: 7, Username: "tecnico"}}
	sessions := &fakeSessions{}
	h := NewLoginHandler(auth, sessions, testTemplates(t))

	form := url.Values{"username": {"tecnico"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect to %q", loc)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "sess-login" || !cookie.HttpOnly {
		t.Errorf("cookie = %+v", cookie)
	}
	if sessions.sess == nil || sessions.sess.UserID != 7 {
		t.Errorf("session = %+v", sessions.sess)
	}
}

func TestLoginBadCredentialsRerendersForm(t *testing.T) {
	h := NewLoginHandler(&fakeAuth{err: service.ErrInvalidCredentials}, &fakeSessions{}, testTemplates(t))

	form := url.Values{"username": {"tecnico"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nome de usuário ou senha incorretos.") {
		t.Error("form should carry the credential error")
	}
	if len(rec.Result().Cookies()) > 0 {
		t.Error("no cookie on failed login")
	}
}

func TestLoginGetRendersForm(t *testing.T) {
	h := NewLoginHandler(&fakeAuth{}, &fakeSessions{}, testTemplates(t))

	req := httptest.NewRequest(http.MethodGet, "/login/", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}
