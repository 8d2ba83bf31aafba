package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func stubRoutes(t *testing.T) Routes {
	t.Helper()
	named := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Handler", name)
			w.WriteHeader(http.StatusOK)
		}
	}
	return Routes{
		Index:        named("index"),
		Login:        named("login"),
		Logout:       named("logout"),
		RegisterPage: named("register"),
		SaveReadings: named("save"),
		ReportPage:   named("report-page"),
		Report:       named("report"),
		Token:        named("token"),
		Health:       named("health"),
	}
}

func passAuth(next http.Handler) http.Handler { return next }

func redirectAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login/", http.StatusFound)
	})
}

func TestRouterDispatch(t *testing.T) {
	router := NewRouter(stubRoutes(t), passAuth)

	cases := []struct {
		method, path string
		wantStatus   int
		wantHandler  string
	}{
		{http.MethodGet, "/login/", http.StatusOK, "login"},
		{http.MethodGet, "/health", http.StatusOK, "health"},
		{http.MethodPost, "/api/token", http.StatusOK, "token"},
		{http.MethodGet, "/", http.StatusOK, "index"},
		{http.MethodGet, "/registrar_cdv/", http.StatusOK, "register"},
		{http.MethodPost, "/salvar_dados_cdv/", http.StatusOK, "save"},
		{http.MethodGet, "/gerar_relatorio_excel/", http.StatusOK, "report-page"},
		{http.MethodGet, "/gerar_excel/", http.StatusOK, "report"},
		{http.MethodGet, "/salvar_dados_cdv/", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/gerar_excel/", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/api/token", http.StatusMethodNotAllowed, ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tc.wantStatus {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.wantStatus)
		}
		if tc.wantHandler != "" && rec.Header().Get("X-Handler") != tc.wantHandler {
			t.Errorf("%s %s: handler = %q, want %q", tc.method, tc.path, rec.Header().Get("X-Handler"), tc.wantHandler)
		}
	}
}

func TestRouterAuthRunsBeforeMethodCheck(t *testing.T) {
	router := NewRouter(stubRoutes(t), redirectAuth)

	// A wrong-method request from an anonymous caller is redirected to
	// login rather than answered with 405.
	req := httptest.NewRequest(http.MethodGet, "/salvar_dados_cdv/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login/" {
		t.Errorf("redirect to %q", loc)
	}
}

func TestRouterOpenEndpointsSkipAuth(t *testing.T) {
	router := NewRouter(stubRoutes(t), redirectAuth)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/login/"},
		{http.MethodPost, "/api/token"},
		{http.MethodGet, "/health"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d", tc.method, tc.path, rec.Code)
		}
	}
}
