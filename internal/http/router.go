package httpserver

import (
	"net/http"

	"cdvtrack/internal/http/middleware"
)

// Routes aggregates the handlers for the router.
type Routes struct {
	Index        http.HandlerFunc
	Login        http.HandlerFunc
	Logout       http.HandlerFunc
	RegisterPage http.HandlerFunc
	SaveReadings http.HandlerFunc
	ReportPage   http.HandlerFunc
	Report       http.HandlerFunc
	Token        http.HandlerFunc
	Health       http.HandlerFunc
}

// NewRouter wires all HTTP routes. Everything except the login page, the API
// token endpoint and the health probe sits behind the auth middleware.
func NewRouter(routes Routes, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, auth)
	}

	mux.Handle("/login/", routes.Login)
	mux.Handle("/api/token", method(http.MethodPost, routes.Token))
	mux.Handle("/health", method(http.MethodGet, routes.Health))

	mux.Handle("/logout/", authenticated(routes.Logout))
	mux.Handle("/registrar_cdv/", authenticated(method(http.MethodGet, routes.RegisterPage)))
	mux.Handle("/salvar_dados_cdv/", authenticated(method(http.MethodPost, routes.SaveReadings)))
	mux.Handle("/gerar_relatorio_excel/", authenticated(method(http.MethodGet, routes.ReportPage)))
	mux.Handle("/gerar_excel/", authenticated(method(http.MethodGet, routes.Report)))
	mux.Handle("/", authenticated(routes.Index))

	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
