package handler

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/preptrack/preptrack-go/internal/middleware"
)

// RouterOptions collects everything NewRouter wires together.
type RouterOptions struct {
	Auth      *AuthHandler
	Questions *QuestionHandler
	Tokens    middleware.TokenVerifier
	Logger    zerolog.Logger

	// Metrics and Gatherer are optional; /metrics is only served with a Gatherer.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	AllowedOrigins []string
}

// routeMethods are the methods probed when building an Allow header.
var routeMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// standardMethods are the methods chi routes by name.
var standardMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

// NewRouter builds the HTTP API.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Handler)
	}
	r.Use(middleware.RouteSpanName)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.TokenHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse("Endpoint not found"))
	})
	r.MethodNotAllowed(methodNotAllowed(r))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/api/auth/register", opts.Auth.HandleRegister)
	r.Post("/api/auth/login", opts.Auth.HandleLogin)
	r.Post("/api/auth/*", opts.Auth.HandleUnknown)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(opts.Tokens))

		r.Get("/api/questions", opts.Questions.HandleList)
		r.Post("/api/questions", opts.Questions.HandleCreate)
		r.Put("/api/questions/{questionID}", opts.Questions.HandleUpdate)
		r.Delete("/api/questions/{questionID}", opts.Questions.HandleDelete)

		// Unsupported methods on question routes are authenticated first.
		methodFallback(r, "/api/questions", http.MethodGet, http.MethodPost)
		methodFallback(r, "/api/questions/{questionID}", http.MethodPut, http.MethodDelete)
	})

	return otelhttp.NewHandler(r, "preptrack-api")
}

// methodFallback routes every standard method on pattern that is not in
// allowed to a 405 with a fixed Allow header.
func methodFallback(r chi.Router, pattern string, allowed ...string) {
	h := notAllowed(allowed)
	for _, method := range standardMethods {
		if !slices.Contains(allowed, method) {
			r.Method(method, pattern, h)
		}
	}
}

// methodNotAllowed answers with 405 and an Allow header listing the methods
// the matched path does accept.
func methodNotAllowed(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.RawPath
		if path == "" {
			path = r.URL.Path
		}

		var allowed []string
		for _, method := range routeMethods {
			if routes.Match(chi.NewRouteContext(), method, path) {
				allowed = append(allowed, method)
			}
		}
		notAllowed(allowed).ServeHTTP(w, r)
	}
}

func notAllowed(allowed []string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse(fmt.Sprintf("Method %s Not Allowed", r.Method)))
	}
}
