package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"beauty-assistant/internal/handlers"
	"beauty-assistant/internal/middleware"
)

func New(
	proxyHandler *handlers.ProxyHandler,
	catalogHandler *handlers.CatalogHandler,
	allowedOrigin string,
	logRequests bool,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if logRequests {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(allowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/products", catalogHandler.List)

	// Everything else is the completion relay, whatever the path.
	r.HandleFunc("/", proxyHandler.Forward)
	r.HandleFunc("/*", proxyHandler.Forward)

	return r
}
