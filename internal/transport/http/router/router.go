package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thorryuk/Sekai---Backend/internal/logger"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/handlers"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/middleware"
)

type Deps struct {
	Auth   *handlers.AuthHandler
	Stores *handlers.RecordsHandler
	Scans  *handlers.RecordsHandler

	// AccessMW gates data routes on access tokens, RefreshMW gates the
	// refresh endpoint on refresh tokens.
	AccessMW  func(http.Handler) http.Handler
	RefreshMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Stores == nil || deps.Scans == nil {
		return nil, fmt.Errorf("nil records handler")
	}
	if deps.AccessMW == nil || deps.RefreshMW == nil {
		return nil, fmt.Errorf("nil auth middleware")
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.HTTPLogger(logger.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", deps.Auth.Login)
	r.With(deps.RefreshMW).Post("/refresh", deps.Auth.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(deps.AccessMW)

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", deps.Stores.List)
			r.Post("/", deps.Stores.Create)
			r.Get("/{id}", deps.Stores.Get)
			r.Put("/{id}", deps.Stores.Update)
			r.Delete("/{id}", deps.Stores.Delete)
		})

		r.Route("/scans", func(r chi.Router) {
			r.Get("/", deps.Scans.List)
			r.Post("/", deps.Scans.Create)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/stores", deps.Stores.Report)
			r.Get("/scans", deps.Scans.Report)
		})
	})

	return r, nil
}
