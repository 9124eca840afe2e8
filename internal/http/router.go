package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/ledger/internal/http/exclusion"
	"github.com/MrJamesThe3rd/ledger/internal/http/export"
	"github.com/MrJamesThe3rd/ledger/internal/http/ledger"
	"github.com/MrJamesThe3rd/ledger/internal/http/statement"
	"github.com/MrJamesThe3rd/ledger/internal/http/web"
)

func New(
	page *web.Handler,
	ledgerV1 *ledger.Handler,
	exclusionsV1 *exclusion.Handler,
	exportV1 *export.Handler,
	statementsV1 *statement.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	page.Routes(router)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		ledgerV1.Routes(r)

		r.Route("/exclusions", exclusionsV1.Routes)
		r.Route("/export", exportV1.Routes)

		// Uploads only exist for the csv source.
		if statementsV1 != nil {
			r.Route("/statements", statementsV1.Routes)
		}
	})

	return router
}
