package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/rest-application/internal/http/health"
	"github.com/janisto/rest-application/internal/http/routes"
	"github.com/janisto/rest-application/internal/platform/config"
	applog "github.com/janisto/rest-application/internal/platform/logging"
	"github.com/janisto/rest-application/internal/platform/metrics"
	appmiddleware "github.com/janisto/rest-application/internal/platform/middleware"
	"github.com/janisto/rest-application/internal/platform/respond"
)

const docsPath = "/api-docs"

func newRouter(cfg config.Config, m *metrics.Metrics) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For. Only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		// GetHead answers HEAD with the GET handler when no HEAD route exists.
		chimiddleware.GetHead,
		applog.RequestLogger(cfg.ProjectID),
		applog.AccessLogger(),
		m.Middleware(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(Version))
	router.Method(http.MethodGet, "/metrics", m.Handler())

	humaCfg := huma.DefaultConfig("REST Application API", Version)
	if cfg.DocsEnabled {
		humaCfg.DocsPath = docsPath
	} else {
		humaCfg.DocsPath = ""
		humaCfg.OpenAPIPath = ""
		humaCfg.SchemasPath = ""
	}
	api := humachi.New(router, humaCfg)

	// Error responses are negotiated between JSON and CBOR; document both.
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if problem, ok := resp.Content["application/problem+json"]; ok {
					resp.Content["application/problem+cbor"] = problem
				}
			}
		},
	)

	routes.Register(api)
	return router
}
