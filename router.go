package main

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openapiYAML []byte

// routes wires middlewares and endpoints.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(a.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", a.handleIndex)
	r.Get("/healthz", a.handleHealth)
	r.Get("/readyz", a.handleReady)
	r.Method(http.MethodGet, "/metrics", a.metrics.handler())

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		_, _ = w.Write(openapiYAML)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Post("/predict", a.handlePredict)
	r.Post("/store-selected-crops", a.handleStoreSelectedCrops)
	r.Get("/predictions/{id}", a.handleGetPrediction)

	return r
}
