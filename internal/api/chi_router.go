// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/modista/internal/middleware"
)

// Router wires handlers, middleware, and routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(handler.cfg.API),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.RequestLogger)

	// Health endpoints get a permissive rate limit for probes
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Session and analysis endpoints
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Post("/", router.handler.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Delete("/", router.handler.DeleteSession)
			r.Get("/summary", router.handler.SessionSummary)

			r.Post("/ratings", router.handler.UploadRatings)
			r.Post("/generate", router.handler.GenerateRatings)
			r.Get("/ratings/export", router.handler.ExportRatings)

			r.Get("/pivot", router.handler.Pivot)
			r.Get("/similarity/{axis}", router.handler.Similarity)
			r.Get("/neighbors/{axis}/{id}", router.handler.Neighbors)
			r.Get("/recommendations/{userID}", router.handler.Recommendations)
			r.Get("/items/similar/{itemID}", router.handler.SimilarItems)

			r.Post("/datasets/{name}", router.handler.SaveDataset)
			r.Post("/datasets/{name}/load", router.handler.LoadDataset)
		})
	})

	// Dataset store endpoints
	r.Route("/api/v1/datasets", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.ListDatasets)
		r.Get("/{name}", router.handler.DatasetSummary)
		r.Delete("/{name}", router.handler.DeleteDataset)
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
