// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// course content API. Every resource lives under /api/v1; /health sits
// outside it.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"learnpress/internal/handlers"
	"learnpress/internal/logger"
	"learnpress/internal/middleware"
)

// Options configures the global middleware stack.
type Options struct {
	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string
	// Limiter throttles write requests per client. Nil disables throttling.
	Limiter middleware.Limiter
	// RetryAfter is advertised on throttled responses.
	RetryAfter time.Duration
	Log        *logger.Logger
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer(opts.Log))
	r.Use(middleware.Logger(opts.Log))
	r.Use(middleware.SecureHeaders)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", api.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NoStore)
		if opts.Limiter != nil {
			r.Use(middleware.RateLimit(opts.Limiter, opts.RetryAfter, opts.Log))
		}

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", api.ListCourses)
			r.Post("/", api.CreateCourse)
			r.Get("/id/{id}", api.GetCourseByID)
			r.Get("/{slug}", api.GetCourseBySlug)
			r.Patch("/{id}", api.UpdateCourse)
			r.Delete("/{id}", api.DeleteCourse)
			r.Post("/{courseId}/sections", api.CreateSection)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Put("/reorder", api.ReorderSections)
			r.Patch("/reorder", api.ReorderSections)
			r.Patch("/{id}", api.UpdateSection)
			r.Delete("/{id}", api.DeleteSection)
			r.Post("/{sectionId}/lessons", api.CreateLesson)
		})

		r.Route("/lessons", func(r chi.Router) {
			r.Put("/reorder", api.ReorderLessons)
			r.Patch("/reorder", api.ReorderLessons)
			r.Get("/{id}", api.GetLesson)
			r.Patch("/{id}", api.UpdateLesson)
			r.Delete("/{id}", api.DeleteLesson)
			r.Post("/{lessonId}/blocks", api.CreateBlock)
			r.Post("/{lessonId}/assets", api.UploadLessonAsset)
		})

		r.Route("/blocks", func(r chi.Router) {
			r.Put("/reorder", api.ReorderBlocks)
			r.Patch("/reorder", api.ReorderBlocks)
			r.Patch("/{id}", api.UpdateBlock)
			r.Delete("/{id}", api.DeleteBlock)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Route not found"}` + "\n"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"message":"Method not allowed"}` + "\n"))
	})

	return r
}
