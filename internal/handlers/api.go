// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API over the content tree. Handlers
// decode and validate requests, call tree.Service, and map its errors onto
// HTTP statuses.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"learnpress/internal/apperr"
	"learnpress/internal/logger"
	"learnpress/internal/tree"
)

// AssetStore receives uploaded lesson assets. *storage.Client implements it.
type AssetStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// DefaultMaxUploadBytes is used when Options.MaxUploadBytes is zero.
const DefaultMaxUploadBytes = 10 << 20

// Options configures optional API features.
type Options struct {
	// Assets enables lesson asset uploads. Nil disables them.
	Assets         AssetStore
	MaxUploadBytes int64
}

// API holds the dependencies shared by every handler.
type API struct {
	svc       *tree.Service
	assets    AssetStore
	maxUpload int64
	log       *logger.Logger
}

// New creates the API handlers.
func New(svc *tree.Service, log *logger.Logger, opts Options) *API {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &API{
		svc:       svc,
		assets:    opts.Assets,
		maxUpload: opts.MaxUploadBytes,
		log:       log.With("component", "api"),
	}
}

// Health reports that the process is serving requests.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a UUID path parameter. A malformed id cannot name an
// existing row, so it is reported as entity not found.
func pathID(r *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperr.NotFound(entity)
	}
	return id, nil
}
