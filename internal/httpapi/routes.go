/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package httpapi serves snippet formatting over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bennypowers.dev/snipfmt/config"
)

// NewRouter returns the HTTP handler for the format, inspect and health routes.
// cfg supplies defaults that request fields override.
func NewRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{cfg: cfg}

	r.Get("/healthz", h.health)
	r.Post("/format", h.format)
	r.Post("/inspect", h.inspect)

	return r
}

type handler struct {
	cfg *config.Config
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
