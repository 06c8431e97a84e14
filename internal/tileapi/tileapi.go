// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tileapi exposes tile sources over HTTP.
package tileapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/airbusgeo/gdalkit"
	"github.com/airbusgeo/gdalkit/tiles"
)

// Server wires tile handlers and middleware using chi
type Server struct {
	layers map[string]tiles.Source
	log    *slog.Logger
	rt     *chi.Mux
}

// New constructs the HTTP server serving the given named layers
func New(layers map[string]tiles.Source, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(metricsMiddleware)

	s := &Server{layers: layers, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler
func (s *Server) Handler() http.Handler { return s.rt }

func (s *Server) routes() {
	s.rt.Get("/healthz", s.healthz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
	s.rt.Get("/tiles/{layer}/{z}/{x}/{y}", s.getTile)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) getTile(w http.ResponseWriter, r *http.Request) {
	src, ok := s.layers[chi.URLParam(r, "layer")]
	if !ok {
		http.Error(w, "unknown layer", http.StatusNotFound)
		return
	}
	tile, err := parseTile(chi.URLParam(r, "z"), chi.URLParam(r, "x"), chi.URLParam(r, "y"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := src.ReadTile(r.Context(), tile)
	switch {
	case err == nil:
	case tiles.IsNotFound(err):
		http.Error(w, "tile not found", http.StatusNotFound)
		return
	case errors.Is(err, gdalkit.OGRERR_FAILURE):
		http.Error(w, "invalid tile coordinates", http.StatusBadRequest)
		return
	default:
		s.log.Error("read tile", "tile", tile.String(), "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(src))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func parseTile(zs, xs, ys string) (tiles.Tile, error) {
	z, err := strconv.Atoi(zs)
	if err != nil {
		return tiles.Tile{}, errors.New("malformed zoom")
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return tiles.Tile{}, errors.New("malformed column")
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return tiles.Tile{}, errors.New("malformed row")
	}
	t := tiles.Tile{Z: z, X: x, Y: y}
	if !t.Valid() {
		return tiles.Tile{}, errors.New("tile coordinates out of range")
	}
	return t, nil
}

func contentType(src tiles.Source) string {
	format := ""
	if f, ok := src.(tiles.Formatter); ok {
		format = f.Format()
	}
	switch format {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "pbf", "mvt":
		return "application/x-protobuf"
	}
	return "application/octet-stream"
}
