package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// server is a local stand-in for the public albums API that actually
// persists writes.
type server struct {
	db *database
}

func newServer(db *database) http.Handler {
	s := &server{
		db: db,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/albums", func(r chi.Router) {
		r.Get("/", s.getAlbums)
		r.Post("/", s.postAlbum)
		r.Get("/{id}", s.getAlbum)
		r.Put("/{id}", s.putAlbum)
		r.Patch("/{id}", s.patchAlbum)
		r.Delete("/{id}", s.deleteAlbum)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusNotFound, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, http.StatusMethodNotAllowed, nil)
	})

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}

func (s *server) renderJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("serving json", "error", err)
	}
}

func (s *server) renderError(w http.ResponseWriter, code int, reqErr error) {
	message := http.StatusText(code)
	if reqErr != nil {
		if code >= http.StatusInternalServerError {
			slog.Error("serving json", "error", reqErr)
		}
		message = reqErr.Error()
	}

	s.renderJSON(w, code, map[string]string{"error": message})
}
