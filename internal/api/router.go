package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server serves a local photo folder in the layout the deck loader probes:
// images under /photo/ with exact content types, plus a deck-config.json
// synthesized from the folder when none exists on disk.
type Server struct {
	PhotoDir string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/photo/deck-config.json", s.handleDeckConfig)
	r.Get("/photo/{filename}", s.handlePhoto)

	return r
}
