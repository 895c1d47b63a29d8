package api

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/photos"
)

// handleHealth returns a liveness probe - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleDeckConfig serves deck-config.json from the photo directory when it
// exists, and otherwise synthesizes one by scanning the directory for image
// files, folding indexed filenames into their item name.
func (s *Server) handleDeckConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("api")

	onDisk := filepath.Join(s.PhotoDir, photos.DeckConfigFile)
	if _, err := os.Stat(onDisk); err == nil {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, onDisk)
		return
	}

	entries, err := os.ReadDir(s.PhotoDir)
	if err != nil {
		log.Error("failed to read photo directory %s: %v", s.PhotoDir, err)
		http.Error(w, "photo directory unavailable", http.StatusInternalServerError)
		return
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if photos.ContentTypeForExt(filepath.Ext(entry.Name())) == "" {
			continue
		}
		name := photos.ItemNameFromFilename(entry.Name())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	log.Debug("synthesized deck config with %d items", len(names))
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.DeckConfig{ItemNames: names}); err != nil {
		log.Error("failed to encode deck config: %v", err)
	}
}

// handlePhoto serves one image file with its exact content type. Anything
// that is not an accepted image is a 404, matching what the probe expects.
func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context()).WithPrefix("api")

	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) {
		http.NotFound(w, r)
		return
	}

	contentType := photos.ContentTypeForExt(filepath.Ext(filename))
	if contentType == "" {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(filepath.Join(s.PhotoDir, filename))
	if err != nil {
		log.Debug("photo not found: %s", filename)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, f); err != nil {
		log.Warn("failed to stream %s: %v", filename, err)
	}
}
