package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/photodeck/internal/api"
	"github.com/vytor/photodeck/internal/models"
)

func newPhotoServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
	}
	srv := httptest.NewServer((&api.Server{PhotoDir: dir}).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newPhotoServer(t, nil)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServePhoto_ContentTypes(t *testing.T) {
	srv := newPhotoServer(t, map[string][]byte{
		"cat.png":  []byte("png bytes"),
		"dog1.jpg": []byte("jpg bytes"),
	})

	tests := []struct {
		path        string
		contentType string
	}{
		{path: "/photo/cat.png", contentType: "image/png"},
		{path: "/photo/dog1.jpg", contentType: "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.NotEmpty(t, body)
		})
	}
}

func TestServePhoto_NotFound(t *testing.T) {
	srv := newPhotoServer(t, map[string][]byte{
		"cat.png":   []byte("png bytes"),
		"notes.txt": []byte("not an image"),
	})

	for _, path := range []string{"/photo/missing.png", "/photo/notes.txt", "/photo/cat.gif"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestDeckConfig_SynthesizedFromDirectory(t *testing.T) {
	srv := newPhotoServer(t, map[string][]byte{
		"cat.png":   []byte("a"),
		"cat1.png":  []byte("b"),
		"cat2.jpg":  []byte("c"),
		"dog1.jpg":  []byte("d"),
		"notes.txt": []byte("ignored"),
	})

	resp, err := http.Get(srv.URL + "/photo/deck-config.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var cfg models.DeckConfig
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	// Indexed filenames fold into one item, non-images are skipped.
	assert.Equal(t, []string{"cat", "dog"}, cfg.ItemNames)
}

func TestDeckConfig_OnDiskFileWins(t *testing.T) {
	srv := newPhotoServer(t, map[string][]byte{
		"deck-config.json": []byte(`{"itemNames":["owl"]}`),
		"cat.png":          []byte("a"),
	})

	resp, err := http.Get(srv.URL + "/photo/deck-config.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cfg models.DeckConfig
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	assert.Equal(t, []string{"owl"}, cfg.ItemNames)
}
