package photos_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/photodeck/internal/errors"
	"github.com/vytor/photodeck/internal/photos"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *photos.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, photos.New(srv.URL, 5*time.Second)
}

func TestFetchDeckConfig(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photo/deck-config.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemNames":["cat","dog"]}`))
	})

	cfg, err := client.FetchDeckConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, cfg.ItemNames)
}

func TestFetchDeckConfig_NotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.FetchDeckConfig(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeFetch, appErr.Code)
}

func TestFetchDeckConfig_MalformedJSON(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"itemNames": [`))
	})

	_, err := client.FetchDeckConfig(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeDecode, appErr.Code)
}

func TestFetchImage(t *testing.T) {
	srv, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photo/cat.png", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("not real pixels"))
	})

	src, err := client.FetchImage(context.Background(), "cat.png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/photo/cat.png", src)
}

func TestFetchImage_NotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.FetchImage(context.Background(), "cat.png")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestFetchImage_RejectsContentTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		accepted    bool
	}{
		{name: "png", contentType: "image/png", accepted: true},
		{name: "jpeg", contentType: "image/jpeg", accepted: true},
		{name: "html", contentType: "text/html"},
		{name: "gif", contentType: "image/gif"},
		{name: "png with charset", contentType: "image/png; charset=utf-8"},
		{name: "empty", contentType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				} else {
					// Suppress sniffing so the header stays empty.
					w.Header()["Content-Type"] = nil
				}
				w.Write([]byte("payload"))
			})

			_, err := client.FetchImage(context.Background(), "cat.png")
			if tt.accepted {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNew_AddsTrailingSlash(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
	})

	// Base URL without trailing slash must still resolve photo/ paths.
	client := photos.New(srv.URL, time.Second)
	src, err := client.FetchImage(context.Background(), "cat.png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/photo/cat.png", src)
}
