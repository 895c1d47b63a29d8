package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/vytor/photodeck/internal/errors"
	"github.com/vytor/photodeck/internal/logger"
	"github.com/vytor/photodeck/internal/models"
)

// DeckConfigFile is the deck description resource under the photo base URL.
const DeckConfigFile = "deck-config.json"

// Client fetches deck configs and photo images from a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a Client rooted at baseURL. A trailing slash is added if missing.
func New(baseURL string, timeout time.Duration) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Default().WithPrefix("photos"),
	}
}

// FetchDeckConfig retrieves and decodes photo/deck-config.json.
func (c *Client) FetchDeckConfig(ctx context.Context) (models.DeckConfig, error) {
	log := logger.FromContext(ctx).WithPrefix("photos")
	url := c.baseURL + "photo/" + DeckConfigFile

	log.Debug("fetching deck config from: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.DeckConfig{}, apperrors.NewFetchError(DeckConfigFile, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("deck config fetch failed: %v", err)
		return models.DeckConfig{}, apperrors.NewFetchError(DeckConfigFile, err)
	}
	defer resp.Body.Close()

	log.Debug("deck config response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.DeckConfig{}, apperrors.NewFetchError(DeckConfigFile,
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var cfg models.DeckConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		log.Debug("deck config decode failed: %v", err)
		return models.DeckConfig{}, apperrors.NewDecodeError(DeckConfigFile, err)
	}

	log.Info("fetched deck config with %d item names", len(cfg.ItemNames))
	return cfg, nil
}

// FetchImage attempts to load photo/<filename> and returns its resolved URL.
// Any status other than 200, or any content type other than exactly image/png
// or image/jpeg, is an error.
func (c *Client) FetchImage(ctx context.Context, filename string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("photos")
	url := c.baseURL + "photo/" + filename

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.NewFetchError(filename, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewFetchError(filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewNotFoundError("image", filename)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != ContentTypePNG && contentType != ContentTypeJPEG {
		log.Debug("rejecting %s: content type %q", filename, contentType)
		return "", apperrors.NewValidationError("content-type",
			fmt.Sprintf("%q is not an accepted image type", contentType))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return url, nil
}
