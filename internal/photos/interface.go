package photos

import (
	"context"

	"github.com/vytor/photodeck/internal/models"
)

// Fetcher defines the interface for photo resource fetching.
// This interface enables testability by allowing mock implementations.
type Fetcher interface {
	FetchDeckConfig(ctx context.Context) (models.DeckConfig, error)
	FetchImage(ctx context.Context, filename string) (string, error)
}

// Ensure Client implements the interface
var _ Fetcher = (*Client)(nil)
