package repository

import (
	"context"

	"github.com/vytor/photodeck/internal/models"
)

// KVRepository is the key-value persistence store the session writes through.
// Values survive process restarts on the same device.
type KVRepository interface {
	// Get returns the value stored under key, with ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AnswerRepository is the persistent per-answer review log.
type AnswerRepository interface {
	Insert(ctx context.Context, a models.Answer) (int64, error)
	List(ctx context.Context, filter models.AnswerFilter) ([]models.Answer, error)
	Stats(ctx context.Context) (models.AnswerStats, error)
}
