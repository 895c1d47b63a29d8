package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/photos"
)

// MockFetcher is a mock implementation of photos.Fetcher
type MockFetcher struct {
	mock.Mock
}

var _ photos.Fetcher = (*MockFetcher)(nil)

func (m *MockFetcher) FetchDeckConfig(ctx context.Context) (models.DeckConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DeckConfig), args.Error(1)
}

func (m *MockFetcher) FetchImage(ctx context.Context, filename string) (string, error) {
	args := m.Called(ctx, filename)
	return args.String(0), args.Error(1)
}
