package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/photodeck/internal/repository"
)

// MockKVRepository is a mock implementation of repository.KVRepository
type MockKVRepository struct {
	mock.Mock
}

var _ repository.KVRepository = (*MockKVRepository)(nil)

func (m *MockKVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKVRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
