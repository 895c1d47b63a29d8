package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/photodeck/internal/models"
	"github.com/vytor/photodeck/internal/repository"
)

// MockAnswerRepository is a mock implementation of repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

var _ repository.AnswerRepository = (*MockAnswerRepository)(nil)

func (m *MockAnswerRepository) Insert(ctx context.Context, a models.Answer) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) List(ctx context.Context, filter models.AnswerFilter) ([]models.Answer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) Stats(ctx context.Context) (models.AnswerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AnswerStats), args.Error(1)
}
