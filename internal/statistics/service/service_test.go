package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/statistics/model"
	"github.com/festy23/pitmstr/internal/statistics/repository"
)

// mockRepository is a mock implementation of repository.Repository for unit tests.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CountEvents(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) CountSchools(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) TeamStates(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

var _ repository.Repository = (*mockRepository)(nil)

func TestService_GetTotals(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("CountEvents", mock.Anything).Return(12, nil)
		mockRepo.On("CountSchools", mock.Anything).Return(30, nil)
		mockRepo.On("TeamStates", mock.Anything).Return(45, 6, nil)

		totals, err := New(mockRepo, zap.NewNop().Sugar()).GetTotals(ctx)

		require.NoError(t, err)
		assert.Equal(t, &model.Totals{Events: 12, Teams: 45, Schools: 30, States: 6}, totals)
		mockRepo.AssertExpectations(t)
	})

	t.Run("one table fails", func(t *testing.T) {
		mockRepo := new(mockRepository)
		mockRepo.On("CountEvents", mock.Anything).Return(12, nil)
		mockRepo.On("CountSchools", mock.Anything).Return(0, errors.New("rate limited"))
		mockRepo.On("TeamStates", mock.Anything).Return(45, 6, nil)

		totals, err := New(mockRepo, zap.NewNop().Sugar()).GetTotals(ctx)

		assert.Nil(t, totals)
		assert.EqualError(t, err, "rate limited")
	})
}
