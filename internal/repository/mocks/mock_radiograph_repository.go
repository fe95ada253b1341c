package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"xraysim/internal/model"
	"xraysim/internal/repository"
)

type MockRadiographRepository struct {
	mock.Mock
}

func (m *MockRadiographRepository) Create(ctx context.Context, r *model.Radiograph) (*model.Radiograph, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Radiograph), args.Error(1)
}

func (m *MockRadiographRepository) FindByID(ctx context.Context, id string) (*model.Radiograph, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Radiograph), args.Error(1)
}

func (m *MockRadiographRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Radiograph], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Radiograph]), args.Error(1)
}

func (m *MockRadiographRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
