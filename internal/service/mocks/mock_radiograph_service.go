package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"xraysim/internal/model"
	"xraysim/internal/service"
)

type MockRadiographService struct {
	mock.Mock
}

func (m *MockRadiographService) Render(ctx context.Context, req service.RenderRequest) (*service.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RenderResult), args.Error(1)
}

func (m *MockRadiographService) Summarize(ctx context.Context, req service.RenderRequest) (*service.Summary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}

func (m *MockRadiographService) Export(ctx context.Context, req service.RenderRequest) (*model.Radiograph, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Radiograph), args.Error(1)
}

func (m *MockRadiographService) List(ctx context.Context, limit, offset int) (*service.RadiographListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RadiographListResult), args.Error(1)
}

func (m *MockRadiographService) Get(ctx context.Context, id string) (*model.Radiograph, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Radiograph), args.Error(1)
}

func (m *MockRadiographService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Radiograph, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.Radiograph), args.Error(2)
}

func (m *MockRadiographService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockRadiographService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
