package handlers

import (
	"context"

	"github.com/ipshopy/order-notify/internal/entity"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindWithPhone(ctx context.Context, orderID int) (*entity.Order, string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*entity.Order), args.String(1), args.Error(2)
}

func (m *MockOrderRepository) FindForAutomation(ctx context.Context, filter entity.AutomationFilter) ([]entity.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Order), args.Error(1)
}

// MockMessageGateway
type MockMessageGateway struct {
	mock.Mock
}

func (m *MockMessageGateway) SendOrderStatus(ctx context.Context, order *entity.Order, phone string) (int, map[string]any, error) {
	args := m.Called(ctx, order, phone)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).(map[string]any), args.Error(2)
}
