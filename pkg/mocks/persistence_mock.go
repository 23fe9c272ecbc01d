package mocks

import (
	"context"
	"time"

	"github.com/maintops/maintops/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of
// persistence.NotificationRepository interface.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationRepository) BulkCreate(ctx context.Context, notifications []*models.Notification) error {
	args := m.Called(ctx, notifications)

	return args.Error(0)
}

func (m *MockNotificationRepository) ListByTypesSince(ctx context.Context, types []models.NotificationType, since time.Time) ([]*models.Notification, error) {
	args := m.Called(ctx, types, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Notification), args.Error(1)
}

// MockUserRepository is a mock implementation of persistence.UserRepository
// interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.User), args.Error(1)
}
