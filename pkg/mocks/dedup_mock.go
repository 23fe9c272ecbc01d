package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTracker is a mock implementation of dedup.Tracker interface.
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) AlreadyNotified(ctx context.Context, subjectID string, window time.Duration) (bool, error) {
	args := m.Called(ctx, subjectID, window)

	return args.Bool(0), args.Error(1)
}

func (m *MockTracker) Remember(ctx context.Context, subjectID string, window time.Duration) error {
	args := m.Called(ctx, subjectID, window)

	return args.Error(0)
}
