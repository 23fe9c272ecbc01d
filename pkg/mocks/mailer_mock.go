package mocks

import (
	"context"

	"github.com/maintops/maintops/pkg/mailer"
	"github.com/stretchr/testify/mock"
)

// MockTransport is a mock implementation of mailer.Transport interface.
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, message mailer.Message) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}
