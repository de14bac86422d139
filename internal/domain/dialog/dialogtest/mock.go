// Package dialogtest provides a testify mock of the dialog service.
package dialogtest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock is a mock implementation of dialog.Service
type Mock struct {
	mock.Mock
}

// Confirm mocks dialog.Confirmer
func (m *Mock) Confirm(ctx context.Context, title, message string) (bool, error) {
	args := m.Called(ctx, title, message)
	return args.Bool(0), args.Error(1)
}

// Prompt mocks dialog.Prompter
func (m *Mock) Prompt(ctx context.Context, title, message, placeholder, defaultValue string) (string, bool, error) {
	args := m.Called(ctx, title, message, placeholder, defaultValue)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Alert mocks dialog.Alerter
func (m *Mock) Alert(ctx context.Context, title, message string) error {
	args := m.Called(ctx, title, message)
	return args.Error(0)
}
