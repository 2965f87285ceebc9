// Package mocks provides mock implementations for testing database helpers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of TxManager for testing.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockTxManagerPassthrough is a TxManager that runs the function directly
// without a transaction, for tests that only care about the callback body.
type MockTxManagerPassthrough struct{}

// WithTx executes the function without opening a transaction.
func (m *MockTxManagerPassthrough) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
