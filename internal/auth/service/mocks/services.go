// Package mocks provides mock implementations for testing services.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// MockTokenCodec is a mock implementation of TokenCodec for testing.
type MockTokenCodec struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenCodec.
func (m *MockTokenCodec) Issue(identity authDomain.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// Verify mocks the Verify method of TokenCodec.
func (m *MockTokenCodec) Verify(token string) (*authDomain.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// MockPasswordService is a mock implementation of PasswordService for testing.
type MockPasswordService struct {
	mock.Mock
}

// HashPassword mocks the HashPassword method of PasswordService.
func (m *MockPasswordService) HashPassword(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

// ComparePassword mocks the ComparePassword method of PasswordService.
func (m *MockPasswordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}
