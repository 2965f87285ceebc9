package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// SignIn mocks the SignIn method of SessionUseCase.
func (m *MockSessionUseCase) SignIn(ctx context.Context, input authDomain.SignInInput) (*authDomain.SignInOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SignInOutput), args.Error(1)
}

// Authenticate mocks the Authenticate method of SessionUseCase.
func (m *MockSessionUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

// MockAuthorizerUseCase is a mock implementation of AuthorizerUseCase for testing.
type MockAuthorizerUseCase struct {
	mock.Mock
}

// CheckLive mocks the CheckLive method of AuthorizerUseCase.
func (m *MockAuthorizerUseCase) CheckLive(ctx context.Context, accountID uuid.UUID) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// Resolve mocks the Resolve method of AuthorizerUseCase.
func (m *MockAuthorizerUseCase) Resolve(ctx context.Context, accountID uuid.UUID) (authDomain.CapabilitySet, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(authDomain.CapabilitySet), args.Error(1)
}

// MockAccountUseCase is a mock implementation of AccountUseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// CreateAccount mocks the CreateAccount method of AccountUseCase.
func (m *MockAccountUseCase) CreateAccount(ctx context.Context, input authDomain.CreateAccountInput) (*authDomain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// DeleteAccount mocks the DeleteAccount method of AccountUseCase.
func (m *MockAccountUseCase) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetAccount mocks the GetAccount method of AccountUseCase.
func (m *MockAccountUseCase) GetAccount(ctx context.Context, id uuid.UUID) (*authDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// ListAccounts mocks the ListAccounts method of AccountUseCase.
func (m *MockAccountUseCase) ListAccounts(ctx context.Context, offset, limit int) ([]*authDomain.Account, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Account), args.Error(1)
}

// CreateRole mocks the CreateRole method of AccountUseCase.
func (m *MockAccountUseCase) CreateRole(ctx context.Context, name string) (*authDomain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

// ListRoles mocks the ListRoles method of AccountUseCase.
func (m *MockAccountUseCase) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

// CreateCapability mocks the CreateCapability method of AccountUseCase.
func (m *MockAccountUseCase) CreateCapability(ctx context.Context, name string) (*authDomain.Capability, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Capability), args.Error(1)
}

// ListCapabilities mocks the ListCapabilities method of AccountUseCase.
func (m *MockAccountUseCase) ListCapabilities(ctx context.Context, offset, limit int) ([]*authDomain.Capability, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Capability), args.Error(1)
}

// GrantRoleCapability mocks the GrantRoleCapability method of AccountUseCase.
func (m *MockAccountUseCase) GrantRoleCapability(ctx context.Context, roleName, capabilityName string) error {
	args := m.Called(ctx, roleName, capabilityName)
	return args.Error(0)
}

// GrantAccountCapability mocks the GrantAccountCapability method of AccountUseCase.
func (m *MockAccountUseCase) GrantAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error {
	args := m.Called(ctx, accountID, capabilityName)
	return args.Error(0)
}

// RevokeAccountCapability mocks the RevokeAccountCapability method of AccountUseCase.
func (m *MockAccountUseCase) RevokeAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error {
	args := m.Called(ctx, accountID, capabilityName)
	return args.Error(0)
}
