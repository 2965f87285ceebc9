// Package mocks provides mock implementations for testing use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing.
type MockAccountRepository struct {
	mock.Mock
}

// Create mocks the Create method of AccountRepository.
func (m *MockAccountRepository) Create(ctx context.Context, account *authDomain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByID mocks the GetByID method of AccountRepository.
func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*authDomain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// GetByUsername mocks the GetByUsername method of AccountRepository.
func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*authDomain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Account), args.Error(1)
}

// IsLive mocks the IsLive method of AccountRepository.
func (m *MockAccountRepository) IsLive(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// List mocks the List method of AccountRepository.
func (m *MockAccountRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Account, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Account), args.Error(1)
}

// SoftDelete mocks the SoftDelete method of AccountRepository.
func (m *MockAccountRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of RoleRepository for testing.
type MockRoleRepository struct {
	mock.Mock
}

// Create mocks the Create method of RoleRepository.
func (m *MockRoleRepository) Create(ctx context.Context, role *authDomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// GetByID mocks the GetByID method of RoleRepository.
func (m *MockRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*authDomain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

// GetByName mocks the GetByName method of RoleRepository.
func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*authDomain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

// List mocks the List method of RoleRepository.
func (m *MockRoleRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

// MockCapabilityRepository is a mock implementation of CapabilityRepository for testing.
type MockCapabilityRepository struct {
	mock.Mock
}

// Create mocks the Create method of CapabilityRepository.
func (m *MockCapabilityRepository) Create(ctx context.Context, capability *authDomain.Capability) error {
	args := m.Called(ctx, capability)
	return args.Error(0)
}

// GetByID mocks the GetByID method of CapabilityRepository.
func (m *MockCapabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*authDomain.Capability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Capability), args.Error(1)
}

// GetByName mocks the GetByName method of CapabilityRepository.
func (m *MockCapabilityRepository) GetByName(ctx context.Context, name string) (*authDomain.Capability, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Capability), args.Error(1)
}

// List mocks the List method of CapabilityRepository.
func (m *MockCapabilityRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Capability, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Capability), args.Error(1)
}

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

// GrantRoleCapability mocks the GrantRoleCapability method of GrantRepository.
func (m *MockGrantRepository) GrantRoleCapability(ctx context.Context, roleID, capabilityID uuid.UUID) error {
	args := m.Called(ctx, roleID, capabilityID)
	return args.Error(0)
}

// ListRoleCapabilities mocks the ListRoleCapabilities method of GrantRepository.
func (m *MockGrantRepository) ListRoleCapabilities(ctx context.Context, roleID uuid.UUID) ([]*authDomain.Capability, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Capability), args.Error(1)
}

// GrantAccountCapability mocks the GrantAccountCapability method of GrantRepository.
func (m *MockGrantRepository) GrantAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	args := m.Called(ctx, accountID, capabilityID)
	return args.Error(0)
}

// RevokeAccountCapability mocks the RevokeAccountCapability method of GrantRepository.
func (m *MockGrantRepository) RevokeAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	args := m.Called(ctx, accountID, capabilityID)
	return args.Error(0)
}

// ListAccountCapabilities mocks the ListAccountCapabilities method of GrantRepository.
func (m *MockGrantRepository) ListAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]*authDomain.Capability, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Capability), args.Error(1)
}
