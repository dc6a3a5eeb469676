// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// CreateVault mocks the CreateVault method of VaultUseCase.
func (m *MockVaultUseCase) CreateVault(ctx context.Context, name, password string) (*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultRecord), args.Error(1)
}

// ImportVault mocks the ImportVault method of VaultUseCase.
func (m *MockVaultUseCase) ImportVault(ctx context.Context, name, blob, checksum string) (*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, name, blob, checksum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultRecord), args.Error(1)
}

// GetVault mocks the GetVault method of VaultUseCase.
func (m *MockVaultUseCase) GetVault(ctx context.Context, vaultID uuid.UUID) (*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultRecord), args.Error(1)
}

// ListVaults mocks the ListVaults method of VaultUseCase.
func (m *MockVaultUseCase) ListVaults(ctx context.Context, offset, limit int) ([]*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vaultDomain.VaultRecord), args.Error(1)
}

// DeleteVault mocks the DeleteVault method of VaultUseCase.
func (m *MockVaultUseCase) DeleteVault(ctx context.Context, vaultID uuid.UUID) error {
	args := m.Called(ctx, vaultID)
	return args.Error(0)
}

// OpenVault mocks the OpenVault method of VaultUseCase.
func (m *MockVaultUseCase) OpenVault(ctx context.Context, vaultID uuid.UUID, password string) (string, *vaultDomain.Session, error) {
	args := m.Called(ctx, vaultID, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*vaultDomain.Session), args.Error(2)
}

// CloseSession mocks the CloseSession method of VaultUseCase.
func (m *MockVaultUseCase) CloseSession(ctx context.Context, vaultID uuid.UUID, sessionToken string) error {
	args := m.Called(ctx, vaultID, sessionToken)
	return args.Error(0)
}

// GetEntry mocks the GetEntry method of VaultUseCase.
func (m *MockVaultUseCase) GetEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name string) (string, error) {
	args := m.Called(ctx, vaultID, sessionToken, name)
	return args.String(0), args.Error(1)
}

// SetEntry mocks the SetEntry method of VaultUseCase.
func (m *MockVaultUseCase) SetEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name, value string) (*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, vaultID, sessionToken, name, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultRecord), args.Error(1)
}

// RemoveEntry mocks the RemoveEntry method of VaultUseCase.
func (m *MockVaultUseCase) RemoveEntry(ctx context.Context, vaultID uuid.UUID, sessionToken, name string) (bool, *vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, vaultID, sessionToken, name)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).(*vaultDomain.VaultRecord), args.Error(2)
}

// ListEntryNames mocks the ListEntryNames method of VaultUseCase.
func (m *MockVaultUseCase) ListEntryNames(ctx context.Context, vaultID uuid.UUID, sessionToken string) ([]string, error) {
	args := m.Called(ctx, vaultID, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
