package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/passvault/passvault/internal/metrics"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateVault records metrics for vault creation operations.
func (v *vaultUseCaseWithMetrics) CreateVault(
	ctx context.Context,
	name, password string,
) (*vaultDomain.VaultRecord, error) {
	start := time.Now()
	record, err := v.next.CreateVault(ctx, name, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_create", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_create", time.Since(start), status)

	return record, err
}

// ImportVault records metrics for vault import operations.
func (v *vaultUseCaseWithMetrics) ImportVault(
	ctx context.Context,
	name, blob, checksum string,
) (*vaultDomain.VaultRecord, error) {
	start := time.Now()
	record, err := v.next.ImportVault(ctx, name, blob, checksum)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_import", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_import", time.Since(start), status)

	return record, err
}

// GetVault records metrics for vault retrieval operations.
func (v *vaultUseCaseWithMetrics) GetVault(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.VaultRecord, error) {
	start := time.Now()
	record, err := v.next.GetVault(ctx, vaultID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_get", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_get", time.Since(start), status)

	return record, err
}

// ListVaults records metrics for vault list operations.
func (v *vaultUseCaseWithMetrics) ListVaults(
	ctx context.Context,
	offset, limit int,
) ([]*vaultDomain.VaultRecord, error) {
	start := time.Now()
	records, err := v.next.ListVaults(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_list", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_list", time.Since(start), status)

	return records, err
}

// DeleteVault records metrics for vault deletion operations.
func (v *vaultUseCaseWithMetrics) DeleteVault(ctx context.Context, vaultID uuid.UUID) error {
	start := time.Now()
	err := v.next.DeleteVault(ctx, vaultID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_delete", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_delete", time.Since(start), status)

	return err
}

// OpenVault records metrics for vault open operations. Open latency covers
// the key derivation, which dominates it.
func (v *vaultUseCaseWithMetrics) OpenVault(
	ctx context.Context,
	vaultID uuid.UUID,
	password string,
) (string, *vaultDomain.Session, error) {
	start := time.Now()
	token, session, err := v.next.OpenVault(ctx, vaultID, password)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "vault_open", status)
	v.metrics.RecordDuration(ctx, "vault", "vault_open", time.Since(start), status)

	return token, session, err
}

// CloseSession records metrics for session close operations.
func (v *vaultUseCaseWithMetrics) CloseSession(ctx context.Context, vaultID uuid.UUID, sessionToken string) error {
	start := time.Now()
	err := v.next.CloseSession(ctx, vaultID, sessionToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "session_close", status)
	v.metrics.RecordDuration(ctx, "vault", "session_close", time.Since(start), status)

	return err
}

// GetEntry records metrics for entry read operations.
func (v *vaultUseCaseWithMetrics) GetEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name string,
) (string, error) {
	start := time.Now()
	value, err := v.next.GetEntry(ctx, vaultID, sessionToken, name)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "entry_get", status)
	v.metrics.RecordDuration(ctx, "vault", "entry_get", time.Since(start), status)

	return value, err
}

// SetEntry records metrics for entry write operations.
func (v *vaultUseCaseWithMetrics) SetEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name, value string,
) (*vaultDomain.VaultRecord, error) {
	start := time.Now()
	record, err := v.next.SetEntry(ctx, vaultID, sessionToken, name, value)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "entry_set", status)
	v.metrics.RecordDuration(ctx, "vault", "entry_set", time.Since(start), status)

	return record, err
}

// RemoveEntry records metrics for entry removal operations.
func (v *vaultUseCaseWithMetrics) RemoveEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name string,
) (bool, *vaultDomain.VaultRecord, error) {
	start := time.Now()
	found, record, err := v.next.RemoveEntry(ctx, vaultID, sessionToken, name)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "entry_remove", status)
	v.metrics.RecordDuration(ctx, "vault", "entry_remove", time.Since(start), status)

	return found, record, err
}

// ListEntryNames records metrics for entry name list operations.
func (v *vaultUseCaseWithMetrics) ListEntryNames(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken string,
) ([]string, error) {
	start := time.Now()
	names, err := v.next.ListEntryNames(ctx, vaultID, sessionToken)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "entry_list", status)
	v.metrics.RecordDuration(ctx, "vault", "entry_list", time.Since(start), status)

	return names, err
}
