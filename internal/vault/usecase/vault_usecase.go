package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	authService "github.com/passvault/passvault/internal/auth/service"
	"github.com/passvault/passvault/internal/database"
	apperrors "github.com/passvault/passvault/internal/errors"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	vaultService "github.com/passvault/passvault/internal/vault/service"
)

// vaultUseCase implements the VaultUseCase interface.
type vaultUseCase struct {
	txManager         database.TxManager
	vaultRepo         VaultRepository
	sealer            vaultService.Sealer
	keeper            vaultService.BlobKeeper
	sessionStore      *vaultService.SessionStore
	tokenService      authService.TokenService
	sessionExpiration time.Duration
}

// CreateVault creates an empty vault protected by password and stores its
// initial sealed form. The engine created during sealing is closed before
// returning; obtaining entries requires an explicit OpenVault.
func (v *vaultUseCase) CreateVault(
	ctx context.Context,
	name, password string,
) (*vaultDomain.VaultRecord, error) {
	if name == "" {
		return nil, vaultDomain.ErrVaultNameRequired
	}

	engine, blob, checksum, err := v.sealer.Create(password)
	if err != nil {
		return nil, err
	}
	engine.Close()

	stored, err := v.keeper.Wrap(ctx, blob)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &vaultDomain.VaultRecord{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Blob:      stored,
		Checksum:  checksum,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := v.vaultRepo.GetByName(txCtx, name)
		if err == nil {
			return vaultDomain.ErrVaultAlreadyExists
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return v.vaultRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	// Hand the caller the sealed form, not the at-rest stored form
	record.Blob = blob
	return record, nil
}

// ImportVault registers an externally produced sealed blob. The checksum is
// verified and the blob structurally validated, but no password is involved;
// whether the blob can actually be opened is only discovered on OpenVault.
func (v *vaultUseCase) ImportVault(
	ctx context.Context,
	name, blob, checksum string,
) (*vaultDomain.VaultRecord, error) {
	if name == "" {
		return nil, vaultDomain.ErrVaultNameRequired
	}

	if vaultDomain.Checksum(blob) != checksum {
		return nil, vaultDomain.ErrIntegrityCheckFailed
	}

	if err := validateSealedBlob(blob); err != nil {
		return nil, err
	}

	stored, err := v.keeper.Wrap(ctx, blob)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &vaultDomain.VaultRecord{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Blob:      stored,
		Checksum:  checksum,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		_, err := v.vaultRepo.GetByName(txCtx, name)
		if err == nil {
			return vaultDomain.ErrVaultAlreadyExists
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return v.vaultRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	record.Blob = blob
	return record, nil
}

// validateSealedBlob checks that a blob parses as a sealed representation
// with well-formed fields of the expected sizes. It reads no key material.
func validateSealedBlob(blob string) error {
	sealed, err := vaultDomain.DecodeSealedRepresentation(blob)
	if err != nil {
		return vaultDomain.ErrInvalidSealedBlob
	}

	salt, err := base64.StdEncoding.DecodeString(sealed.Salt)
	if err != nil || len(salt) != vaultDomain.SaltSize {
		return vaultDomain.ErrInvalidSealedBlob
	}

	iv, err := base64.StdEncoding.DecodeString(sealed.IV)
	if err != nil || len(iv) != vaultDomain.NonceSize {
		return vaultDomain.ErrInvalidSealedBlob
	}

	if _, err := base64.StdEncoding.DecodeString(sealed.Ciphertext); err != nil {
		return vaultDomain.ErrInvalidSealedBlob
	}

	return nil
}

// GetVault returns the full registry record with the blob in its sealed,
// caller-persistable form.
func (v *vaultUseCase) GetVault(
	ctx context.Context,
	vaultID uuid.UUID,
) (*vaultDomain.VaultRecord, error) {
	record, err := v.vaultRepo.GetByID(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	blob, err := v.keeper.Unwrap(ctx, record.Blob)
	if err != nil {
		return nil, err
	}
	record.Blob = blob

	return record, nil
}

// ListVaults returns registry metadata ordered by name. Listed records carry
// no blob; use GetVault for the exportable form.
func (v *vaultUseCase) ListVaults(
	ctx context.Context,
	offset, limit int,
) ([]*vaultDomain.VaultRecord, error) {
	return v.vaultRepo.List(ctx, offset, limit)
}

// DeleteVault removes the registry record. Open sessions for the vault keep
// their in-memory engine but fail on the next persist attempt.
func (v *vaultUseCase) DeleteVault(ctx context.Context, vaultID uuid.UUID) error {
	return v.vaultRepo.Delete(ctx, vaultID)
}

// OpenVault unseals the stored blob with password, creating a session that
// owns the resulting engine. The plain session token is returned once and
// only its hash is kept.
func (v *vaultUseCase) OpenVault(
	ctx context.Context,
	vaultID uuid.UUID,
	password string,
) (string, *vaultDomain.Session, error) {
	record, err := v.vaultRepo.GetByID(ctx, vaultID)
	if err != nil {
		return "", nil, err
	}

	blob, err := v.keeper.Unwrap(ctx, record.Blob)
	if err != nil {
		return "", nil, err
	}

	engine, err := v.sealer.Open(password, blob, record.Checksum)
	if err != nil {
		return "", nil, err
	}

	plainToken, tokenHash, err := v.tokenService.GenerateToken()
	if err != nil {
		engine.Close()
		return "", nil, err
	}

	session := vaultDomain.NewSession(
		tokenHash,
		record.ID,
		engine,
		record.Version,
		time.Now().UTC().Add(v.sessionExpiration),
	)
	v.sessionStore.Add(session)

	return plainToken, session, nil
}

// CloseSession discards the session for a token. Unknown and expired tokens
// are ignored so the operation is idempotent, as are tokens that belong to a
// different vault.
func (v *vaultUseCase) CloseSession(ctx context.Context, vaultID uuid.UUID, sessionToken string) error {
	session, err := v.sessionFor(vaultID, sessionToken)
	if err != nil {
		return nil
	}
	v.sessionStore.Remove(session.TokenHash)
	return nil
}

// sessionFor resolves a plain session token to its open session. A token
// whose session belongs to a different vault is treated as unknown, so one
// opened vault can never serve another vault's requests.
func (v *vaultUseCase) sessionFor(vaultID uuid.UUID, sessionToken string) (*vaultDomain.Session, error) {
	session, err := v.sessionStore.Get(v.tokenService.HashToken(sessionToken))
	if err != nil {
		return nil, err
	}
	if session.VaultID != vaultID {
		return nil, vaultDomain.ErrSessionNotFound
	}
	return session, nil
}

// GetEntry returns the secret stored under name in the open vault.
func (v *vaultUseCase) GetEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name string,
) (string, error) {
	if name == "" {
		return "", vaultDomain.ErrNameRequired
	}

	session, err := v.sessionFor(vaultID, sessionToken)
	if err != nil {
		return "", err
	}

	var value string
	err = session.WithLock(func() error {
		got, ok := session.Engine.Get(name)
		if !ok {
			return vaultDomain.ErrEntryNotFound
		}
		value = got
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// SetEntry writes name=value into the open vault, reseals, and persists the
// new blob before returning the updated registry record.
func (v *vaultUseCase) SetEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name, value string,
) (*vaultDomain.VaultRecord, error) {
	if name == "" {
		return nil, vaultDomain.ErrNameRequired
	}

	session, err := v.sessionFor(vaultID, sessionToken)
	if err != nil {
		return nil, err
	}

	var record *vaultDomain.VaultRecord
	err = session.WithLock(func() error {
		session.Engine.Set(name, value)

		var persistErr error
		record, persistErr = v.persistReseal(ctx, session)
		return persistErr
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// RemoveEntry deletes name from the open vault. An absent name reports
// found=false without resealing or persisting anything.
func (v *vaultUseCase) RemoveEntry(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken, name string,
) (bool, *vaultDomain.VaultRecord, error) {
	if name == "" {
		return false, nil, vaultDomain.ErrNameRequired
	}

	session, err := v.sessionFor(vaultID, sessionToken)
	if err != nil {
		return false, nil, err
	}

	var found bool
	var record *vaultDomain.VaultRecord
	err = session.WithLock(func() error {
		found = session.Engine.Remove(name)
		if !found {
			return nil
		}

		var persistErr error
		record, persistErr = v.persistReseal(ctx, session)
		return persistErr
	})
	if err != nil {
		return false, nil, err
	}

	return found, record, nil
}

// ListEntryNames returns the entry names of the open vault, sorted.
func (v *vaultUseCase) ListEntryNames(
	ctx context.Context,
	vaultID uuid.UUID,
	sessionToken string,
) ([]string, error) {
	session, err := v.sessionFor(vaultID, sessionToken)
	if err != nil {
		return nil, err
	}

	var names []string
	err = session.WithLock(func() error {
		names = session.Engine.Names()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// persistReseal seals the session's engine and stores the new blob under the
// session's record version, bumping it on success. The returned record
// carries the sealed (unwrapped) blob. Call only while holding the session
// lock.
//
// A vaultDomain.ErrVersionConflict here means another session resealed the
// vault since this one was opened; the session stays open for reads but
// every further write fails until the caller reopens the vault.
func (v *vaultUseCase) persistReseal(
	ctx context.Context,
	session *vaultDomain.Session,
) (*vaultDomain.VaultRecord, error) {
	blob, checksum, err := v.sealer.Seal(session.Engine)
	if err != nil {
		return nil, err
	}

	stored, err := v.keeper.Wrap(ctx, blob)
	if err != nil {
		return nil, err
	}

	var record *vaultDomain.VaultRecord
	err = v.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := v.vaultRepo.UpdateBlob(txCtx, session.VaultID, stored, checksum, session.RecordVersion); err != nil {
			return err
		}

		var getErr error
		record, getErr = v.vaultRepo.GetByID(txCtx, session.VaultID)
		return getErr
	})
	if err != nil {
		return nil, err
	}

	session.RecordVersion = record.Version
	record.Blob = blob
	return record, nil
}

// NewVaultUseCase creates a vault use case instance with the provided
// dependencies. sessionExpiration bounds how long an opened vault stays
// usable without reopening.
func NewVaultUseCase(
	txManager database.TxManager,
	vaultRepo VaultRepository,
	sealer vaultService.Sealer,
	keeper vaultService.BlobKeeper,
	sessionStore *vaultService.SessionStore,
	tokenService authService.TokenService,
	sessionExpiration time.Duration,
) VaultUseCase {
	return &vaultUseCase{
		txManager:         txManager,
		vaultRepo:         vaultRepo,
		sealer:            sealer,
		keeper:            keeper,
		sessionStore:      sessionStore,
		tokenService:      tokenService,
		sessionExpiration: sessionExpiration,
	}
}
