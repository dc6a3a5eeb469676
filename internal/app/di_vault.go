package app

import (
	"context"
	"fmt"

	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	vaultHTTP "github.com/passvault/passvault/internal/vault/http"
	vaultRepository "github.com/passvault/passvault/internal/vault/repository"
	vaultService "github.com/passvault/passvault/internal/vault/service"
	vaultUseCase "github.com/passvault/passvault/internal/vault/usecase"
)

// SessionStore returns the in-memory store for open vault sessions.
// The store starts its cleanup goroutine on first access; Shutdown stops it.
func (c *Container) SessionStore() *vaultService.SessionStore {
	c.sessionStoreInit.Do(func() {
		c.sessionStore = vaultService.NewSessionStore(c.config.SessionCleanupInterval)
	})
	return c.sessionStore
}

// BlobKeeper returns the at-rest protection layer for sealed blobs.
// With KMS disabled this is a passthrough keeper.
func (c *Container) BlobKeeper() (vaultService.BlobKeeper, error) {
	var err error
	c.blobKeeperInit.Do(func() {
		c.blobKeeper, err = c.initBlobKeeper()
		if err != nil {
			c.initErrors["blobKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blobKeeper"]; exists {
		return nil, storedErr
	}
	return c.blobKeeper, nil
}

// Sealer returns the vault sealing service for the configured algorithm.
func (c *Container) Sealer() (vaultService.Sealer, error) {
	var err error
	c.sealerInit.Do(func() {
		c.sealer, err = c.initSealer()
		if err != nil {
			c.initErrors["sealer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sealer"]; exists {
		return nil, storedErr
	}
	return c.sealer, nil
}

// VaultRepository returns the vault registry repository based on database driver.
func (c *Container) VaultRepository() (vaultUseCase.VaultRepository, error) {
	var err error
	c.vaultRepositoryInit.Do(func() {
		c.vaultRepository, err = c.initVaultRepository()
		if err != nil {
			c.initErrors["vaultRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultRepository"]; exists {
		return nil, storedErr
	}
	return c.vaultRepository, nil
}

// VaultUseCase returns the vault management use case.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// VaultHandler returns the HTTP handler for vault operations.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	var err error
	c.vaultHandlerInit.Do(func() {
		c.vaultHandler, err = c.initVaultHandler()
		if err != nil {
			c.initErrors["vaultHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}

// initBlobKeeper creates the blob keeper. With KMS enabled the keeper wraps
// sealed blobs under the configured key URI before they reach the registry.
func (c *Container) initBlobKeeper() (vaultService.BlobKeeper, error) {
	if !c.config.KMSEnabled {
		return vaultService.NewNoopBlobKeeper(), nil
	}

	if c.config.KMSKeyURI == "" {
		return nil, fmt.Errorf("KMS_KEY_URI must be set when KMS_ENABLED is true")
	}

	keeper, err := vaultService.NewKMSBlobKeeper(context.Background(), c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to create KMS blob keeper: %w", err)
	}
	return keeper, nil
}

// initSealer creates the sealer after validating the configured algorithm.
func (c *Container) initSealer() (vaultService.Sealer, error) {
	algorithm := vaultDomain.Algorithm(c.config.VaultAlgorithm)
	switch algorithm {
	case vaultDomain.AESGCM, vaultDomain.ChaCha20:
	default:
		return nil, fmt.Errorf("unsupported vault algorithm: %s", c.config.VaultAlgorithm)
	}

	return vaultService.NewSealer(
		vaultService.NewKeyDeriver(),
		vaultService.NewAEADManager(),
		algorithm,
	), nil
}

// initVaultRepository creates the vault repository based on the database driver.
func (c *Container) initVaultRepository() (vaultUseCase.VaultRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for vault repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return vaultRepository.NewPostgreSQLVaultRepository(db), nil
	case "mysql":
		return vaultRepository.NewMySQLVaultRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for vault use case: %w", err)
	}

	repo, err := c.VaultRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault repository for vault use case: %w", err)
	}

	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for vault use case: %w", err)
	}

	keeper, err := c.BlobKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get blob keeper for vault use case: %w", err)
	}

	baseUseCase := vaultUseCase.NewVaultUseCase(
		txManager,
		repo,
		sealer,
		keeper,
		c.SessionStore(),
		c.TokenService(),
		c.config.SessionExpiration,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		return vaultUseCase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initVaultHandler creates the vault HTTP handler with all its dependencies.
func (c *Container) initVaultHandler() (*vaultHTTP.VaultHandler, error) {
	useCase, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for vault handler: %w", err)
	}

	return vaultHTTP.NewVaultHandler(useCase, c.Logger()), nil
}
