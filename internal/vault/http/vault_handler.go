// Package http provides HTTP handlers for vault management and entry operations.
// Vaults are sealed under caller-supplied passwords; entry operations run
// against an open session created through the open endpoint.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passvault/passvault/internal/httputil"
	customValidation "github.com/passvault/passvault/internal/validation"
	vaultDomain "github.com/passvault/passvault/internal/vault/domain"
	"github.com/passvault/passvault/internal/vault/http/dto"
	vaultUseCase "github.com/passvault/passvault/internal/vault/usecase"
)

// SessionTokenHeader carries the session token issued by OpenVaultHandler.
const SessionTokenHeader = "X-Session-Token"

// VaultHandler handles HTTP requests for vault management operations.
// It coordinates sealing, session handling, and entry access with the
// VaultUseCase.
type VaultHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(
	vaultUseCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// vaultID parses and validates the :id path parameter.
func (h *VaultHandler) vaultID(c *gin.Context) (uuid.UUID, bool) {
	vaultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid vault_id format: must be a valid UUID"),
			h.logger,
		)
		return uuid.Nil, false
	}
	return vaultID, true
}

// sessionToken reads the session token header for session-scoped operations.
// A missing header is rejected before the use case is reached.
func (h *VaultHandler) sessionToken(c *gin.Context) (string, bool) {
	token := c.GetHeader(SessionTokenHeader)
	if token == "" {
		h.logger.Debug("session operation rejected: missing session token header")
		httputil.HandleErrorGin(c, vaultDomain.ErrSessionNotFound, h.logger)
		return "", false
	}
	return token, true
}

// entryName extracts and validates the entry name from the wildcard path
// parameter. Entry names may contain slashes ("db/password").
func (h *VaultHandler) entryName(c *gin.Context) (string, bool) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("entry name cannot be empty"),
			h.logger,
		)
		return "", false
	}
	return name, true
}

// CreateVaultHandler creates a new vault sealed under the supplied password.
// POST /v1/vaults
// Returns 201 Created with the record including the sealed blob and checksum.
// The password itself is never stored; losing it makes the vault unrecoverable.
func (h *VaultHandler) CreateVaultHandler(c *gin.Context) {
	var req dto.CreateVaultRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	record, err := h.vaultUseCase.CreateVault(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return the full record so the caller can keep its own sealed copy
	response := dto.MapVaultToResponse(record)
	c.JSON(http.StatusCreated, response)
}

// ImportVaultHandler registers an externally sealed blob in the registry.
// POST /v1/vaults/import
// Returns 201 Created. The checksum is verified against the blob before
// anything is stored; no password is needed because import never decrypts.
func (h *VaultHandler) ImportVaultHandler(c *gin.Context) {
	var req dto.ImportVaultRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	record, err := h.vaultUseCase.ImportVault(c.Request.Context(), req.Name, req.Blob, req.Checksum)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVaultToResponse(record)
	c.JSON(http.StatusCreated, response)
}

// GetVaultHandler retrieves a single vault record including its sealed blob.
// GET /v1/vaults/:id
// Returns 200 OK. The blob plus checksum form the caller-persistable export,
// suitable for re-import into another deployment.
func (h *VaultHandler) GetVaultHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	// Call use case
	record, err := h.vaultUseCase.GetVault(c.Request.Context(), vaultID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVaultToResponse(record)
	c.JSON(http.StatusOK, response)
}

// ListVaultsHandler retrieves vault metadata with pagination support.
// GET /v1/vaults?offset=0&limit=50
// Returns 200 OK with a paginated list. Sealed blobs are excluded.
func (h *VaultHandler) ListVaultsHandler(c *gin.Context) {
	// Parse offset and limit query parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	records, err := h.vaultUseCase.ListVaults(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVaultsToListResponse(records)
	c.JSON(http.StatusOK, response)
}

// DeleteVaultHandler removes a vault record from the registry.
// DELETE /v1/vaults/:id
// Returns 204 No Content. Open sessions for the vault are not revoked here;
// they expire on their own TTL.
func (h *VaultHandler) DeleteVaultHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	// Call use case
	if err := h.vaultUseCase.DeleteVault(c.Request.Context(), vaultID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}

// OpenVaultHandler opens a vault with its password and starts a session.
// POST /v1/vaults/:id/open
// Returns 200 OK with the session token and expiry. A wrong password is
// indistinguishable from a tampered blob: both surface as a 422 decryption
// failure.
func (h *VaultHandler) OpenVaultHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	var req dto.OpenVaultRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	token, session, err := h.vaultUseCase.OpenVault(c.Request.Context(), vaultID, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// The plain token is returned exactly once
	response := dto.OpenVaultResponse{
		SessionToken: token,
		ExpiresAt:    session.ExpiresAt,
	}
	c.JSON(http.StatusOK, response)
}

// CloseSessionHandler closes an open session and discards its engine.
// DELETE /v1/vaults/:id/session - Requires X-Session-Token.
// Returns 204 No Content. Closing an unknown or already expired session is
// a no-op, so the operation is idempotent.
func (h *VaultHandler) CloseSessionHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	token, ok := h.sessionToken(c)
	if !ok {
		return
	}

	// Call use case
	if err := h.vaultUseCase.CloseSession(c.Request.Context(), vaultID, token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListEntriesHandler lists the entry names of an open vault.
// GET /v1/vaults/:id/entries - Requires X-Session-Token.
// Returns 200 OK with sorted names. Values are never included in listings.
func (h *VaultHandler) ListEntriesHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	token, ok := h.sessionToken(c)
	if !ok {
		return
	}

	// Call use case
	names, err := h.vaultUseCase.ListEntryNames(c.Request.Context(), vaultID, token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListEntriesResponse{Data: names}
	c.JSON(http.StatusOK, response)
}

// GetEntryHandler reads one decrypted entry value from an open vault.
// GET /v1/vaults/:id/entries/*name - Requires X-Session-Token.
// Returns 200 OK with the plaintext value, or 404 if the entry does not exist.
func (h *VaultHandler) GetEntryHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	token, ok := h.sessionToken(c)
	if !ok {
		return
	}

	name, ok := h.entryName(c)
	if !ok {
		return
	}

	// Call use case
	value, err := h.vaultUseCase.GetEntry(c.Request.Context(), vaultID, token, name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.EntryResponse{
		Name:  name,
		Value: value,
	}
	c.JSON(http.StatusOK, response)
}

// SetEntryHandler creates or replaces one entry and reseals the vault.
// PUT /v1/vaults/:id/entries/*name - Requires X-Session-Token.
// Returns 200 OK with the refreshed sealed blob, checksum, and version.
func (h *VaultHandler) SetEntryHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	token, ok := h.sessionToken(c)
	if !ok {
		return
	}

	name, ok := h.entryName(c)
	if !ok {
		return
	}

	var req dto.SetEntryRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Call use case
	record, err := h.vaultUseCase.SetEntry(c.Request.Context(), vaultID, token, name, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapVaultToSealedStateResponse(record)
	c.JSON(http.StatusOK, response)
}

// RemoveEntryHandler removes one entry if present and reseals the vault.
// DELETE /v1/vaults/:id/entries/*name - Requires X-Session-Token.
// Returns 200 OK; found reports whether anything was removed, and the sealed
// state is only refreshed when it was.
func (h *VaultHandler) RemoveEntryHandler(c *gin.Context) {
	vaultID, ok := h.vaultID(c)
	if !ok {
		return
	}

	token, ok := h.sessionToken(c)
	if !ok {
		return
	}

	name, ok := h.entryName(c)
	if !ok {
		return
	}

	// Call use case
	found, record, err := h.vaultUseCase.RemoveEntry(c.Request.Context(), vaultID, token, name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MapRemovalToResponse(found, record)
	c.JSON(http.StatusOK, response)
}
