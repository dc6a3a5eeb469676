// Package dto provides data transfer objects for vault request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/passvault/passvault/internal/validation"
)

const (
	// maxPasswordLength bounds vault passwords. The KDF cost does not depend
	// on password length, this only keeps request bodies sane.
	maxPasswordLength = 1024

	// maxEntryValueLength bounds a single entry value. Every value is part of
	// the sealed blob, so unbounded values would grow every reseal.
	maxEntryValueLength = 65536
)

// CreateVaultRequest contains the parameters for creating a vault.
type CreateVaultRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate checks if the create vault request is valid.
// Passwords are required but otherwise unconstrained: whitespace is a valid
// password, so NotBlank is deliberately not applied to it.
func (r *CreateVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, maxPasswordLength),
		),
	)
}

// ImportVaultRequest contains the parameters for registering an externally
// sealed blob. No password is involved; the checksum proves the blob arrived
// intact.
type ImportVaultRequest struct {
	Name     string `json:"name"`
	Blob     string `json:"blob"`
	Checksum string `json:"checksum"`
}

// Validate checks if the import vault request is valid.
func (r *ImportVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Blob,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Checksum,
			validation.Required,
			customValidation.SHA256Hex,
		),
	)
}

// OpenVaultRequest contains the password for opening a vault.
type OpenVaultRequest struct {
	Password string `json:"password"`
}

// Validate checks if the open vault request is valid.
func (r *OpenVaultRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, maxPasswordLength),
		),
	)
}

// SetEntryRequest contains the value for creating or replacing an entry.
type SetEntryRequest struct {
	Value string `json:"value"`
}

// Validate checks if the set entry request is valid. Empty values are
// allowed; removing an entry is a separate operation.
func (r *SetEntryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Length(0, maxEntryValueLength),
		),
	)
}
