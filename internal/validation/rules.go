// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/passvault/passvault/internal/errors"
)

var (
	// sha256HexRegex matches a hex encoded SHA-256 digest as produced by
	// hex.EncodeToString: 64 lowercase hex characters.
	sha256HexRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// SHA256Hex validates that a string is a lowercase hex encoded SHA-256
// digest. Checksums are compared as exact strings, so uppercase input is
// rejected here rather than failing the integrity check later.
var SHA256Hex = validation.NewStringRuleWithError(
	func(s string) bool {
		return sha256HexRegex.MatchString(s)
	},
	validation.NewError("validation_sha256_hex", "must be a 64 character lowercase hex encoded SHA-256 digest"),
)
