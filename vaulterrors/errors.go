// Package vaulterrors defines the error kinds distinguished by the vault
// engine. Kinds are sentinel or typed errors checked with [errors.Is] /
// [errors.As]; the engine itself never retries and never logs.
package vaulterrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a non-empty vault file does not
	// begin with the KEVI magic. Plaintext vaults are rejected, not upgraded.
	ErrUnsupportedFormat = errors.New("unsupported vault format: missing KEVI header")

	// ErrInvalidKDFParams is returned when Argon2id parameters are rejected
	// before any memory is allocated for key derivation.
	ErrInvalidKDFParams = errors.New("invalid key derivation parameters")

	// ErrDecryptionFailed is the single opaque failure mode covering a wrong
	// key, a tampered header, a tampered body, or a truncated tag. The
	// engine never distinguishes between these to the caller.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrCSPRNGFailed indicates the entropy source failed to fill a buffer.
	ErrCSPRNGFailed = errors.New("secure random source failed")

	// ErrEncode/ErrDecode are record-codec faults.
	ErrEncode = errors.New("failed to encode records")
	ErrDecode = errors.New("failed to decode records")

	// ErrDuplicateLabel is the CLI-facing policy error for `add`: the
	// engine itself tolerates duplicate labels (spec §9).
	ErrDuplicateLabel = errors.New("a record with this label already exists")

	// ErrEmptyLabel / ErrEmptyPassword guard the record constructor.
	ErrEmptyLabel    = errors.New("label must not be empty")
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrNoPassphrase is returned by a passphrase source that found none
	// available (no env var, no interactive terminal).
	ErrNoPassphrase = errors.New("no passphrase available")
)

// HeaderError is the base of every structural header fault (spec §4.3).
// All variants must be produced without panicking, for any input bytes.
type HeaderError struct {
	Kind string
	Err  error
}

func (e *HeaderError) Error() string { return fmt.Sprintf("header: %s: %v", e.Kind, e.Err) }
func (e *HeaderError) Unwrap() error { return e.Err }

var (
	errTooShort       = errors.New("fewer than 48 bytes")
	errInvalidMagic   = errors.New("invalid magic, expected KEVI")
	errUnsupportedKdf = errors.New("unsupported kdf id")
	errAead           = errors.New("unsupported aead id")
)

// NewHeaderTooShort reports a buffer shorter than the fixed 48-byte header.
func NewHeaderTooShort() error {
	return &HeaderError{Kind: "too-short", Err: errTooShort}
}

// NewInvalidMagic reports a header whose first 4 bytes are not "KEVI".
func NewInvalidMagic() error {
	return &HeaderError{Kind: "invalid-magic", Err: errInvalidMagic}
}

// UnsupportedVersionError reports a version field other than the one
// version this implementation recognizes.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("header: unsupported version: %d", e.Version)
}

// NewUnsupportedVersion wraps v as a [*HeaderError] carrying [*UnsupportedVersionError].
func NewUnsupportedVersion(v uint16) error {
	return &HeaderError{Kind: "unsupported-version", Err: &UnsupportedVersionError{Version: v}}
}

// NewUnsupportedKdf reports a kdf_id other than Argon2id.
func NewUnsupportedKdf(id uint8) error {
	return &HeaderError{Kind: "unsupported-kdf", Err: fmt.Errorf("%w: %d", errUnsupportedKdf, id)}
}

// NewUnsupportedAead reports an aead_id other than AES-256-GCM.
func NewUnsupportedAead(id uint8) error {
	return &HeaderError{Kind: "unsupported-aead", Err: fmt.Errorf("%w: %d", errAead, id)}
}

// IOError wraps any disk or path operation failure.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("io: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Wrap returns nil if err is nil, otherwise an [*IOError] tagged with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	return &IOError{Op: op, Err: err}
}
