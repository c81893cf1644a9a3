package vaultcrypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/ladzaretti/kevi/vaulterrors"
)

// RandBytes fills b with cryptographically secure random bytes. Any
// failure of the entropy source is fatal for the current operation; there
// is no fallback.
func RandBytes(b []byte) error {
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return fmt.Errorf("%w: %w", vaulterrors.ErrCSPRNGFailed, err)
	}

	return nil
}

// NewSalt draws a fresh, per-vault Argon2id salt. Per spec, it is drawn
// once at vault creation and never regenerated while the file exists.
func NewSalt() ([SaltSize]byte, error) {
	var salt [SaltSize]byte
	if err := RandBytes(salt[:]); err != nil {
		return salt, err
	}

	return salt, nil
}
