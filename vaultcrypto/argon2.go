package vaultcrypto

import (
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/ladzaretti/kevi/vaulterrors"
)

// KeyLen is the length, in bytes, of a derived AES-256 key.
const KeyLen = 32

// argon2MinMemoryKiB is the algorithm's own floor: Argon2id refuses to run
// with less memory than 8x its parallelism factor, in KiB.
const argon2MinMemoryKiB = 8

// DefaultArgon2Params are the parameters written into the header of a
// newly created vault. They are never upgraded implicitly; an existing
// vault's parameters are replayed as-is on every subsequent derivation.
var DefaultArgon2Params = Argon2Params{
	MemoryKiB:   65536,
	Time:        3,
	Parallelism: 1,
}

// Argon2Params are the Argon2id KDF parameters stored in a vault header.
type Argon2Params struct {
	MemoryKiB   uint32
	Time        uint32
	Parallelism uint32
}

// Validate rejects parameter combinations the KDF cannot run with, before
// any memory is allocated for derivation.
func (p Argon2Params) Validate() error {
	if p.Parallelism == 0 {
		return fmt.Errorf("%w: parallelism must be non-zero", vaulterrors.ErrInvalidKDFParams)
	}

	if p.Time == 0 {
		return fmt.Errorf("%w: time cost must be non-zero", vaulterrors.ErrInvalidKDFParams)
	}

	if p.MemoryKiB < argon2MinMemoryKiB*p.Parallelism {
		return fmt.Errorf("%w: memory cost %d KiB is below the algorithm minimum for parallelism %d",
			vaulterrors.ErrInvalidKDFParams, p.MemoryKiB, p.Parallelism)
	}

	if p.Parallelism > 255 {
		return fmt.Errorf("%w: parallelism %d exceeds the algorithm's 8-bit lane count", vaulterrors.ErrInvalidKDFParams, p.Parallelism)
	}

	return nil
}

// Derive runs Argon2id v1.3 over passphrase with the given salt and
// parameters, producing a [KeyLen]-byte key. Parameters are validated
// before any derivation work begins.
func Derive(passphrase string, salt [SaltSize]byte, params Argon2Params) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	//nolint:gosec // argon2.IDKey clamps parallelism internally; validated above.
	key := argon2.IDKey([]byte(passphrase), salt[:], params.Time, params.MemoryKiB, uint8(params.Parallelism), KeyLen)

	return key, nil
}
