package vaultcrypto_test

import (
	"errors"
	"testing"

	"github.com/ladzaretti/kevi/vaultcrypto"
	"github.com/ladzaretti/kevi/vaulterrors"
)

// testParams keeps derivation cheap for unit tests; production defaults
// live in [vaultcrypto.DefaultArgon2Params].
var testParams = vaultcrypto.Argon2Params{MemoryKiB: 64, Time: 1, Parallelism: 1}

func TestArgon2Params_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  vaultcrypto.Argon2Params
		wantErr bool
	}{
		{"valid", testParams, false},
		{"defaults", vaultcrypto.DefaultArgon2Params, false},
		{"zero parallelism", vaultcrypto.Argon2Params{MemoryKiB: 64, Time: 1, Parallelism: 0}, true},
		{"zero time", vaultcrypto.Argon2Params{MemoryKiB: 64, Time: 0, Parallelism: 1}, true},
		{"memory below floor", vaultcrypto.Argon2Params{MemoryKiB: 1, Time: 1, Parallelism: 1}, true},
		{"parallelism overflows uint8", vaultcrypto.Argon2Params{MemoryKiB: 1 << 20, Time: 1, Parallelism: 256}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, vaulterrors.ErrInvalidKDFParams) {
				t.Errorf("error does not wrap ErrInvalidKDFParams: %v", err)
			}
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	var salt [vaultcrypto.SaltSize]byte
	for i := range salt {
		salt[i] = byte(i)
	}

	k1, err := vaultcrypto.Derive("correct horse battery staple", salt, testParams)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	k2, err := vaultcrypto.Derive("correct horse battery staple", salt, testParams)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	if len(k1) != vaultcrypto.KeyLen {
		t.Fatalf("key length = %d, want %d", len(k1), vaultcrypto.KeyLen)
	}

	if string(k1) != string(k2) {
		t.Error("Derive is not deterministic for identical inputs")
	}
}

func TestDerive_SaltChangesKey(t *testing.T) {
	var saltA, saltB [vaultcrypto.SaltSize]byte
	saltB[0] = 1

	kA, err := vaultcrypto.Derive("passphrase", saltA, testParams)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	kB, err := vaultcrypto.Derive("passphrase", saltB, testParams)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	if string(kA) == string(kB) {
		t.Error("different salts produced the same key")
	}
}

func TestDerive_RejectsInvalidParams(t *testing.T) {
	var salt [vaultcrypto.SaltSize]byte

	_, err := vaultcrypto.Derive("x", salt, vaultcrypto.Argon2Params{})
	if !errors.Is(err, vaulterrors.ErrInvalidKDFParams) {
		t.Fatalf("expected ErrInvalidKDFParams, got %v", err)
	}
}
