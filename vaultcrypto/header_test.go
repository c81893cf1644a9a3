package vaultcrypto_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/ladzaretti/kevi/vaultcrypto"
	"github.com/ladzaretti/kevi/vaulterrors"
)

func sampleHeader() vaultcrypto.Header {
	h := vaultcrypto.Header{
		Version:  vaultcrypto.Version,
		KDFID:    vaultcrypto.KDFArgon2id,
		AEADID:   vaultcrypto.AEADAES256GCM,
		MCostKiB: 65536,
		TCost:    3,
		PLanes:   1,
	}

	for i := range h.Salt {
		h.Salt[i] = byte(i)
	}

	for i := range h.Nonce {
		h.Nonce[i] = byte(i + 100)
	}

	return h
}

func TestHeader_RoundTrip(t *testing.T) {
	h := sampleHeader()
	emitted := vaultcrypto.EmitHeader(h)

	if len(emitted) != vaultcrypto.HeaderSize {
		t.Fatalf("emitted header size = %d, want %d", len(emitted), vaultcrypto.HeaderSize)
	}

	got, offset, err := vaultcrypto.ParseHeader(emitted)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if offset != vaultcrypto.HeaderSize {
		t.Errorf("offset = %d, want %d", offset, vaultcrypto.HeaderSize)
	}

	if got != h {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, h)
	}
}

func TestHeader_ParseErrors(t *testing.T) {
	h := sampleHeader()
	valid := vaultcrypto.EmitHeader(h)

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", valid[:10]},
		{"empty", nil},
		{"bad magic", func() []byte { b := bytes.Clone(valid); b[0] = 'X'; return b }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := vaultcrypto.ParseHeader(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHeader_UnsupportedVersion(t *testing.T) {
	h := sampleHeader()
	b := vaultcrypto.EmitHeader(h)
	b[4], b[5] = 2, 0 // version = 2, little-endian

	_, _, err := vaultcrypto.ParseHeader(b)

	var verErr *vaulterrors.UnsupportedVersionError
	if !errors.As(err, &verErr) {
		t.Fatalf("expected *vaulterrors.UnsupportedVersionError, got %v (%T)", err, err)
	}

	if verErr.Version != 2 {
		t.Errorf("version = %d, want 2", verErr.Version)
	}
}

func TestHeader_UnsupportedKdfAndAead(t *testing.T) {
	h := sampleHeader()

	b := vaultcrypto.EmitHeader(h)
	b[6] = 9 // bogus kdf id

	if _, _, err := vaultcrypto.ParseHeader(b); err == nil {
		t.Error("expected unsupported kdf error")
	}

	b = vaultcrypto.EmitHeader(h)
	b[7] = 9 // bogus aead id

	if _, _, err := vaultcrypto.ParseHeader(b); err == nil {
		t.Error("expected unsupported aead error")
	}
}

// TestHeader_ParseNeverPanics is a lightweight fuzz substitute: it feeds
// random-length, random-content buffers through ParseHeader and requires
// that it always return rather than panic (spec §8, property 8).
func TestHeader_ParseNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(200)
		buf := make([]byte, n)
		rng.Read(buf)

		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("ParseHeader panicked on %d random bytes: %v", n, r)
				}
			}()

			_, _, _ = vaultcrypto.ParseHeader(buf)
		}()
	}
}

func TestFingerprint_NonceIndependent(t *testing.T) {
	h1 := sampleHeader()
	h2 := h1
	h2.Nonce[0] ^= 0xFF

	if vaultcrypto.Fingerprint(h1) != vaultcrypto.Fingerprint(h2) {
		t.Error("fingerprint changed when only the nonce differed")
	}
}

func TestFingerprint_SaltDependent(t *testing.T) {
	h1 := sampleHeader()
	h2 := h1
	h2.Salt[0] ^= 0xFF

	if vaultcrypto.Fingerprint(h1) == vaultcrypto.Fingerprint(h2) {
		t.Error("fingerprint unchanged when the salt differed")
	}
}

func TestParseHeader_ReturnsHeaderError(t *testing.T) {
	_, _, err := vaultcrypto.ParseHeader(nil)
	if err == nil {
		t.Fatal("expected error")
	}

	if !errors.As(err, new(*vaulterrors.HeaderError)) {
		t.Errorf("expected *vaulterrors.HeaderError, got %T", err)
	}
}
