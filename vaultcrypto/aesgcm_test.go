package vaultcrypto_test

import (
	"errors"
	"testing"

	"github.com/ladzaretti/kevi/vaultcrypto"
	"github.com/ladzaretti/kevi/vaulterrors"
)

func deriveTestKey(t *testing.T, passphrase string, salt [vaultcrypto.SaltSize]byte) []byte {
	t.Helper()

	key, err := vaultcrypto.Derive(passphrase, salt, testParams)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	plaintext := []byte("label=github\nusername=alice\npassword=hunter2\n")

	encKey := deriveTestKey(t, "hunter2-passphrase", salt)

	sealed, err := vaultcrypto.Encrypt(plaintext, testParams, salt, encKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if len(sealed) <= vaultcrypto.HeaderSize {
		t.Fatalf("sealed output too short: %d bytes", len(sealed))
	}

	decKey := deriveTestKey(t, "hunter2-passphrase", salt)

	got, err := vaultcrypto.Decrypt(sealed, decKey)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	if string(got) != string(plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	encKey := deriveTestKey(t, "correct-passphrase", salt)

	sealed, err := vaultcrypto.Encrypt([]byte("secret payload"), testParams, salt, encKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	wrongKey := deriveTestKey(t, "wrong-passphrase", salt)

	_, err = vaultcrypto.Decrypt(sealed, wrongKey)
	if !errors.Is(err, vaulterrors.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecrypt_TamperedCiphertextFails(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	key := deriveTestKey(t, "passphrase", salt)

	sealed, err := vaultcrypto.Encrypt([]byte("secret payload"), testParams, salt, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := append([]byte(nil), sealed...)
	tampered[len(tampered)-1] ^= 0xFF

	key2 := deriveTestKey(t, "passphrase", salt)

	_, err = vaultcrypto.Decrypt(tampered, key2)
	if !errors.Is(err, vaulterrors.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecrypt_TamperedHeaderFails(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	key := deriveTestKey(t, "passphrase", salt)

	sealed, err := vaultcrypto.Encrypt([]byte("secret payload"), testParams, salt, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	tampered := append([]byte(nil), sealed...)
	tampered[20] ^= 0xFF // flip a salt byte, part of the AAD

	key2 := deriveTestKey(t, "passphrase", salt)

	_, err = vaultcrypto.Decrypt(tampered, key2)
	if !errors.Is(err, vaulterrors.ErrDecryptionFailed) {
		t.Fatalf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestEncrypt_NoncesAreUnique(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	key1 := deriveTestKey(t, "passphrase", salt)
	sealed1, err := vaultcrypto.Encrypt([]byte("payload"), testParams, salt, key1)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	key2 := deriveTestKey(t, "passphrase", salt)
	sealed2, err := vaultcrypto.Encrypt([]byte("payload"), testParams, salt, key2)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	h1, _, err := vaultcrypto.ParseHeader(sealed1)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	h2, _, err := vaultcrypto.ParseHeader(sealed2)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if h1.Nonce == h2.Nonce {
		t.Error("two independent encryptions produced the same nonce")
	}
}

func TestEncrypt_ZeroesKeyOnEveryPath(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	key := deriveTestKey(t, "passphrase", salt)

	if _, err := vaultcrypto.Encrypt([]byte("payload"), testParams, salt, key); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	for i, b := range key {
		if b != 0 {
			t.Fatalf("key byte %d not zeroed after Encrypt: %v", i, key)
		}
	}
}

func TestDecrypt_ZeroesKeyOnEveryPath(t *testing.T) {
	salt, err := vaultcrypto.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}

	encKey := deriveTestKey(t, "passphrase", salt)

	sealed, err := vaultcrypto.Encrypt([]byte("payload"), testParams, salt, encKey)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	wrongKey := deriveTestKey(t, "not-it", salt)

	if _, err := vaultcrypto.Decrypt(sealed, wrongKey); err == nil {
		t.Fatal("expected decryption error")
	}

	for i, b := range wrongKey {
		if b != 0 {
			t.Fatalf("key byte %d not zeroed after failed Decrypt: %v", i, wrongKey)
		}
	}
}
