package vaultcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/ladzaretti/kevi/vaulterrors"
)

// Encrypt seals plaintext under key using AES-256-GCM, generating a fresh
// random nonce and binding a freshly built 48-byte header (params, salt,
// nonce) as associated data. The returned slice is header ‖ ciphertext ‖ tag.
//
// key is zeroed before Encrypt returns, on every path.
func Encrypt(plaintext []byte, params Argon2Params, salt [SaltSize]byte, key []byte) (_ []byte, retErr error) {
	defer Zero(key)

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	var nonce [NonceSize]byte
	if err := RandBytes(nonce[:]); err != nil {
		return nil, err
	}

	header := newHeader(params, salt, nonce)
	headerBytes := EmitHeader(header)

	lockKey(key)
	defer unlockKey(key)

	sealed := aead.Seal(nil, header.Nonce[:], plaintext, headerBytes)

	return append(headerBytes, sealed...), nil
}

// Decrypt parses the header from data, then opens the ciphertext with key,
// using the header bytes as associated data. Any authentication failure
// surfaces as the single, opaque [vaulterrors.ErrDecryptionFailed]; no
// distinction is made between a wrong key and a tampered ciphertext.
//
// key is zeroed before Decrypt returns, on every path.
func Decrypt(data []byte, key []byte) ([]byte, error) {
	defer Zero(key)

	header, offset, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	lockKey(key)
	defer unlockKey(key)

	headerBytes := data[:offset]
	ciphertext := data[offset:]

	plaintext, err := aead.Open(nil, header.Nonce[:], ciphertext, headerBytes)
	if err != nil {
		return nil, vaulterrors.ErrDecryptionFailed
	}

	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: new cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm: new gcm: %w", err)
	}

	return aead, nil
}
