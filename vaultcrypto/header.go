package vaultcrypto

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/ladzaretti/kevi/vaulterrors"
)

const (
	// HeaderSize is the fixed size, in bytes, of the vault file preamble.
	HeaderSize = 48

	// SaltSize is the length of the per-vault Argon2id salt.
	SaltSize = 16

	// NonceSize is the length of the per-write AES-GCM nonce.
	NonceSize = 12

	magic = "KEVI"

	// Version is the only header version this implementation recognizes.
	Version uint16 = 1

	// KDFArgon2id is the only kdf_id this implementation recognizes.
	KDFArgon2id uint8 = 2

	// AEADAES256GCM is the only aead_id this implementation recognizes.
	AEADAES256GCM uint8 = 1
)

// Header is the fixed-layout binary preamble of a vault file: it names the
// KDF and AEAD in use, carries the KDF parameters and salt, and the
// per-write nonce. The entire header is bound as AEAD associated data.
type Header struct {
	Version   uint16
	KDFID     uint8
	AEADID    uint8
	MCostKiB  uint32
	TCost     uint32
	PLanes    uint32
	Salt      [SaltSize]byte
	Nonce     [NonceSize]byte
}

// Params extracts the Argon2id parameters carried by the header.
func (h Header) Params() Argon2Params {
	return Argon2Params{MemoryKiB: h.MCostKiB, Time: h.TCost, Parallelism: h.PLanes}
}

// HasMagic reports whether data opens with the "KEVI" magic bytes. Callers
// holding a non-empty file use this to distinguish a foreign/plaintext file
// (unsupported format) from one that carries the magic but is otherwise
// malformed (a header parsing fault), since [ParseHeader] reports a foreign
// file as a header fault (too short or invalid magic), never as
// [vaulterrors.ErrUnsupportedFormat].
func HasMagic(data []byte) bool {
	return len(data) >= len(magic) && string(data[:len(magic)]) == magic
}

// ParseHeader parses the 48-byte preamble from data, returning the header
// and the offset at which ciphertext begins. It never panics, for any
// input, and is a designated fuzz target (spec §8, property 8).
func ParseHeader(data []byte) (Header, int, error) {
	if len(data) < HeaderSize {
		return Header{}, 0, vaulterrors.NewHeaderTooShort()
	}

	if string(data[0:4]) != magic {
		return Header{}, 0, vaulterrors.NewInvalidMagic()
	}

	version := binary.LittleEndian.Uint16(data[4:6])
	if version != Version {
		return Header{}, 0, vaulterrors.NewUnsupportedVersion(version)
	}

	kdfID := data[6]
	if kdfID != KDFArgon2id {
		return Header{}, 0, vaulterrors.NewUnsupportedKdf(kdfID)
	}

	aeadID := data[7]
	if aeadID != AEADAES256GCM {
		return Header{}, 0, vaulterrors.NewUnsupportedAead(aeadID)
	}

	h := Header{
		Version:  version,
		KDFID:    kdfID,
		AEADID:   aeadID,
		MCostKiB: binary.LittleEndian.Uint32(data[8:12]),
		TCost:    binary.LittleEndian.Uint32(data[12:16]),
		PLanes:   binary.LittleEndian.Uint32(data[16:20]),
	}

	copy(h.Salt[:], data[20:20+SaltSize])
	copy(h.Nonce[:], data[20+SaltSize:HeaderSize])

	return h, HeaderSize, nil
}

// EmitHeader is the symmetric inverse of [ParseHeader]: it always produces
// exactly [HeaderSize] bytes.
func EmitHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = h.KDFID
	buf[7] = h.AEADID
	binary.LittleEndian.PutUint32(buf[8:12], h.MCostKiB)
	binary.LittleEndian.PutUint32(buf[12:16], h.TCost)
	binary.LittleEndian.PutUint32(buf[16:20], h.PLanes)
	copy(buf[20:20+SaltSize], h.Salt[:])
	copy(buf[20+SaltSize:HeaderSize], h.Nonce[:])

	return buf
}

// Fingerprint returns a hex-encoded SHA-256 digest of the header with the
// nonce field excluded, so that it stays stable across re-encryptions of
// the same vault (which only ever change the nonce) while changing if any
// other header field (including the salt) changes.
func Fingerprint(h Header) string {
	sum := sha256.New()

	sum.Write([]byte(magic))

	var versionBuf [2]byte
	binary.LittleEndian.PutUint16(versionBuf[:], h.Version)
	sum.Write(versionBuf[:])

	sum.Write([]byte{h.KDFID, h.AEADID})

	var u32Buf [4]byte

	binary.LittleEndian.PutUint32(u32Buf[:], h.MCostKiB)
	sum.Write(u32Buf[:])
	binary.LittleEndian.PutUint32(u32Buf[:], h.TCost)
	sum.Write(u32Buf[:])
	binary.LittleEndian.PutUint32(u32Buf[:], h.PLanes)
	sum.Write(u32Buf[:])

	sum.Write(h.Salt[:])

	return hex.EncodeToString(sum.Sum(nil))
}

// newHeader builds a header from params/salt/nonce, using the single
// recognized version, kdf, and aead ids.
func newHeader(params Argon2Params, salt [SaltSize]byte, nonce [NonceSize]byte) Header {
	return Header{
		Version:  Version,
		KDFID:    KDFArgon2id,
		AEADID:   AEADAES256GCM,
		MCostKiB: params.MemoryKiB,
		TCost:    params.Time,
		PLanes:   params.Parallelism,
		Salt:     salt,
		Nonce:    nonce,
	}
}
