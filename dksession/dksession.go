// Package dksession implements the derived-key session cache: a small
// sidecar file that lets unlock persist a derived key across CLI
// invocations for a bounded time-to-live, so a session matching
// KEVI_UNLOCK_TTL does not re-run Argon2id on every command (spec §4.6).
package dksession

import (
	"encoding/base64"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ladzaretti/kevi/bytestore"
	"github.com/ladzaretti/kevi/vaulterrors"
	"github.com/ladzaretti/kevi/vaultcrypto"
)

// Ext is the suffix appended to a vault path to form its session file path.
const Ext = ".dksession"

// PathFor returns the session cache path for a given vault path, e.g.
// "secrets.kevi" -> "secrets.kevi.dksession".
func PathFor(vaultPath string) string {
	return vaultPath + Ext
}

// file is the on-disk envelope. The key is stored base64-encoded since TOML
// has no native byte-string type.
type file struct {
	ExpiresAtUnix     int64  `toml:"expires_at_unix"`
	HeaderFingerprint string `toml:"header_fingerprint_hex"`
	KeyB64            string `toml:"key_b64"`
}

// Session is a derived key recovered from the cache, still bound to the
// header fingerprint it was derived against.
type Session struct {
	ExpiresAt         time.Time
	HeaderFingerprint string
	Key               []byte
}

// Save writes a session cache entry at path, valid for ttl from now. key is
// not retained or zeroed by Save; the caller owns its lifetime.
func Save(path string, fingerprint string, key []byte, ttl time.Duration) error {
	f := file{
		ExpiresAtUnix:     time.Now().Add(ttl).Unix(),
		HeaderFingerprint: fingerprint,
		KeyB64:            base64.StdEncoding.EncodeToString(key),
	}

	encoded, err := toml.Marshal(f)
	if err != nil {
		return vaulterrors.Wrap("encode session", err)
	}

	return bytestore.WriteWithBackups(path, encoded, 0)
}

// Load reads the session cache at path. A missing, expired, or corrupt
// session is not an error: it is reported as (nil, nil), self-healing by
// deleting the stale file so future calls see a clean slate.
func Load(path string) (*Session, error) {
	data, err := bytestore.Read(path)
	if err != nil {
		return nil, nil //nolint:nilerr // missing session file is not a failure
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		_ = Clear(path)
		return nil, nil
	}

	if time.Now().Unix() >= f.ExpiresAtUnix {
		_ = Clear(path)
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(f.KeyB64)
	if err != nil {
		_ = Clear(path)
		return nil, nil
	}

	return &Session{
		ExpiresAt:         time.Unix(f.ExpiresAtUnix, 0),
		HeaderFingerprint: f.HeaderFingerprint,
		Key:               key,
	}, nil
}

// Clear removes the session cache at path, if present.
func Clear(path string) error {
	return bytestore.Remove(path)
}

// Matches reports whether s was derived under the vault header currently on
// disk, identified by its fingerprint. A session from a re-keyed or
// recreated vault never matches.
func Matches(s *Session, header vaultcrypto.Header) bool {
	return s != nil && s.HeaderFingerprint == vaultcrypto.Fingerprint(header)
}
