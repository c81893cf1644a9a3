// Package resolver implements the two key-resolution strategies the vault
// service can be configured with: [CachedKeyResolver], which consults and
// refreshes the [dksession] cache, and [BypassKeyResolver], which always
// re-derives from a fresh passphrase (spec §4.7).
package resolver

import (
	"time"

	"github.com/ladzaretti/kevi/dksession"
	"github.com/ladzaretti/kevi/vaultcrypto"
)

// PassphraseSource supplies the master passphrase used to derive a key. The
// CLI layer implements this by checking KEVI_PASSWORD before falling back
// to an interactive terminal prompt; tests can supply a fixed value.
type PassphraseSource interface {
	Passphrase() (string, error)
}

// KeyResolver obtains the AES-256 key that decrypts an existing vault, or
// that will encrypt a newly created one.
type KeyResolver interface {
	// ResolveForHeader returns the key for an existing vault, given its
	// parsed header.
	ResolveForHeader(header vaultcrypto.Header) ([]byte, error)

	// ResolveForNewVault returns the key to encrypt a brand-new vault,
	// given the KDF parameters and salt chosen at creation time.
	ResolveForNewVault(params vaultcrypto.Argon2Params, salt [vaultcrypto.SaltSize]byte) ([]byte, error)
}

// CachedKeyResolver resolves keys via [dksession]: a cache hit avoids
// rederiving with Argon2id; a miss derives once and refreshes the cache
// with ttl remaining.
type CachedKeyResolver struct {
	sessionPath string
	passphrase  PassphraseSource
	ttl         time.Duration
}

var _ KeyResolver = (*CachedKeyResolver)(nil)

// NewCachedKeyResolver builds a resolver backed by the session cache at
// vaultPath's derived .dksession path.
func NewCachedKeyResolver(vaultPath string, passphrase PassphraseSource, ttl time.Duration) *CachedKeyResolver {
	return &CachedKeyResolver{
		sessionPath: dksession.PathFor(vaultPath),
		passphrase:  passphrase,
		ttl:         ttl,
	}
}

// ResolveForHeader returns the cached key if its fingerprint matches header,
// otherwise derives fresh and repopulates the cache.
func (r *CachedKeyResolver) ResolveForHeader(header vaultcrypto.Header) ([]byte, error) {
	fingerprint := vaultcrypto.Fingerprint(header)

	session, err := dksession.Load(r.sessionPath)
	if err != nil {
		return nil, err
	}

	if session != nil && session.HeaderFingerprint == fingerprint && len(session.Key) == vaultcrypto.KeyLen {
		return session.Key, nil
	}

	pw, err := r.passphrase.Passphrase()
	if err != nil {
		return nil, err
	}

	key, err := vaultcrypto.Derive(pw, header.Salt, header.Params())
	if err != nil {
		return nil, err
	}

	if err := dksession.Save(r.sessionPath, fingerprint, key, r.ttl); err != nil {
		return nil, err
	}

	return key, nil
}

// ResolveForNewVault derives a key for a brand-new vault and seeds the
// session cache with it, so the vault that create just wrote is
// immediately unlocked for the configured ttl.
func (r *CachedKeyResolver) ResolveForNewVault(params vaultcrypto.Argon2Params, salt [vaultcrypto.SaltSize]byte) ([]byte, error) {
	pw, err := r.passphrase.Passphrase()
	if err != nil {
		return nil, err
	}

	key, err := vaultcrypto.Derive(pw, salt, params)
	if err != nil {
		return nil, err
	}

	header := vaultcrypto.Header{
		Version:  vaultcrypto.Version,
		KDFID:    vaultcrypto.KDFArgon2id,
		AEADID:   vaultcrypto.AEADAES256GCM,
		MCostKiB: params.MemoryKiB,
		TCost:    params.Time,
		PLanes:   params.Parallelism,
		Salt:     salt,
	}

	if err := dksession.Save(r.sessionPath, vaultcrypto.Fingerprint(header), key, r.ttl); err != nil {
		return nil, err
	}

	return key, nil
}

// BypassKeyResolver always derives from a fresh passphrase, ignoring and
// never populating the session cache. The `create` command uses it, so
// creating a vault always prompts for a passphrase and leaves no session
// cache behind.
type BypassKeyResolver struct {
	passphrase PassphraseSource
}

var _ KeyResolver = (*BypassKeyResolver)(nil)

// NewBypassKeyResolver builds a resolver that never reads or writes the
// session cache.
func NewBypassKeyResolver(passphrase PassphraseSource) *BypassKeyResolver {
	return &BypassKeyResolver{passphrase: passphrase}
}

// ResolveForHeader always re-derives the key from a fresh passphrase.
func (r *BypassKeyResolver) ResolveForHeader(header vaultcrypto.Header) ([]byte, error) {
	pw, err := r.passphrase.Passphrase()
	if err != nil {
		return nil, err
	}

	return vaultcrypto.Derive(pw, header.Salt, header.Params())
}

// ResolveForNewVault always derives the key from a fresh passphrase.
func (r *BypassKeyResolver) ResolveForNewVault(params vaultcrypto.Argon2Params, salt [vaultcrypto.SaltSize]byte) ([]byte, error) {
	pw, err := r.passphrase.Passphrase()
	if err != nil {
		return nil, err
	}

	return vaultcrypto.Derive(pw, salt, params)
}
