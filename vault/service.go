package vault

import (
	"time"

	"github.com/ladzaretti/kevi/bytestore"
	"github.com/ladzaretti/kevi/dksession"
	"github.com/ladzaretti/kevi/recordcodec"
	"github.com/ladzaretti/kevi/resolver"
	"github.com/ladzaretti/kevi/vaultcrypto"
	"github.com/ladzaretti/kevi/vaulterrors"
)

// Service is the façade over a single vault file: it composes the byte
// store, record codec, and a [resolver.KeyResolver] into the operations the
// CLI layer drives.
type Service struct {
	path       string
	backups    int
	resolver   resolver.KeyResolver
	passphrase resolver.PassphraseSource
	params     vaultcrypto.Argon2Params
}

// New builds a Service for the vault file at path, rotating up to backups
// old versions on every write and resolving keys via r. passphrase is used
// directly by [Service.Unlock], which always re-derives regardless of r's
// own caching strategy. New vaults are created with params.
func New(path string, backups int, r resolver.KeyResolver, passphrase resolver.PassphraseSource, params vaultcrypto.Argon2Params) *Service {
	return &Service{
		path:       path,
		backups:    backups,
		resolver:   r,
		passphrase: passphrase,
		params:     params,
	}
}

// Path returns the vault file path this service operates on.
func (s *Service) Path() string { return s.path }

// Exists reports whether the vault file has been created yet.
func (s *Service) Exists() bool { return bytestore.Exists(s.path) }

// Load reads and decrypts the vault, returning its records. A vault that
// does not yet exist on disk, or that exists but is empty, loads as an
// empty record set, matching the semantics of [Service.Save] creating it
// on first write.
func (s *Service) Load() ([]Record, error) {
	raw, err := bytestore.Read(s.path)
	if err != nil {
		if !bytestore.Exists(s.path) {
			return nil, nil
		}

		return nil, err
	}

	if len(raw) == 0 {
		return nil, nil
	}

	if !vaultcrypto.HasMagic(raw) {
		return nil, vaulterrors.ErrUnsupportedFormat
	}

	header, _, err := vaultcrypto.ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	key, err := s.resolver.ResolveForHeader(header)
	if err != nil {
		return nil, err
	}

	plaintext, err := vaultcrypto.Decrypt(raw, key)
	if err != nil {
		return nil, err
	}

	wire, err := recordcodec.Decode(plaintext)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(wire))
	for i, w := range wire {
		records[i] = fromWireRecord(w)
	}

	return records, nil
}

// Save encrypts records and writes the vault, reusing the existing header's
// KDF parameters and salt (with a fresh nonce) when the vault already
// exists, or generating new parameters and a salt for a brand-new vault.
func (s *Service) Save(records []Record) error {
	wire := make([]recordcodec.Record, len(records))
	for i, r := range records {
		wire[i] = toWireRecord(r)
	}

	plaintext, err := recordcodec.Encode(wire)
	if err != nil {
		return err
	}

	existing, err := bytestore.Read(s.path)
	if err != nil && bytestore.Exists(s.path) {
		return err
	}

	var sealed []byte

	if len(existing) > 0 {
		if !vaultcrypto.HasMagic(existing) {
			return vaulterrors.ErrUnsupportedFormat
		}

		header, _, err := vaultcrypto.ParseHeader(existing)
		if err != nil {
			return err
		}

		key, err := s.resolver.ResolveForHeader(header)
		if err != nil {
			return err
		}

		sealed, err = vaultcrypto.Encrypt(plaintext, header.Params(), header.Salt, key)
		if err != nil {
			return err
		}
	} else {
		salt, err := vaultcrypto.NewSalt()
		if err != nil {
			return err
		}

		key, err := s.resolver.ResolveForNewVault(s.params, salt)
		if err != nil {
			return err
		}

		sealed, err = vaultcrypto.Encrypt(plaintext, s.params, salt, key)
		if err != nil {
			return err
		}
	}

	return bytestore.WriteWithBackups(s.path, sealed, s.backups)
}

// AddEntry appends record and persists the vault. The engine itself
// tolerates duplicate labels (spec §9); label-uniqueness policy is enforced
// by the CLI layer via [vaulterrors.ErrDuplicateLabel], not here.
func (s *Service) AddEntry(record Record) error {
	records, err := s.Load()
	if err != nil {
		return err
	}

	records = append(records, record)

	return s.Save(records)
}

// HasLabel reports whether any record currently carries label. The CLI
// layer uses this to reject duplicate `add` calls before constructing a
// new record.
func (s *Service) HasLabel(label string) (bool, error) {
	records, err := s.Load()
	if err != nil {
		return false, err
	}

	for _, r := range records {
		if r.Label == label {
			return true, nil
		}
	}

	return false, nil
}

// RemoveEntry deletes every record matching label and persists the result.
// It reports how many records were removed; zero is not an error, and the
// vault is not rewritten when nothing matched.
func (s *Service) RemoveEntry(label string) (int, error) {
	records, err := s.Load()
	if err != nil {
		return 0, err
	}

	kept := records[:0:0]
	removed := 0

	for _, r := range records {
		if r.Label == label {
			removed++
			continue
		}

		kept = append(kept, r)
	}

	if removed == 0 {
		return 0, nil
	}

	if err := s.Save(kept); err != nil {
		return 0, err
	}

	return removed, nil
}

// Unlock derives the vault's key and caches it for ttl, so subsequent
// commands skip Argon2id until the session expires or [Service.Lock] clears
// it. It requires the vault to already exist, since there is no header to
// derive a fingerprint from otherwise.
func (s *Service) Unlock(ttl time.Duration) error {
	raw, err := bytestore.Read(s.path)
	if err != nil {
		return err
	}

	if len(raw) > 0 && !vaultcrypto.HasMagic(raw) {
		return vaulterrors.ErrUnsupportedFormat
	}

	header, _, err := vaultcrypto.ParseHeader(raw)
	if err != nil {
		return err
	}

	pw, err := s.passphrase.Passphrase()
	if err != nil {
		return err
	}

	key, err := vaultcrypto.Derive(pw, header.Salt, header.Params())
	if err != nil {
		return err
	}
	defer vaultcrypto.Zero(key)

	return dksession.Save(dksession.PathFor(s.path), vaultcrypto.Fingerprint(header), key, ttl)
}

// Lock clears the derived-key session cache, forcing the next operation to
// re-derive from a passphrase regardless of resolver strategy.
func (s *Service) Lock() error {
	return dksession.Clear(dksession.PathFor(s.path))
}
