// Package fileconfig resolves kevi's configuration from three layers, file
// < environment < CLI flag, the way the teacher's cli.ConfigOptions.resolve
// layers vault settings.
package fileconfig

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvConfigPath overrides the default config file path.
	EnvConfigPath = "KEVI_CONFIG_PATH"

	// defaultConfigName is the config file name resolved under the user's
	// home directory when no override is given.
	defaultConfigName = ".kevi.toml"

	// defaultVaultFilename is the vault file name resolved under the
	// user's home directory when no override is given.
	defaultVaultFilename = ".kevi"

	defaultUnlockTTL = 900 * time.Second
	defaultBackups   = 2
)

// Env variable names read when resolving configuration. The core engine
// never reads these itself (spec §6); only the CLI collaborators do.
const (
	EnvPassword  = "KEVI_PASSWORD"
	EnvUnlockTTL = "KEVI_UNLOCK_TTL"
	EnvBackups   = "KEVI_BACKUPS"
	EnvVaultPath = "KEVI_VAULT_PATH"
)

// Error wraps a configuration fault with the option that caused it.
type Error struct {
	Opt string
	Err error
}

func (e *Error) Error() string { return "config: " + strings.Join([]string{e.Opt, e.Err.Error()}, ": ") }

func (e *Error) Unwrap() error { return e.Err }

// FileConfig is the on-disk shape of the config file.
//
//nolint:tagalign
type FileConfig struct {
	Vault VaultConfig `toml:"vault" json:"vault"`

	path string // path the file was loaded from; empty if no file was used.
}

// VaultConfig holds vault-related file settings.
//
//nolint:tagalign,tagliatelle
type VaultConfig struct {
	Path       string `toml:"path,commented" comment:"Vault file path (default: '~/.kevi' if not set)" json:"path,omitempty"`
	UnlockTTL  string `toml:"unlock_ttl,commented" comment:"Default session TTL, as a Go duration (default: '15m')" json:"unlock_ttl,omitempty"`
	Backups    *int   `toml:"backups,commented" comment:"Number of rotating backup files to keep (default: 2, 0 disables backups)" json:"backups,omitempty"`
}

func newFileConfig() *FileConfig {
	return &FileConfig{}
}

// Flags holds CLI-flag overrides; zero values mean "not set by flag".
type Flags struct {
	ConfigPath string
	VaultPath  string
	UnlockTTL  time.Duration
	Backups    int
}

// Resolved is the final merged configuration: file < environment < flag.
type Resolved struct {
	VaultPath string
	UnlockTTL time.Duration
	Backups   int
}

// Load reads the config file at path, or at [DefaultConfigPath] when path
// is empty, and returns the parsed, validated file. A missing file at the
// default location yields an empty config; a missing file at an explicit
// path is an error. The path actually read is reported by
// [FileConfig.Path] (empty if no file was used).
func Load(path string) (*FileConfig, error) {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	configPath := cmp.Or(path, defaultPath)

	c, err := parse(configPath)
	if err != nil {
		if len(path) == 0 && errors.Is(err, fs.ErrNotExist) { //nolint:revive // explicit fallback path is clearer here
			c = newFileConfig()
		} else {
			return nil, err
		}
	} else {
		c.path = configPath
	}

	return c, c.validate()
}

// Path returns the path c was loaded from, or "" if no file was used.
func (c *FileConfig) Path() string { return c.path }

func parse(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	c := newFileConfig()
	if err := toml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	return c, nil
}

func (c *FileConfig) validate() error {
	if c == nil {
		return &Error{Err: errors.New("cannot validate a nil config")}
	}

	if c.Vault.Backups != nil && *c.Vault.Backups < 0 {
		return &Error{Opt: "vault.backups", Err: errors.New("must be zero or a positive integer")}
	}

	if len(c.Vault.UnlockTTL) > 0 {
		if _, err := time.ParseDuration(c.Vault.UnlockTTL); err != nil {
			return &Error{Opt: "vault.unlock_ttl", Err: err}
		}
	}

	return nil
}

// Resolve merges the file config, environment variables, and flags, flags
// taking precedence over environment, environment over file.
func (c *FileConfig) Resolve(flags Flags) (*Resolved, error) {
	r := &Resolved{
		Backups: defaultBackups,
	}

	r.VaultPath = c.Vault.Path

	if v, ok := os.LookupEnv(EnvVaultPath); ok {
		r.VaultPath = v
	}

	if len(flags.VaultPath) > 0 {
		r.VaultPath = flags.VaultPath
	}

	if len(r.VaultPath) == 0 {
		p, err := DefaultVaultPath()
		if err != nil {
			return nil, err
		}

		r.VaultPath = p
	}

	ttl := defaultUnlockTTL
	if len(c.Vault.UnlockTTL) > 0 {
		t, err := time.ParseDuration(c.Vault.UnlockTTL)
		if err != nil {
			return nil, &Error{Opt: "vault.unlock_ttl", Err: err}
		}

		ttl = t
	}

	if v, ok := os.LookupEnv(EnvUnlockTTL); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, &Error{Opt: EnvUnlockTTL, Err: err}
		}

		ttl = time.Duration(seconds) * time.Second
	}

	if flags.UnlockTTL != 0 {
		ttl = flags.UnlockTTL
	}

	r.UnlockTTL = ttl

	if c.Vault.Backups != nil {
		r.Backups = *c.Vault.Backups
	}

	if v, ok := os.LookupEnv(EnvBackups); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &Error{Opt: EnvBackups, Err: err}
		}

		r.Backups = n
	}

	if flags.Backups != 0 {
		r.Backups = flags.Backups
	}

	return r, nil
}

// DefaultConfigPath returns the default config file path, honoring
// KEVI_CONFIG_PATH.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("user home dir: %w", err)
	}

	path := filepath.Join(home, defaultConfigName)
	if p, ok := os.LookupEnv(EnvConfigPath); ok {
		path = p
	}

	return path, nil
}

// DefaultVaultPath returns the default vault file path under the user's
// home directory.
func DefaultVaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, defaultVaultFilename), nil
}

// Generate returns a commented-out default config file, ready to print or
// write as a starting point.
func Generate() ([]byte, error) {
	c := newFileConfig()
	backups := defaultBackups
	c.Vault.Backups = &backups
	c.Vault.UnlockTTL = defaultUnlockTTL.String()

	return toml.Marshal(c)
}
