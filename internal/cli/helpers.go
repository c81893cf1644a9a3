package cli

import (
	"time"

	"github.com/ladzaretti/kevi/internal/fileconfig"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// loadFileConfig loads the config file honoring common's --config flag.
func loadFileConfig(common *CommonOptions) (*fileconfig.FileConfig, error) {
	return fileconfig.Load(common.flags.ConfigPath)
}

// defaultVaultPathOrEnv resolves the vault path from the config file at its
// default location (or $KEVI_CONFIG_PATH), the environment, and the built-in
// default. Unlike the shared pre-run, it does not consult the --config or
// --file flags.
func defaultVaultPathOrEnv() (string, error) {
	fc, err := fileconfig.Load("")
	if err != nil {
		return "", err
	}

	r, err := fc.Resolve(fileconfig.Flags{})
	if err != nil {
		return "", err
	}

	return r.VaultPath, nil
}
