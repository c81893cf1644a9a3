package cli

import (
	"fmt"
	"os"

	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/input"
	"github.com/ladzaretti/kevi/internal/fileconfig"
	"github.com/ladzaretti/kevi/vaulterrors"
)

// ttyPassphraseSource implements [resolver.PassphraseSource]: it checks
// KEVI_PASSWORD first, then falls back to a secure interactive prompt. In
// non-interactive mode with no env var set, it fails with
// [vaulterrors.ErrNoPassphrase] rather than blocking on a prompt stdin
// can't answer.
type ttyPassphraseSource struct {
	io        *genericclioptions.StdioOptions
	vaultPath string
}

func newPassphraseSource(io *genericclioptions.StdioOptions, vaultPath string) *ttyPassphraseSource {
	return &ttyPassphraseSource{io: io, vaultPath: vaultPath}
}

// Passphrase implements [resolver.PassphraseSource].
func (s *ttyPassphraseSource) Passphrase() (string, error) {
	if pw, ok := os.LookupEnv(fileconfig.EnvPassword); ok {
		return pw, nil
	}

	if s.io.NonInteractive {
		return "", vaulterrors.ErrNoPassphrase
	}

	bs, err := input.PromptReadSecure(s.io.Out, int(s.io.In.Fd()), "Password for %q: ", s.vaultPath)
	if err != nil {
		return "", fmt.Errorf("prompt password: %w", err)
	}

	return string(bs), nil
}
