package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/resolver"
	"github.com/ladzaretti/kevi/vault"
	"github.com/ladzaretti/kevi/vaultcrypto"

	"github.com/spf13/cobra"
)

// createOptions holds data required to run the create command.
type createOptions struct {
	common *CommonOptions
}

var _ genericclioptions.CmdOptions = &createOptions{}

func (o *createOptions) Complete() error { return nil }

func (o *createOptions) Validate() error {
	path := o.common.flags.VaultPath
	if len(path) == 0 {
		var err error
		if path, err = defaultVaultPathOrEnv(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("vault file already exists: %s", path)
	}

	return nil
}

func (o *createOptions) Run(_ context.Context, _ ...string) error {
	fc, err := loadFileConfig(o.common)
	if err != nil {
		return err
	}

	r, err := fc.Resolve(o.common.flags)
	if err != nil {
		return err
	}

	src := newPassphraseSource(o.common.StdioOptions, r.VaultPath)
	bypass := resolver.NewBypassKeyResolver(src)

	svc := vault.New(r.VaultPath, r.Backups, bypass, src, vaultcrypto.DefaultArgon2Params)
	if err := svc.Save(nil); err != nil {
		return fmt.Errorf("create vault: %w", err)
	}

	o.common.Infof("New vault created at %q\n", r.VaultPath)

	return nil
}

// newCmdCreate creates the `create` cobra command.
func newCmdCreate(common *CommonOptions) *cobra.Command {
	o := &createOptions{common: common}

	return &cobra.Command{
		Use:     "create",
		Aliases: []string{"init"},
		Short:   "Initialize a new vault",
		Long: `Create a new, empty vault at the configured path.

If --file is not provided, the configured or default path is used.`,
		Run: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o))
		},
	}
}
