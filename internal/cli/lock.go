package cli

import (
	"context"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

// lockOptions holds data required to run the lock command.
type lockOptions struct {
	common *CommonOptions
}

var _ genericclioptions.CmdOptions = &lockOptions{}

func (*lockOptions) Complete() error { return nil }

func (*lockOptions) Validate() error { return nil }

func (o *lockOptions) Run(_ context.Context, _ ...string) error {
	if err := o.common.Service().Lock(); err != nil {
		return err
	}

	o.common.Infof("Vault locked\n")

	return nil
}

// newCmdLock creates the `lock` cobra command.
func newCmdLock(common *CommonOptions) *cobra.Command {
	o := &lockOptions{common: common}

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Clear the cached session key",
		Long:  "Clear the derived-key session cache, forcing the next command to re-derive from a passphrase.",
		Run: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o))
		},
	}

	return cmd
}
