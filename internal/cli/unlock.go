package cli

import (
	"context"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

// unlockOptions holds data required to run the unlock command.
type unlockOptions struct {
	common *CommonOptions
	ttl    int
}

var _ genericclioptions.CmdOptions = &unlockOptions{}

func (*unlockOptions) Complete() error { return nil }

func (*unlockOptions) Validate() error { return nil }

func (o *unlockOptions) Run(_ context.Context, _ ...string) error {
	ttl := o.common.Resolved().UnlockTTL
	if o.ttl > 0 {
		ttl = secondsToDuration(o.ttl)
	}

	if err := o.common.Service().Unlock(ttl); err != nil {
		return err
	}

	o.common.Infof("Vault unlocked for %s\n", ttl)

	return nil
}

// newCmdUnlock creates the `unlock` cobra command.
func newCmdUnlock(common *CommonOptions) *cobra.Command {
	o := &unlockOptions{common: common}

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Prompt once and cache the derived key",
		Long: `Derive the vault's encryption key and cache it for the configured TTL,
so subsequent commands skip the passphrase prompt until the session
expires or 'kevi lock' clears it.`,
		Run: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o))
		},
	}

	cmd.Flags().IntVarP(&o.ttl, "ttl", "", 0, "session TTL in seconds (default: configured unlock TTL)")

	return cmd
}
