package cli

import (
	"context"
	"errors"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("no record with that label")

// removeOptions holds data required to run the rm command.
type removeOptions struct {
	common *CommonOptions
	label  string
}

var _ genericclioptions.CmdOptions = &removeOptions{}

func (o *removeOptions) Complete() error { return nil }

func (o *removeOptions) Validate() error {
	if len(o.label) == 0 {
		return errMissingLabel
	}

	return nil
}

func (o *removeOptions) Run(_ context.Context, _ ...string) error {
	n, err := o.common.Service().RemoveEntry(o.label)
	if err != nil {
		return err
	}

	if n == 0 {
		return errNoMatch
	}

	o.common.Infof("Removed %d record(s) labeled %q\n", n, o.label)

	return nil
}

// newCmdRemove creates the `rm` cobra command.
func newCmdRemove(common *CommonOptions) *cobra.Command {
	o := &removeOptions{common: common}

	cmd := &cobra.Command{
		Use:     "rm <label>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove secrets matching a label",
		Long:    "Remove every record whose label matches the given argument.",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				o.label = args[0]
			}

			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o, args...))
		},
	}

	return cmd
}
