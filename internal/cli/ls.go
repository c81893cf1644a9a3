package cli

import (
	"context"
	"path"
	"sort"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

// lsOptions holds data required to run the ls command.
type lsOptions struct {
	common  *CommonOptions
	pattern string
}

var _ genericclioptions.CmdOptions = &lsOptions{}

func (o *lsOptions) Complete() error { return nil }

func (*lsOptions) Validate() error { return nil }

func (o *lsOptions) Run(_ context.Context, _ ...string) error {
	records, err := o.common.Service().Load()
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(records))

	for _, r := range records {
		if len(o.pattern) > 0 {
			ok, err := path.Match(o.pattern, r.Label)
			if err != nil {
				return err
			}

			if !ok {
				continue
			}
		}

		labels = append(labels, r.Label)
	}

	sort.Strings(labels)

	for _, l := range labels {
		o.common.Printf("%s\n", l)
	}

	return nil
}

// newCmdLs creates the `ls` cobra command.
func newCmdLs(common *CommonOptions) *cobra.Command {
	o := &lsOptions{common: common}

	cmd := &cobra.Command{
		Use:     "ls [pattern]",
		Aliases: []string{"list"},
		Short:   "List labels in the vault",
		Long:    "List every record label in the vault, optionally filtered by a glob pattern.",
		Example: `  # List every label
  kevi ls

  # List labels matching a glob
  kevi ls 'git*'`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				o.pattern = args[0]
			}

			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o, args...))
		},
	}

	return cmd
}
