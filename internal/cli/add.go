package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/input"
	"github.com/ladzaretti/kevi/vault"
	"github.com/ladzaretti/kevi/vaulterrors"

	"github.com/spf13/cobra"
)

var errMissingLabel = errors.New("exactly one label argument is required")

// addOptions holds data required to run the add command.
type addOptions struct {
	common *CommonOptions

	label    string
	username string
	notes    string
}

var _ genericclioptions.CmdOptions = &addOptions{}

func (o *addOptions) Complete() error { return nil }

func (o *addOptions) Validate() error {
	if len(o.label) == 0 {
		return errMissingLabel
	}

	return nil
}

func (o *addOptions) Run(_ context.Context, _ ...string) error {
	svc := o.common.Service()

	exists, err := svc.HasLabel(o.label)
	if err != nil {
		return err
	}

	if exists {
		return vaulterrors.ErrDuplicateLabel
	}

	if len(o.username) == 0 {
		u, err := input.PromptRead(o.common.Out, o.common.In, "Username: ")
		if err != nil {
			return fmt.Errorf("prompt username: %w", err)
		}

		o.username = u
	}

	password, err := input.PromptReadSecure(o.common.Out, int(o.common.In.Fd()), "Password for %q: ", o.label)
	if err != nil {
		return fmt.Errorf("prompt password: %w", err)
	}

	if len(o.notes) == 0 {
		n, err := input.PromptRead(o.common.Out, o.common.In, "Notes (optional): ")
		if err != nil {
			return fmt.Errorf("prompt notes: %w", err)
		}

		o.notes = n
	}

	record, err := vault.NewRecord(o.label, o.username, string(password), o.notes)
	if err != nil {
		return err
	}

	if err := svc.AddEntry(record); err != nil {
		return err
	}

	o.common.Infof("Added %q\n", o.label)

	return nil
}

// newCmdAdd creates the `add` cobra command.
func newCmdAdd(common *CommonOptions) *cobra.Command {
	o := &addOptions{common: common}

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a new secret",
		Long: `Add a new labeled secret (username, password, notes) to the vault.

The password is always read from a secure, no-echo prompt.`,
		Example: `  # Add a secret, prompting for username/password/notes
  kevi add github

  # Add a secret with a pre-filled username
  kevi add github --username octocat`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				o.label = args[0]
			}

			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o, args...))
		},
	}

	cmd.Flags().StringVarP(&o.username, "username", "u", "", "the account username")
	cmd.Flags().StringVarP(&o.notes, "notes", "n", "", "free-form notes")

	return cmd
}
