package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/clipboard"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

var errAmbiguousLabel = errors.New("multiple records share that label")

// showOptions holds data required to run the show command.
type showOptions struct {
	common *CommonOptions

	label   string
	clip    bool
	clipTTL int
}

var _ genericclioptions.CmdOptions = &showOptions{}

func (o *showOptions) Complete() error { return nil }

func (o *showOptions) Validate() error {
	if len(o.label) == 0 {
		return errMissingLabel
	}

	return nil
}

func (o *showOptions) Run(_ context.Context, _ ...string) error {
	records, err := o.common.Service().Load()
	if err != nil {
		return err
	}

	var match *int

	for i, r := range records {
		if r.Label != o.label {
			continue
		}

		if match != nil {
			return errAmbiguousLabel
		}

		idx := i
		match = &idx
	}

	if match == nil {
		return errNoMatch
	}

	r := records[*match]

	if o.clip {
		ttl := time.Duration(o.clipTTL) * time.Second

		if err := clipboard.CopyWithTTL(r.Password.Expose(), ttl); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}

		o.common.Infof("Password for %q copied to clipboard (clearing in %s)\n", o.label, ttl)

		return nil
	}

	o.common.Printf("label:    %s\n", r.Label)
	o.common.Printf("username: %s\n", r.Username.Expose())
	o.common.Printf("password: %s\n", r.Password.Expose())

	if len(r.Notes) > 0 {
		o.common.Printf("notes:    %s\n", r.Notes)
	}

	return nil
}

// newCmdShow creates the `show` cobra command.
func newCmdShow(common *CommonOptions) *cobra.Command {
	o := &showOptions{common: common}

	cmd := &cobra.Command{
		Use:     "show <label>",
		Aliases: []string{"get"},
		Short:   "Display a secret",
		Long: `Display a secret's username, password, and notes.

Use --clip to copy the password to the clipboard instead of printing it;
after --clip-ttl seconds the clipboard is restored to its previous
contents, or cleared if it held nothing.`,
		Example: `  # Print a secret
  kevi show github

  # Copy the password to the clipboard, clearing it after 30s
  kevi show github --clip --clip-ttl 30`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				o.label = args[0]
			}

			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o, args...))
		},
	}

	cmd.Flags().BoolVarP(&o.clip, "clip", "c", false, "copy the password to the clipboard instead of printing it")
	cmd.Flags().IntVarP(&o.clipTTL, "clip-ttl", "", 20, "seconds before the clipboard is cleared")

	return cmd
}
