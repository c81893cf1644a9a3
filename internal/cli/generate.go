package cli

import (
	"context"
	"fmt"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/clipboard"
	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/randstring"

	"github.com/spf13/cobra"
)

// generateOptions holds data required to run the generate command.
type generateOptions struct {
	common *CommonOptions

	policy randstring.PasswordPolicy
	copy   bool
}

var _ genericclioptions.CmdOptions = &generateOptions{}

func (*generateOptions) Complete() error { return nil }

func (*generateOptions) Validate() error { return nil }

func (o *generateOptions) Run(context.Context, ...string) error {
	policy := o.policy

	zero := randstring.PasswordPolicy{}
	if policy == zero {
		policy = randstring.DefaultPasswordPolicy
	}

	s, err := randstring.NewWithPolicy(policy)
	if err != nil {
		return err
	}

	if o.copy {
		o.common.Debugf("copying password to clipboard\n")
		return clipboard.Copy(s)
	}

	o.common.Printf("%s\n", s)

	return nil
}

// newCmdGenerate creates the `generate` cobra command, independent of any
// vault.
func newCmdGenerate(common *CommonOptions) *cobra.Command {
	o := &generateOptions{common: common}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "rand"},
		Short:   "Generate a random password",
		Long: fmt.Sprintf(`Generate a random password based on character-class minimums.

If no flags are given, the default policy requires at least:
  - %d uppercase letters
  - %d lowercase letters
  - %d digits
  - %d symbols
  - %d total characters
`,
			randstring.DefaultPasswordPolicy.MinUppercase,
			randstring.DefaultPasswordPolicy.MinLowercase,
			randstring.DefaultPasswordPolicy.MinDigits,
			randstring.DefaultPasswordPolicy.MinSymbols,
			randstring.DefaultPasswordPolicy.MinLength,
		),
		Run: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o))
		},
	}

	cmd.Flags().IntVarP(&o.policy.MinUppercase, "upper", "u", 0, "minimum number of uppercase letters")
	cmd.Flags().IntVarP(&o.policy.MinLowercase, "lower", "l", 0, "minimum number of lowercase letters")
	cmd.Flags().IntVarP(&o.policy.MinDigits, "digits", "d", 0, "minimum number of digits")
	cmd.Flags().IntVarP(&o.policy.MinSymbols, "symbols", "s", 0, "minimum number of symbols")
	cmd.Flags().IntVarP(&o.policy.MinLength, "min-length", "m", 0, "minimum total length")
	cmd.Flags().BoolVarP(&o.copy, "copy-clipboard", "c", false, "copy the generated password to the clipboard")

	genericclioptions.MarkFlagsHidden(cmd, "ttl", "backups")

	return cmd
}
