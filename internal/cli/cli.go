// Package cli wires kevi's commands into a cobra command tree on top of
// the vault engine: [vault.Service], [resolver.KeyResolver], and
// [genericclioptions.IOStreams].
package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/internal/fileconfig"
	"github.com/ladzaretti/kevi/resolver"
	"github.com/ladzaretti/kevi/vault"
	"github.com/ladzaretti/kevi/vaultcrypto"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	// preRunSkipCommands bypass the persistent pre-run vault setup, since
	// they either don't touch a vault (generate, version) or manage
	// configuration itself (config).
	preRunSkipCommands = []string{"config", "generate", "validate", "version", "create"}
)

// CommonOptions holds the resolved configuration and lazily-built vault
// service shared by every subcommand.
type CommonOptions struct {
	*genericclioptions.StdioOptions

	flags fileconfig.Flags

	resolved *fileconfig.Resolved
	service  *vault.Service
}

var _ genericclioptions.CmdOptions = &CommonOptions{}

// NewCommonOptions initializes CommonOptions bound to the given streams.
func NewCommonOptions(stdio *genericclioptions.StdioOptions) *CommonOptions {
	return &CommonOptions{StdioOptions: stdio}
}

// Service returns the vault service, built by [CommonOptions.Run].
func (o *CommonOptions) Service() *vault.Service { return o.service }

// Resolved returns the merged configuration.
func (o *CommonOptions) Resolved() *fileconfig.Resolved { return o.resolved }

func (o *CommonOptions) Complete() error {
	return o.StdioOptions.Complete()
}

func (o *CommonOptions) Validate() error {
	return o.StdioOptions.Validate()
}

// Run resolves configuration and builds the vault.Service every other
// command operates against.
func (o *CommonOptions) Run(_ context.Context, args ...string) error {
	fc, err := fileconfig.Load(o.flags.ConfigPath)
	if err != nil {
		return err
	}

	r, err := fc.Resolve(o.flags)
	if err != nil {
		return err
	}

	o.resolved = r

	cmd := ""
	if len(args) == 1 {
		cmd = args[0]
	}

	if slices.Contains(preRunSkipCommands, cmd) {
		return nil
	}

	src := newPassphraseSource(o.StdioOptions, r.VaultPath)
	cached := resolver.NewCachedKeyResolver(r.VaultPath, src, r.UnlockTTL)

	o.service = vault.New(r.VaultPath, r.Backups, cached, src, vaultcrypto.DefaultArgon2Params)

	return nil
}

// NewDefaultKeviCommand builds the root `kevi` command and its subcommands.
func NewDefaultKeviCommand(iostreams *genericclioptions.IOStreams, args []string) *cobra.Command {
	o := NewCommonOptions(&genericclioptions.StdioOptions{IOStreams: iostreams})

	cmd := &cobra.Command{
		Use:   "kevi",
		Short: "A file-backed, encrypted secrets vault",
		Long: `kevi stores labeled secrets (username, password, notes) in a single
AES-256-GCM encrypted file, unlocked by a passphrase.

Environment Variables:
    KEVI_CONFIG_PATH: overrides the default config path: "~/.kevi.toml".
    KEVI_PASSWORD:    supplies the master passphrase without a prompt.
    KEVI_UNLOCK_TTL:  default session TTL in seconds (fallback 900).
    KEVI_BACKUPS:     default backup depth (fallback 2).
    KEVI_VAULT_PATH:  default vault file path.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o, cmd.Name()))
		},
	}

	cmd.SetArgs(args)

	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&o.flags.VaultPath, "file", "f", "",
		fmt.Sprintf("vault file path (default: ~/%s, or $%s)", ".kevi", fileconfig.EnvVaultPath))
	cmd.PersistentFlags().StringVarP(&o.flags.ConfigPath, "config", "", "",
		fmt.Sprintf("configuration file path (default: ~/%s)", ".kevi.toml"))
	cmd.PersistentFlags().DurationVarP(&o.flags.UnlockTTL, "ttl", "", 0,
		fmt.Sprintf("session TTL for cached keys (default: 15m, or $%s)", fileconfig.EnvUnlockTTL))
	cmd.PersistentFlags().IntVarP(&o.flags.Backups, "backups", "", 0,
		fmt.Sprintf("number of rotating backups to keep (default: 2, or $%s)", fileconfig.EnvBackups))

	cmd.AddCommand(newCmdCreate(o))
	cmd.AddCommand(newCmdAdd(o))
	cmd.AddCommand(newCmdRemove(o))
	cmd.AddCommand(newCmdLs(o))
	cmd.AddCommand(newCmdShow(o))
	cmd.AddCommand(newCmdGenerate(o))
	cmd.AddCommand(newCmdUnlock(o))
	cmd.AddCommand(newCmdLock(o))
	cmd.AddCommand(newCmdConfig(o))
	cmd.AddCommand(newCmdExport(o))
	cmd.AddCommand(newCmdVersion(o))

	return cmd
}
