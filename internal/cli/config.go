package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"
	"github.com/ladzaretti/kevi/internal/fileconfig"

	"github.com/spf13/cobra"
)

// newCmdConfig creates the `config` cobra command tree.
func newCmdConfig(common *CommonOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Resolve and inspect the active kevi configuration (subcommands available)",
		Long:  "Resolve and display the active kevi configuration.",
		Run: func(cmd *cobra.Command, _ []string) {
			fc, err := loadFileConfig(common)
			clierror.Check(err)

			r, err := fc.Resolve(common.flags)
			clierror.Check(err)

			if len(fc.Path()) == 0 {
				common.Infof("no config file found; using default values\n")
			}

			out := struct {
				Path     string `json:"path"`
				Resolved any    `json:"resolved"`
			}{
				Path:     fc.Path(),
				Resolved: r,
			}

			common.Printf("%s", stringifyPretty(out))
		},
	}

	cmd.AddCommand(newCmdConfigGenerate(common))
	cmd.AddCommand(newCmdConfigValidate(common))

	// ttl/backups apply to vault operations only; config never touches one.
	genericclioptions.MarkFlagsHidden(cmd, "ttl", "backups")

	return cmd
}

func stringifyPretty(v any) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("stringify error: %v", err)
	}

	return buf.String()
}

// newCmdConfigGenerate creates the `config generate` cobra command.
func newCmdConfigGenerate(common *CommonOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Print a default config file",
		Long:  "Outputs the default configuration in TOML format to stdout.",
		Run: func(_ *cobra.Command, _ []string) {
			out, err := fileconfig.Generate()
			clierror.Check(err)

			common.Printf("%s", string(out))
		},
	}
}

// newCmdConfigValidate creates the `config validate` cobra command.
func newCmdConfigValidate(common *CommonOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check config validity",
		Long:  "Loads the configuration file and checks for common errors.",
		Run: func(cmd *cobra.Command, _ []string) {
			path := configPath
			if len(path) == 0 {
				path = common.flags.ConfigPath
			}

			fc, err := fileconfig.Load(path)
			clierror.Check(err)

			if len(fc.Path()) == 0 {
				common.Infof("no config file found; nothing to validate\n")
				return
			}

			common.Infof("%s: OK\n", fc.Path())
		},
	}

	cmd.Flags().StringVarP(&configPath, "file", "", "", "path to the configuration file to validate")

	return cmd
}
