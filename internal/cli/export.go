package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ladzaretti/kevi/clierror"
	"github.com/ladzaretti/kevi/genericclioptions"

	"github.com/spf13/cobra"
)

var errExportNotConfirmed = errors.New("export requires --i-understand-the-risk")

var exportHeader = []string{"label", "username", "password", "notes"}

// exportOptions holds data required to run the export command.
type exportOptions struct {
	common *CommonOptions

	output    string
	stdout    bool
	confirmed bool
}

var _ genericclioptions.CmdOptions = &exportOptions{}

func (*exportOptions) Complete() error { return nil }

func (o *exportOptions) Validate() error {
	if !o.confirmed {
		return errExportNotConfirmed
	}

	if len(o.output) == 0 && !o.stdout {
		return errors.New("either specify an --output path or use --stdout")
	}

	return nil
}

func (o *exportOptions) Run(_ context.Context, _ ...string) error {
	records, err := o.common.Service().Load()
	if err != nil {
		return err
	}

	var out io.Writer

	if len(o.output) > 0 {
		f, err := os.Create(o.output)
		if err != nil {
			return err
		}
		defer func() { //nolint:wsl
			_ = f.Close()
		}()

		out = f
	}

	if o.stdout {
		out = o.common.Out
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	runID := uuid.NewString()

	if err := w.Write([]string{"# export_id", runID}); err != nil {
		return err
	}

	if err := w.Write(exportHeader); err != nil {
		return err
	}

	for _, r := range records {
		if err := w.Write([]string{r.Label, r.Username.Expose(), r.Password.Expose(), r.Notes}); err != nil {
			return err
		}
	}

	return nil
}

// newCmdExport creates the `export` cobra command.
func newCmdExport(common *CommonOptions) *cobra.Command {
	o := &exportOptions{common: common}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every secret as plaintext CSV",
		Long: `Export all records, including passwords, as plaintext CSV.

This writes secrets unencrypted. You must pass --i-understand-the-risk
to acknowledge this.`,
		Run: func(cmd *cobra.Command, _ []string) {
			clierror.Check(genericclioptions.ExecuteCommand(cmd.Context(), o))
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the export to this file path")
	cmd.Flags().BoolVarP(&o.stdout, "stdout", "", false, "print the export to standard output (unsafe)")
	cmd.Flags().BoolVarP(&o.confirmed, "i-understand-the-risk", "", false, "required to confirm plaintext export")

	return cmd
}
