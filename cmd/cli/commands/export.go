package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <payload_file> [output_file]",
		Short: "Normalize a payload document and write it as JSON or XLSX",
		Long: `Normalize a payload document (ids, group spellings) and write it out.
The output name defaults to the configured export file name, with the
extension matching --format.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			requireValid, _ := cmd.Flags().GetBool("require-valid")
			variant, _ := cmd.Flags().GetString("variant")

			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			dst := export.FileNameFor(app.Cfg.Export.FileName, format)
			if len(args) > 1 {
				dst = args[1]
			}

			app.Logger.Debug("export command",
				zap.String("source", args[0]),
				zap.String("destination", dst),
				zap.String("format", string(format)))

			report, err := services.ExportPayload(app.Ctx, app.Store, app.Logger, args[0], dst, services.ExportOptions{
				Session:      app.SessionOptions(variant),
				Format:       format,
				RequireValid: requireValid,
			})
			if report != nil && !report.Valid {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exportado a %s\n", dst)
			return nil
		},
	}

	cmd.Flags().String("format", string(export.FormatJSON), "Output format: json or xlsx")
	cmd.Flags().Bool("require-valid", false, "Refuse to export documents with validation errors")
	cmd.Flags().String("variant", "", "Wizard variant: weekly or assignments")
	return cmd
}
