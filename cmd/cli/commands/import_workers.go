package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/paste"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/services"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/wizard"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

// ImportWorkersCmd creates the importWorkers command
func ImportWorkersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importWorkers <roster_file>",
		Short: "Import a worker roster from a tab-separated text file or an .xlsx workbook",
		Long: `Import a worker roster. Columns are RUT, correo, nombres, apellidos, grupo,
inicio, fin, then entrada/colación/salida for each day from Monday to Sunday.

With --into the roster is merged into an existing payload document; otherwise a
new document is started from the configured seed groups.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeFlag, _ := cmd.Flags().GetString("mode")
			extended, _ := cmd.Flags().GetBool("extended")
			skipHeader, _ := cmd.Flags().GetBool("skip-header")
			into, _ := cmd.Flags().GetString("into")
			outPath, _ := cmd.Flags().GetString("out")
			formatFlag, _ := cmd.Flags().GetString("format")
			variant, _ := cmd.Flags().GetString("variant")

			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			app.Logger.Debug("importWorkers command",
				zap.String("file", args[0]),
				zap.String("mode", modeFlag),
				zap.String("into", into))

			// Step 1: Start or load the session
			opts := app.SessionOptions(variant)
			opts.Paste.ExtendedDelimiters = opts.Paste.ExtendedDelimiters || extended
			opts.Paste.SkipHeaderRows = opts.Paste.SkipHeaderRows || skipHeader

			var session *wizard.Session
			if into != "" {
				p, err := app.Store.LoadPayload(app.Ctx, into)
				if err != nil {
					return err
				}
				session = wizard.FromPayload(p, opts)
			} else {
				session = wizard.New(opts)
			}

			// Step 2: Import the roster
			f, err := app.Store.Open(app.Ctx, args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := services.ImportWorkers(app.Ctx, session, app.Logger, args[0], f, paste.ParseMode(modeFlag))
			if err != nil {
				return err
			}

			// Step 3: Report
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ %d trabajador(es) leídos, %d en la nómina\n", result.Parsed, len(result.Workers))
			for _, g := range result.CreatedGroups {
				fmt.Fprintf(out, "  + grupo creado: %s\n", g.Name)
			}
			printMessages(out, result.Errors.Global)

			// Step 4: Save
			if outPath == "" {
				return nil
			}
			if err := app.Store.SavePayload(app.Ctx, outPath, session.Payload(), format); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n✓ Documento guardado en %s\n\n", outPath)
			return nil
		},
	}

	cmd.Flags().String("mode", string(paste.ModeReplace), "replace or append to the roster")
	cmd.Flags().Bool("extended", false, "Also split cells on commas and semicolons")
	cmd.Flags().Bool("skip-header", false, "Skip rows whose first cell mentions RUT")
	cmd.Flags().String("into", "", "Existing payload document to merge the roster into")
	cmd.Flags().String("out", "", "Where to save the resulting payload")
	cmd.Flags().String("format", string(export.FormatJSON), "Output format: json or xlsx")
	cmd.Flags().String("variant", "", "Wizard variant: weekly or assignments")

	return cmd
}
